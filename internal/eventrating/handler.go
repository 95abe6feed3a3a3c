package eventrating

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Repo          *Repository
	DefaultUserID string
}

func NewHandler(repo *Repository, defaultUserID string) *Handler {
	return &Handler{Repo: repo, DefaultUserID: defaultUserID}
}

func (h *Handler) userOrDefault(userID string) string {
	if userID == "" {
		return h.DefaultUserID
	}
	return userID
}

// ===========================
// 🌟 Rate - POST /ratings
func (h *Handler) Rate(c *gin.Context) {
	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.ExternalID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "external_id is required"})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}

	stored, err := h.Repo.Upsert(c.Request.Context(), &EventRating{
		UserID:     h.userOrDefault(req.UserID),
		ExternalID: req.ExternalID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "rating": stored})
}

// ===========================
// 📄 List - GET /ratings?user_id=
func (h *Handler) List(c *gin.Context) {
	userID := h.userOrDefault(c.Query("user_id"))

	ratings, err := h.Repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if ratings == nil {
		ratings = []EventRating{}
	}
	c.JSON(http.StatusOK, gin.H{"ratings": ratings})
}

// ===========================
// 🔍 Get One - GET /ratings/:externalId?user_id=
func (h *Handler) Get(c *gin.Context) {
	userID := h.userOrDefault(c.Query("user_id"))

	rating, err := h.Repo.FindByExternalID(c.Request.Context(), userID, c.Param("externalId"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rating": rating})
}

// ===========================
// ❌ Delete - DELETE /ratings/:externalId?user_id=
func (h *Handler) Delete(c *gin.Context) {
	userID := h.userOrDefault(c.Query("user_id"))

	err := h.Repo.DeleteByExternalID(c.Request.Context(), userID, c.Param("externalId"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
