package sleep

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nopesy/UCSB-Hacks-XII/middleware"
)

type Handler struct {
	Service *Service

	// DefaultUserID stands in for the authenticated user on requests that
	// carry no user id (single-user demo deployment).
	DefaultUserID string
}

func NewHandler(s *Service, defaultUserID string) *Handler {
	return &Handler{Service: s, DefaultUserID: defaultUserID}
}

func (h *Handler) userOrDefault(userID string) string {
	if userID == "" {
		return h.DefaultUserID
	}
	return userID
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// ===========================
// 🎯 Log Sleep - POST /sleep
func (h *Handler) LogSleep(c *gin.Context) {
	var req LogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	userID := h.userOrDefault(req.UserID)
	stored, err := h.Service.Log(c.Request.Context(), &req, userID, middleware.GetIPFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "sleep": stored})
}

// ===========================
// 🔍 Today - GET /sleep/today?user_id=
func (h *Handler) GetToday(c *gin.Context) {
	userID := h.userOrDefault(c.Query("user_id"))

	log, err := h.Service.GetToday(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sleep": log})
}

// ===========================
// 🔍 By Date - GET /sleep/:date?user_id=
func (h *Handler) GetByDate(c *gin.Context) {
	userID := h.userOrDefault(c.Query("user_id"))

	log, err := h.Service.GetByDate(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sleep": log})
}

// ===========================
// 📄 Recent - GET /sleep/recent?user_id=&limit=
func (h *Handler) ListRecent(c *gin.Context) {
	userID := h.userOrDefault(c.Query("user_id"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))

	logs, err := h.Service.ListRecent(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if logs == nil {
		logs = []SleepLog{}
	}
	c.JSON(http.StatusOK, gin.H{"sleep": logs})
}
