package agent

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nopesy/UCSB-Hacks-XII/utils"
)

// Burnout scores change slowly; a short cache keeps dashboard refreshes from
// hammering the agent's LLM-backed predictor.
const burnoutCacheTTL = 10 * time.Minute

type Handler struct {
	Client        *Client
	DefaultUserID string
	Location      *time.Location
}

func NewHandler(client *Client, defaultUserID string, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{Client: client, DefaultUserID: defaultUserID, Location: loc}
}

func (h *Handler) userOrDefault(userID string) string {
	if userID == "" {
		return h.DefaultUserID
	}
	return userID
}

// ===========================
// 🔥 Burnout Proxy - GET /agent/burnout?user_id=&date=&sleep_time=&wake_time=
func (h *Handler) Burnout(c *gin.Context) {
	userID := h.userOrDefault(c.Query("user_id"))

	date := c.Query("date")
	if date == "" {
		date = time.Now().In(h.Location).Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	sleepTime := c.Query("sleep_time")
	wakeTime := c.Query("wake_time")

	cacheKey := fmt.Sprintf("burnout:%s:%s:%s:%s", userID, date, sleepTime, wakeTime)
	var cached BurnoutPrediction
	if utils.CacheGetJSON(c.Request.Context(), cacheKey, &cached) {
		cached.Cached = true
		c.JSON(http.StatusOK, cached)
		return
	}

	prediction, err := h.Client.PredictBurnout(c.Request.Context(), userID, date, sleepTime, wakeTime)
	if errors.Is(err, ErrUnavailable) {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	utils.CacheSetJSON(c.Request.Context(), cacheKey, prediction, burnoutCacheTTL)
	c.JSON(http.StatusOK, prediction)
}

// ===========================
// 💓 Agent Health - GET /agent/health
func (h *Handler) Health(c *gin.Context) {
	if err := h.Client.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"status": "down", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
