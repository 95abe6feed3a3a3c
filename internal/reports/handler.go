package reports

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nopesy/UCSB-Hacks-XII/internal/event"
)

type Handler struct {
	Service       *Service
	DefaultUserID string
}

func NewHandler(s *Service, defaultUserID string) *Handler {
	return &Handler{Service: s, DefaultUserID: defaultUserID}
}

// ===========================
// 📊 Events Export - GET /reports/events/export?user_id=&calendarId=&start=&end=&format=
func (h *Handler) ExportEvents(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		userID = h.DefaultUserID
	}

	format := c.DefaultQuery("format", FormatExcel)
	if format != FormatExcel && format != FormatCSV {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be excel or csv"})
		return
	}

	data, fname, mime, err := h.Service.ExportEvents(
		c.Request.Context(),
		userID,
		c.Query("calendarId"),
		c.Query("start"),
		c.Query("end"),
		format,
	)
	if errors.Is(err, event.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fname))
	c.Data(http.StatusOK, mime, data)
}
