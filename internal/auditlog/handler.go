package auditlog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 📄 List Audit Logs - GET /auditlogs?user_id=&action=&status=&from=&to=&page=&limit=
func (h *Handler) GetAuditLogs(c *gin.Context) {
	filter := AuditLogFilter{
		UserID: c.Query("user_id"),
		Action: c.Query("action"),
		Status: c.Query("status"),
	}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, use RFC3339"})
			return
		}
		filter.FromDate = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, use RFC3339"})
			return
		}
		filter.ToDate = &t
	}

	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	logs, err := h.Service.GetAuditLogs(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch audit logs: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, logs)
}
