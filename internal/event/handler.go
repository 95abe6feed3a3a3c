package event

import (
	"errors"
	"io"
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

// userOrDefault resolves the effective user id for a request.
func (h *Handler) userOrDefault(userID string) string {
	if userID == "" {
		return h.DefaultUserID
	}
	return userID
}

// eventIDParam validates the :id path segment. Malformed ids are a 400, not
// a 500 from the storage layer.
func eventIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return 0, false
	}
	return uint(id), true
}

// respondError maps the service error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var conflictErr *ConflictError
	switch {
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     "scheduling conflict with fixed events",
			"conflicts": conflictErr.Conflicts,
		})
	case errors.Is(err, ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
	default:
		// Local/demo deployment: the raw message is surfaced to the caller.
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// ===========================
// 🔄 Bulk Sync - POST /events/sync
func (h *Handler) SyncEvents(c *gin.Context) {
	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	if req.Events == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "events must be an array"})
		return
	}

	userID := h.userOrDefault(req.UserID)
	ip := middleware.GetIPFromContext(c)

	result, err := h.Service.SyncEvents(c.Request.Context(), userID, *req.Events, ip)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"bulkResult": result,
		"nUpserted":  result.NUpserted,
	})
}

// ===========================
// 🎯 Manual Create - POST /events
func (h *Handler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	userID := h.userOrDefault(req.UserID)
	ip := middleware.GetIPFromContext(c)

	created, err := h.Service.CreateEvent(c.Request.Context(), &req, userID, ip)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "event": created})
}

// ===========================
// ⚔️ Reschedule - PATCH /events/:id
func (h *Handler) RescheduleEvent(c *gin.Context) {
	id, ok := eventIDParam(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	updated, err := h.Service.RescheduleEvent(c.Request.Context(), id, &req, middleware.GetIPFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "event": updated})
}

// ===========================
// 🔀 Status Toggle - PATCH /events/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := eventIDParam(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	updated, err := h.Service.UpdateStatus(c.Request.Context(), id, req.Status, middleware.GetIPFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "event": updated})
}

// ===========================
// 🏷 Type Override - PATCH /events/:id/type
func (h *Handler) UpdateType(c *gin.Context) {
	id, ok := eventIDParam(c)
	if !ok {
		return
	}

	var req UpdateTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	if req.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type is required"})
		return
	}

	updated, err := h.Service.UpdateType(c.Request.Context(), id, req.Type, middleware.GetIPFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "event": updated})
}

// ===========================
// ❌ Delete - DELETE /events/:id
func (h *Handler) DeleteEvent(c *gin.Context) {
	id, ok := eventIDParam(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteEvent(c.Request.Context(), id, middleware.GetIPFromContext(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ===========================
// 💣 Clear All - DELETE /events/clear-all
// Dev-only: wipes events and ratings, no confirmation.
func (h *Handler) ClearAll(c *gin.Context) {
	if err := h.Service.ClearAll(c.Request.Context(), middleware.GetIPFromContext(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ===========================
// 📄 List - GET /events?user_id=&calendarId=&start=&end=&limit=&skip=
func (h *Handler) ListEvents(c *gin.Context) {
	userID := h.userOrDefault(c.Query("user_id"))

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize)))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	events, err := h.Service.ListEvents(
		c.Request.Context(),
		userID,
		c.Query("calendarId"),
		c.Query("start"),
		c.Query("end"),
		limit,
		skip,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	if events == nil {
		events = []Event{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// ===========================
// 📊 Calendars - GET /calendars?user_id=
func (h *Handler) ListCalendars(c *gin.Context) {
	userID := h.userOrDefault(c.Query("user_id"))

	counts, err := h.Service.ListCalendars(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if counts == nil {
		counts = []CalendarCount{}
	}
	c.JSON(http.StatusOK, gin.H{"calendars": counts})
}

// ===========================
// 🔁 Reclassify - POST /events/reclassify
func (h *Handler) Reclassify(c *gin.Context) {
	// Body is optional: an empty POST reclassifies the demo user.
	var req ReclassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	userID := h.userOrDefault(req.UserID)

	result, err := h.Service.Reclassify(c.Request.Context(), userID, middleware.GetIPFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"total":   result.Total,
		"updated": result.Updated,
		"message": strconv.Itoa(result.Updated) + " of " + strconv.Itoa(result.Total) + " events reclassified",
	})
}
