package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Nopesy/UCSB-Hacks-XII/internal/auditlog"
	"github.com/Nopesy/UCSB-Hacks-XII/utils"
)

// Store is the persistence surface the service needs. The gorm Repository is
// the production implementation; tests use an in-memory fake.
type Store interface {
	UpsertByExternalID(ctx context.Context, e *Event) (*Event, error)
	FindByID(ctx context.Context, id uint) (*Event, error)
	ListInRange(ctx context.Context, userID string, start, end *time.Time, calendarID string, limit, offset int) ([]Event, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]any) (*Event, error)
	DeleteByID(ctx context.Context, id uint) error
	ClearAll(ctx context.Context) error
	CountsByCalendar(ctx context.Context, userID string) ([]CalendarCount, error)
	FindFixedConflicts(ctx context.Context, userID string, excludeID uint, newStart, newEnd time.Time) ([]Event, error)
	IterateByUser(ctx context.Context, userID string, fn func(*Event) error) error
}

// Service wraps the sync engine, the conflict engine and plain event CRUD.
type Service struct {
	Store    Store
	AuditSvc auditlog.Service
}

func NewService(store Store, auditSvc auditlog.Service) *Service {
	return &Service{Store: store, AuditSvc: auditSvc}
}

// ===========================
// 🔄 Bulk Sync
// Idempotent multi-shape ingestion: each raw entry is normalized, classified
// and upserted by (userID, externalID). Entries without an id are skipped
// and counted; they never abort the batch. A storage failure does abort it
// (no partial-success reporting, matching the source behavior).
func (s *Service) SyncEvents(ctx context.Context, userID string, rawEvents []map[string]any, ip string) (*BulkResult, error) {
	result := &BulkResult{}

	for _, raw := range rawEvents {
		normalized, err := ParseRawEvent(raw)
		if err != nil {
			result.NSkipped++
			continue
		}

		rawJSON, err := json.Marshal(raw)
		if err != nil {
			rawJSON = []byte("{}")
		}

		e := &Event{
			UserID:           userID,
			ExternalID:       normalized.ExternalID,
			CalendarSourceID: normalized.CalendarSourceID,
			Title:            normalized.Title,
			Description:      normalized.Description,
			Location:         normalized.Location,
			StartISO:         normalized.StartISO,
			EndISO:           normalized.EndISO,
			StartAt:          normalized.StartAt,
			EndAt:            normalized.EndAt,
			Raw:              datatypes.JSON(rawJSON),
			Status:           StatusFixed,
			EventType:        Classify(normalized.Title, normalized.Description),
		}

		if _, err := s.Store.UpsertByExternalID(ctx, e); err != nil {
			return nil, err
		}
		result.NUpserted++
	}

	s.logAction(ctx, userID, auditlog.ActionEventSync, map[string]any{
		"received": len(rawEvents),
		"upserted": result.NUpserted,
		"skipped":  result.NSkipped,
	}, ip, "success")
	utils.PublishActivity(userID, auditlog.ActionEventSync, map[string]any{
		"upserted": result.NUpserted,
	})

	return result, nil
}

// ===========================
// 🎯 Manual Create
func (s *Service) CreateEvent(ctx context.Context, req *CreateEventRequest, userID, ip string) (*Event, error) {
	if strings.TrimSpace(req.Title) == "" || req.StartTs == "" || req.EndTs == "" {
		return nil, fmt.Errorf("%w: title, startTs and endTs are required", ErrInvalidInput)
	}

	startAt := parseInstant(req.StartTs)
	endAt := parseInstant(req.EndTs)
	if startAt == nil || endAt == nil {
		return nil, fmt.Errorf("%w: startTs/endTs must be valid timestamps", ErrInvalidInput)
	}
	if !endAt.After(*startAt) {
		return nil, fmt.Errorf("%w: endTs must be after startTs", ErrInvalidInput)
	}

	eventType := req.Type
	if eventType == "" {
		eventType = Classify(req.Title, req.Description)
	} else if !ValidType(eventType) {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, req.Type)
	}

	e := &Event{
		UserID:           userID,
		ExternalID:       synthExternalID(),
		CalendarSourceID: req.CalendarID,
		Title:            req.Title,
		Description:      req.Description,
		Location:         req.Location,
		StartISO:         req.StartTs,
		EndISO:           req.EndTs,
		StartAt:          startAt,
		EndAt:            endAt,
		Status:           StatusFixed,
		EventType:        eventType,
	}

	created, err := s.Store.UpsertByExternalID(ctx, e)
	if err != nil {
		return nil, err
	}

	s.logAction(ctx, userID, auditlog.ActionEventCreated, map[string]any{
		"event_id": created.ID,
		"title":    created.Title,
		"type":     created.EventType,
	}, ip, "success")

	return created, nil
}

// ===========================
// ⚔️ Reschedule With Conflict Check
// Validates the new window, then refuses to move the event across any fixed
// event of the same user. The conflict read and the subsequent write are
// not wrapped in a transaction: two concurrent reschedules can both pass
// validation against a stale read. Accepted race, inherited from the source.
func (s *Service) RescheduleEvent(ctx context.Context, id uint, req *RescheduleRequest, ip string) (*Event, error) {
	if req.StartTs == "" || req.EndTs == "" {
		return nil, fmt.Errorf("%w: startTs and endTs are required", ErrInvalidInput)
	}

	newStart := parseInstant(req.StartTs)
	newEnd := parseInstant(req.EndTs)
	if newStart == nil || newEnd == nil {
		return nil, fmt.Errorf("%w: startTs/endTs must be valid timestamps", ErrInvalidInput)
	}
	if !newEnd.After(*newStart) {
		return nil, fmt.Errorf("%w: endTs must be after startTs", ErrInvalidInput)
	}

	target, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fixed, err := s.Store.FindFixedConflicts(ctx, target.UserID, target.ID, *newStart, *newEnd)
	if err != nil {
		return nil, err
	}
	if len(fixed) > 0 {
		conflictErr := &ConflictError{}
		for _, f := range fixed {
			conflictErr.Conflicts = append(conflictErr.Conflicts, ConflictingEvent{
				ID:    f.ID,
				Title: f.Title,
				Start: f.StartAt,
				End:   f.EndAt,
			})
		}
		return nil, conflictErr
	}

	updated, err := s.Store.UpdateFields(ctx, id, map[string]any{
		"start_at":  *newStart,
		"end_at":    *newEnd,
		"start_iso": req.StartTs,
		"end_iso":   req.EndTs,
	})
	if err != nil {
		return nil, err
	}

	s.logAction(ctx, target.UserID, auditlog.ActionEventRescheduled, map[string]any{
		"event_id": id,
		"title":    target.Title,
		"start":    req.StartTs,
		"end":      req.EndTs,
	}, ip, "success")
	utils.PublishActivity(target.UserID, auditlog.ActionEventRescheduled, map[string]any{
		"event_id": id,
	})

	return updated, nil
}

// ===========================
// 🔀 Status Toggle (malleable|fixed)
func (s *Service) UpdateStatus(ctx context.Context, id uint, status, ip string) (*Event, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("%w: status must be %q or %q", ErrInvalidInput, StatusMalleable, StatusFixed)
	}

	updated, err := s.Store.UpdateFields(ctx, id, map[string]any{"status": status})
	if err != nil {
		return nil, err
	}

	s.logAction(ctx, updated.UserID, auditlog.ActionEventStatus, map[string]any{
		"event_id": id,
		"status":   status,
	}, ip, "success")

	return updated, nil
}

// ===========================
// 🏷 Type Override
func (s *Service) UpdateType(ctx context.Context, id uint, eventType, ip string) (*Event, error) {
	if !ValidType(eventType) {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, eventType)
	}

	updated, err := s.Store.UpdateFields(ctx, id, map[string]any{"event_type": eventType})
	if err != nil {
		return nil, err
	}

	s.logAction(ctx, updated.UserID, auditlog.ActionEventType, map[string]any{
		"event_id": id,
		"type":     eventType,
	}, ip, "success")

	return updated, nil
}

// ===========================
// ❌ Delete
func (s *Service) DeleteEvent(ctx context.Context, id uint, ip string) error {
	target, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Store.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.logAction(ctx, target.UserID, auditlog.ActionEventDeleted, map[string]any{
		"event_id": id,
		"title":    target.Title,
	}, ip, "success")
	utils.PublishActivity(target.UserID, auditlog.ActionEventDeleted, map[string]any{
		"event_id": id,
	})

	return nil
}

// ===========================
// 💣 Clear All (dev/test utility)
func (s *Service) ClearAll(ctx context.Context, ip string) error {
	if err := s.Store.ClearAll(ctx); err != nil {
		return err
	}
	s.logAction(ctx, "", auditlog.ActionEventsCleared, nil, ip, "success")
	return nil
}

// ===========================
// 📄 Range List
// Window bounds accept full timestamps or bare dates; a date-only end bound
// is widened to the end of that day so [2026-01-10, 2026-01-10] includes
// events that day.
func (s *Service) ListEvents(ctx context.Context, userID, calendarID, startStr, endStr string, limit, offset int) ([]Event, error) {
	var start, end *time.Time

	if startStr != "" {
		start = parseInstant(startStr)
		if start == nil {
			return nil, fmt.Errorf("%w: invalid start", ErrInvalidInput)
		}
	}
	if endStr != "" {
		end = parseInstant(endStr)
		if end == nil {
			return nil, fmt.Errorf("%w: invalid end", ErrInvalidInput)
		}
		if len(endStr) == len("2006-01-02") {
			widened := end.Add(24*time.Hour - time.Nanosecond)
			end = &widened
		}
	}

	return s.Store.ListInRange(ctx, userID, start, end, calendarID, limit, offset)
}

// ===========================
// 📊 Calendars Aggregate
func (s *Service) ListCalendars(ctx context.Context, userID string) ([]CalendarCount, error) {
	return s.Store.CountsByCalendar(ctx, userID)
}

// ===========================
// 🔁 Bulk Reclassify
// Re-runs the classifier over every stored event for the user and writes
// back only changed results.
func (s *Service) Reclassify(ctx context.Context, userID, ip string) (*ReclassifyResult, error) {
	result := &ReclassifyResult{}

	err := s.Store.IterateByUser(ctx, userID, func(e *Event) error {
		result.Total++
		next := Classify(e.Title, e.Description)
		if next == e.EventType {
			return nil
		}
		if _, err := s.Store.UpdateFields(ctx, e.ID, map[string]any{"event_type": next}); err != nil {
			return err
		}
		result.Updated++
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logAction(ctx, userID, auditlog.ActionEventsReclassify, map[string]any{
		"total":   result.Total,
		"updated": result.Updated,
	}, ip, "success")

	return result, nil
}

// synthExternalID builds the identifier for internally created events.
func synthExternalID() string {
	return fmt.Sprintf("ai-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// logAction writes an audit entry, swallowing failures; activity logging
// must never fail a request.
func (s *Service) logAction(ctx context.Context, userID, action string, details map[string]any, ip, status string) {
	if s.AuditSvc == nil {
		return
	}
	_ = s.AuditSvc.LogAction(ctx, userID, action, details, ip, status)
}
