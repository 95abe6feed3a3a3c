package event

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"
)

// fakeStore is an in-memory Store for exercising the sync and conflict
// engines without Postgres. Its overlap and conflict semantics mirror the
// SQL in repository.go.
type fakeStore struct {
	nextID uint
	events map[uint]*Event
}

func newFakeStore() *fakeStore {
	return &fakeStore{events: map[uint]*Event{}}
}

func (f *fakeStore) UpsertByExternalID(_ context.Context, e *Event) (*Event, error) {
	for _, existing := range f.events {
		if existing.UserID == e.UserID && existing.ExternalID == e.ExternalID {
			existing.CalendarSourceID = e.CalendarSourceID
			existing.Title = e.Title
			existing.Description = e.Description
			existing.Location = e.Location
			existing.StartISO = e.StartISO
			existing.EndISO = e.EndISO
			existing.StartAt = e.StartAt
			existing.EndAt = e.EndAt
			existing.Raw = e.Raw
			existing.EventType = e.EventType
			// status is user-owned, not replaced on upsert
			cp := *existing
			return &cp, nil
		}
	}
	f.nextID++
	stored := *e
	stored.ID = f.nextID
	f.events[stored.ID] = &stored
	cp := stored
	return &cp, nil
}

func (f *fakeStore) FindByID(_ context.Context, id uint) (*Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeStore) ListInRange(_ context.Context, userID string, start, end *time.Time, calendarID string, limit, offset int) ([]Event, error) {
	var out []Event
	for _, e := range f.events {
		if e.UserID != userID {
			continue
		}
		if calendarID != "" && e.CalendarSourceID != calendarID {
			continue
		}
		if start != nil && (e.EndAt == nil || e.EndAt.Before(*start)) {
			continue
		}
		if end != nil && (e.StartAt == nil || e.StartAt.After(*end)) {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartAt == nil || out[j].StartAt == nil {
			return out[j].StartAt == nil
		}
		return out[i].StartAt.Before(*out[j].StartAt)
	})
	return out, nil
}

func (f *fakeStore) UpdateFields(_ context.Context, id uint, fields map[string]any) (*Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "status":
			e.Status = v.(string)
		case "event_type":
			e.EventType = v.(string)
		case "start_at":
			t := v.(time.Time)
			e.StartAt = &t
		case "end_at":
			t := v.(time.Time)
			e.EndAt = &t
		case "start_iso":
			e.StartISO = v.(string)
		case "end_iso":
			e.EndISO = v.(string)
		}
	}
	cp := *e
	return &cp, nil
}

func (f *fakeStore) DeleteByID(_ context.Context, id uint) error {
	if _, ok := f.events[id]; !ok {
		return ErrNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeStore) ClearAll(_ context.Context) error {
	f.events = map[uint]*Event{}
	return nil
}

func (f *fakeStore) CountsByCalendar(_ context.Context, userID string) ([]CalendarCount, error) {
	byCal := map[string]int64{}
	for _, e := range f.events {
		if e.UserID == userID {
			byCal[e.CalendarSourceID]++
		}
	}
	var out []CalendarCount
	for cal, n := range byCal {
		out = append(out, CalendarCount{CalendarID: cal, Count: n})
	}
	return out, nil
}

func (f *fakeStore) FindFixedConflicts(_ context.Context, userID string, excludeID uint, newStart, newEnd time.Time) ([]Event, error) {
	var out []Event
	for _, e := range f.events {
		if e.UserID != userID || e.ID == excludeID || e.Status != StatusFixed {
			continue
		}
		if e.StartAt == nil || e.EndAt == nil {
			continue
		}
		if IntervalConflicts(*e.StartAt, *e.EndAt, newStart, newEnd) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeStore) IterateByUser(_ context.Context, userID string, fn func(*Event) error) error {
	for _, e := range f.events {
		if e.UserID != userID {
			continue
		}
		cp := *e
		if err := fn(&cp); err != nil {
			return err
		}
	}
	return nil
}

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore()
	return NewService(store, nil), store
}

func rawGoogleEvent(id, title, start, end string) map[string]any {
	return map[string]any{
		"id":          id,
		"summary":     title,
		"calendar_id": "primary",
		"start":       map[string]any{"dateTime": start},
		"end":         map[string]any{"dateTime": end},
	}
}

// ===========================
// Sync engine

func TestSyncEventsIdempotent(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	first := []map[string]any{rawGoogleEvent("g1", "Old title", "2026-01-10T10:00:00Z", "2026-01-10T11:00:00Z")}
	res, err := svc.SyncEvents(ctx, "u1", first, "")
	if err != nil {
		t.Fatalf("SyncEvents() error = %v", err)
	}
	if res.NUpserted != 1 {
		t.Fatalf("NUpserted = %d, want 1", res.NUpserted)
	}

	second := []map[string]any{rawGoogleEvent("g1", "New title", "2026-01-10T12:00:00Z", "2026-01-10T13:00:00Z")}
	if _, err := svc.SyncEvents(ctx, "u1", second, ""); err != nil {
		t.Fatalf("SyncEvents() error = %v", err)
	}

	if len(store.events) != 1 {
		t.Fatalf("stored %d events, want 1 (idempotent upsert)", len(store.events))
	}
	for _, e := range store.events {
		if e.Title != "New title" {
			t.Errorf("Title = %q, want latest payload", e.Title)
		}
	}
}

func TestSyncEventsSkipsMalformed(t *testing.T) {
	svc, store := newTestService()

	batch := []map[string]any{
		rawGoogleEvent("g1", "Kept", "2026-01-10T10:00:00Z", "2026-01-10T11:00:00Z"),
		{"summary": "No id, skipped"},
		rawGoogleEvent("g2", "Also kept", "2026-01-11T10:00:00Z", "2026-01-11T11:00:00Z"),
	}

	res, err := svc.SyncEvents(context.Background(), "u1", batch, "")
	if err != nil {
		t.Fatalf("SyncEvents() error = %v", err)
	}
	if res.NUpserted != 2 || res.NSkipped != 1 {
		t.Errorf("result = %+v, want 2 upserted / 1 skipped", res)
	}
	if len(store.events) != 2 {
		t.Errorf("stored %d events, want 2", len(store.events))
	}
}

func TestSyncEventsEmptyBatch(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.SyncEvents(context.Background(), "u1", nil, "")
	if err != nil {
		t.Fatalf("SyncEvents() error = %v", err)
	}
	if res.NUpserted != 0 || res.NSkipped != 0 {
		t.Errorf("result = %+v, want zero counts", res)
	}
}

func TestSyncEventsClassifies(t *testing.T) {
	svc, store := newTestService()

	batch := []map[string]any{rawGoogleEvent("g1", "Midterm Exam", "2026-01-10T10:00:00Z", "2026-01-10T12:00:00Z")}
	if _, err := svc.SyncEvents(context.Background(), "u1", batch, ""); err != nil {
		t.Fatalf("SyncEvents() error = %v", err)
	}

	for _, e := range store.events {
		if e.EventType != TypeExam {
			t.Errorf("EventType = %q, want %q", e.EventType, TypeExam)
		}
		if e.Status != StatusFixed {
			t.Errorf("Status = %q, want default %q", e.Status, StatusFixed)
		}
	}
}

func TestSyncEventsPreservesStatusToggle(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	batch := []map[string]any{rawGoogleEvent("g1", "Seminar", "2026-01-10T10:00:00Z", "2026-01-10T11:00:00Z")}
	if _, err := svc.SyncEvents(ctx, "u1", batch, ""); err != nil {
		t.Fatalf("SyncEvents() error = %v", err)
	}

	var id uint
	for _, e := range store.events {
		id = e.ID
	}
	if _, err := svc.UpdateStatus(ctx, id, StatusMalleable, ""); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	// Re-sync must not undo the user's toggle.
	if _, err := svc.SyncEvents(ctx, "u1", batch, ""); err != nil {
		t.Fatalf("SyncEvents() error = %v", err)
	}
	if got := store.events[id].Status; got != StatusMalleable {
		t.Errorf("Status after re-sync = %q, want %q", got, StatusMalleable)
	}
}

// ===========================
// Manual create

func TestCreateEventValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateEventRequest
	}{
		{"missing title", CreateEventRequest{StartTs: "2026-01-10T10:00:00Z", EndTs: "2026-01-10T11:00:00Z"}},
		{"missing times", CreateEventRequest{Title: "X"}},
		{"unparseable start", CreateEventRequest{Title: "X", StartTs: "soon", EndTs: "2026-01-10T11:00:00Z"}},
		{"end equals start", CreateEventRequest{Title: "X", StartTs: "2026-01-10T10:00:00Z", EndTs: "2026-01-10T10:00:00Z"}},
		{"end before start", CreateEventRequest{Title: "X", StartTs: "2026-01-10T11:00:00Z", EndTs: "2026-01-10T10:00:00Z"}},
		{"bad type", CreateEventRequest{Title: "X", StartTs: "2026-01-10T10:00:00Z", EndTs: "2026-01-10T11:00:00Z", Type: "picnic"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateEvent(ctx, &tt.req, "u1", "")
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("CreateEvent() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCreateEventClassifiesAndSynthesizesID(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.CreateEvent(context.Background(), &CreateEventRequest{
		Title:   "Midterm Exam",
		StartTs: "2026-01-10T10:00:00Z",
		EndTs:   "2026-01-10T12:00:00Z",
	}, "u1", "")
	if err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}
	if created.EventType != TypeExam {
		t.Errorf("EventType = %q, want %q", created.EventType, TypeExam)
	}
	if !strings.HasPrefix(created.ExternalID, "ai-") {
		t.Errorf("ExternalID = %q, want ai- prefix", created.ExternalID)
	}
}

// ===========================
// Conflict engine

func seedEvent(t *testing.T, store *fakeStore, userID, title, status string, start, end time.Time) uint {
	t.Helper()
	stored, err := store.UpsertByExternalID(context.Background(), &Event{
		UserID:     userID,
		ExternalID: "seed-" + title,
		Title:      title,
		StartAt:    &start,
		EndAt:      &end,
		Status:     status,
		EventType:  TypeEvent,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", title, err)
	}
	return stored.ID
}

func TestRescheduleConflict(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	fixedID := seedEvent(t, store, "u1", "Fixed A", StatusFixed, at(10, 0), at(11, 0))
	targetID := seedEvent(t, store, "u1", "Malleable B", StatusMalleable, at(14, 0), at(15, 0))

	_, err := svc.RescheduleEvent(ctx, targetID, &RescheduleRequest{
		StartTs: "2026-01-10T10:30:00Z",
		EndTs:   "2026-01-10T11:30:00Z",
	}, "")

	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("RescheduleEvent() error = %v, want ConflictError", err)
	}
	if len(conflictErr.Conflicts) != 1 || conflictErr.Conflicts[0].ID != fixedID {
		t.Errorf("Conflicts = %+v, want fixed event %d", conflictErr.Conflicts, fixedID)
	}

	// The target must not have moved.
	if got := store.events[targetID]; !got.StartAt.Equal(at(14, 0)) {
		t.Errorf("target moved despite conflict: StartAt = %v", got.StartAt)
	}
}

func TestRescheduleSuccess(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	seedEvent(t, store, "u1", "Fixed A", StatusFixed, at(10, 0), at(11, 0))
	targetID := seedEvent(t, store, "u1", "Malleable B", StatusMalleable, at(10, 30), at(11, 30))

	updated, err := svc.RescheduleEvent(ctx, targetID, &RescheduleRequest{
		StartTs: "2026-01-10T12:00:00Z",
		EndTs:   "2026-01-10T13:00:00Z",
	}, "")
	if err != nil {
		t.Fatalf("RescheduleEvent() error = %v", err)
	}
	if !updated.StartAt.Equal(at(12, 0)) || !updated.EndAt.Equal(at(13, 0)) {
		t.Errorf("updated window = %v-%v, want 12:00-13:00", updated.StartAt, updated.EndAt)
	}
	if updated.StartISO != "2026-01-10T12:00:00Z" {
		t.Errorf("StartISO mirror = %q", updated.StartISO)
	}
}

func TestRescheduleIgnoresMalleableAndOtherUsers(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	// Overlapping, but malleable, so not a conflict source.
	seedEvent(t, store, "u1", "Other malleable", StatusMalleable, at(10, 0), at(11, 0))
	// Overlapping and fixed, but another user's calendar.
	seedEvent(t, store, "u2", "Foreign fixed", StatusFixed, at(10, 0), at(11, 0))
	targetID := seedEvent(t, store, "u1", "Target", StatusMalleable, at(14, 0), at(15, 0))

	if _, err := svc.RescheduleEvent(ctx, targetID, &RescheduleRequest{
		StartTs: "2026-01-10T10:30:00Z",
		EndTs:   "2026-01-10T11:30:00Z",
	}, ""); err != nil {
		t.Fatalf("RescheduleEvent() error = %v", err)
	}
}

func TestRescheduleValidationBoundary(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	targetID := seedEvent(t, store, "u1", "Target", StatusMalleable, at(14, 0), at(15, 0))

	// Ordering is validated before any conflict lookup.
	_, err := svc.RescheduleEvent(ctx, targetID, &RescheduleRequest{
		StartTs: "2026-01-10T11:00:00Z",
		EndTs:   "2026-01-10T10:00:00Z",
	}, "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("reversed window: error = %v, want ErrInvalidInput", err)
	}

	_, err = svc.RescheduleEvent(ctx, 9999, &RescheduleRequest{
		StartTs: "2026-01-10T10:00:00Z",
		EndTs:   "2026-01-10T11:00:00Z",
	}, "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: error = %v, want ErrNotFound", err)
	}
}

// ===========================
// Range list

func TestListEventsRangeOverlap(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	seedEvent(t, store, "u1", "Morning block", StatusFixed, at(10, 0), at(11, 0))

	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"same-day window", "2026-01-10", "2026-01-10", 1},
		{"partial overlap", "2026-01-09", "2026-01-10T10:30:00Z", 1},
		{"after the event", "2026-01-11", "2026-01-12", 0},
		{"before the event", "2026-01-08", "2026-01-09", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := svc.ListEvents(ctx, "u1", "", tt.start, tt.end, 0, 0)
			if err != nil {
				t.Fatalf("ListEvents() error = %v", err)
			}
			if len(events) != tt.want {
				t.Errorf("got %d events, want %d", len(events), tt.want)
			}
		})
	}
}

// ===========================
// Status / type / reclassify

func TestUpdateStatusValidation(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	id := seedEvent(t, store, "u1", "Target", StatusFixed, at(10, 0), at(11, 0))

	if _, err := svc.UpdateStatus(ctx, id, "frozen", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("invalid status: error = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.UpdateStatus(ctx, 9999, StatusMalleable, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: error = %v, want ErrNotFound", err)
	}

	updated, err := svc.UpdateStatus(ctx, id, StatusMalleable, "")
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if updated.Status != StatusMalleable {
		t.Errorf("Status = %q, want %q", updated.Status, StatusMalleable)
	}
}

func TestReclassifyWritesOnlyChanges(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	// Misclassified: title says exam, stored type says event.
	seedEvent(t, store, "u1", "Physics exam", StatusFixed, at(10, 0), at(11, 0))
	// Already correct after classification.
	correctID := seedEvent(t, store, "u1", "Dentist", StatusFixed, at(12, 0), at(13, 0))

	res, err := svc.Reclassify(ctx, "u1", "")
	if err != nil {
		t.Fatalf("Reclassify() error = %v", err)
	}
	if res.Total != 2 || res.Updated != 1 {
		t.Errorf("result = %+v, want total 2 / updated 1", res)
	}
	if store.events[correctID].EventType != TypeEvent {
		t.Errorf("unchanged event was rewritten")
	}
}
