package sleep

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	logs map[string]*SleepLog // keyed by userID + "/" + dateKey
}

func newFakeStore() *fakeStore {
	return &fakeStore{logs: map[string]*SleepLog{}}
}

func (f *fakeStore) Upsert(_ context.Context, log *SleepLog) (*SleepLog, error) {
	key := log.UserID + "/" + log.DateKey
	if existing, ok := f.logs[key]; ok {
		log.ID = existing.ID
	} else {
		log.ID = uint(len(f.logs) + 1)
	}
	stored := *log
	f.logs[key] = &stored
	cp := stored
	return &cp, nil
}

func (f *fakeStore) FindByDate(_ context.Context, userID, dateKey string) (*SleepLog, error) {
	log, ok := f.logs[userID+"/"+dateKey]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *log
	return &cp, nil
}

func (f *fakeStore) ListRecent(_ context.Context, userID string, _ int) ([]SleepLog, error) {
	var out []SleepLog
	for _, log := range f.logs {
		if log.UserID == userID {
			out = append(out, *log)
		}
	}
	return out, nil
}

func newTestService(loc *time.Location, now time.Time) (*Service, *fakeStore) {
	store := newFakeStore()
	svc := NewService(store, nil, loc)
	svc.now = func() time.Time { return now }
	return svc, store
}

func TestTodayKeyUsesConfiguredTimezone(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}

	// 05:00 UTC on Jan 10 is still the evening of Jan 9 in Los Angeles.
	now := time.Date(2026, 1, 10, 5, 0, 0, 0, time.UTC)

	svc, _ := newTestService(la, now)
	if got := svc.TodayKey(); got != "2026-01-09" {
		t.Errorf("TodayKey() = %q, want 2026-01-09", got)
	}

	utcSvc, _ := newTestService(time.UTC, now)
	if got := utcSvc.TodayKey(); got != "2026-01-10" {
		t.Errorf("TodayKey() in UTC = %q, want 2026-01-10", got)
	}
}

func TestLogDefaultsToToday(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	svc, store := newTestService(time.UTC, now)

	stored, err := svc.Log(context.Background(), &LogRequest{Hours: 7.5}, "u1", "")
	if err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if stored.DateKey != "2026-01-10" {
		t.Errorf("DateKey = %q, want today", stored.DateKey)
	}
	if _, ok := store.logs["u1/2026-01-10"]; !ok {
		t.Errorf("log not stored under today's key")
	}
}

func TestLogSameDayReplaces(t *testing.T) {
	svc, store := newTestService(time.UTC, time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	if _, err := svc.Log(ctx, &LogRequest{Date: "2026-01-09", Hours: 6}, "u1", ""); err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if _, err := svc.Log(ctx, &LogRequest{Date: "2026-01-09", Hours: 8, Quality: 4}, "u1", ""); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	if len(store.logs) != 1 {
		t.Fatalf("stored %d logs, want 1 (upsert per day)", len(store.logs))
	}
	if got := store.logs["u1/2026-01-09"]; got.Hours != 8 || got.Quality != 4 {
		t.Errorf("log = %+v, want latest values", got)
	}
}

func TestLogValidation(t *testing.T) {
	svc, _ := newTestService(time.UTC, time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	tests := []struct {
		name string
		req  LogRequest
	}{
		{"bad date", LogRequest{Date: "Jan 9", Hours: 7}},
		{"negative hours", LogRequest{Hours: -1}},
		{"too many hours", LogRequest{Hours: 25}},
		{"quality out of range", LogRequest{Hours: 7, Quality: 6}},
		{"bad bedtime", LogRequest{Hours: 7, Bedtime: "25:00"}},
		{"bad wake time", LogRequest{Hours: 7, WakeTime: "8am"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Log(ctx, &tt.req, "u1", ""); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Log() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestGetByDate(t *testing.T) {
	svc, _ := newTestService(time.UTC, time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	if _, err := svc.Log(ctx, &LogRequest{Date: "2026-01-09", Hours: 7}, "u1", ""); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	if _, err := svc.GetByDate(ctx, "u1", "2026-01-09"); err != nil {
		t.Errorf("GetByDate() error = %v", err)
	}
	if _, err := svc.GetByDate(ctx, "u1", "2026-01-08"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing day: error = %v, want ErrNotFound", err)
	}
	if _, err := svc.GetByDate(ctx, "u1", "yesterday"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad key: error = %v, want ErrInvalidInput", err)
	}
}
