package sleep

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Nopesy/UCSB-Hacks-XII/internal/auditlog"
	"github.com/Nopesy/UCSB-Hacks-XII/utils"
)

const dateKeyLayout = "2006-01-02"

// Store is the persistence surface the service needs.
type Store interface {
	Upsert(ctx context.Context, log *SleepLog) (*SleepLog, error)
	FindByDate(ctx context.Context, userID, dateKey string) (*SleepLog, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]SleepLog, error)
}

// Service owns sleep-log semantics. Days are resolved in Location, so a log
// posted at 23:30 local still lands on the local date even when UTC has
// already rolled over.
type Service struct {
	Store    Store
	AuditSvc auditlog.Service
	Location *time.Location

	now func() time.Time
}

func NewService(store Store, auditSvc auditlog.Service, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{Store: store, AuditSvc: auditSvc, Location: loc, now: time.Now}
}

// TodayKey is today's YYYY-MM-DD in the configured timezone.
func (s *Service) TodayKey() string {
	return s.now().In(s.Location).Format(dateKeyLayout)
}

// ===========================
// 🎯 Log Sleep (upsert)
func (s *Service) Log(ctx context.Context, req *LogRequest, userID, ip string) (*SleepLog, error) {
	dateKey := req.Date
	if dateKey == "" {
		dateKey = s.TodayKey()
	}
	if _, err := time.Parse(dateKeyLayout, dateKey); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if req.Hours < 0 || req.Hours > 24 {
		return nil, fmt.Errorf("%w: hours must be between 0 and 24", ErrInvalidInput)
	}
	if req.Quality != 0 && (req.Quality < 1 || req.Quality > 5) {
		return nil, fmt.Errorf("%w: quality must be between 1 and 5", ErrInvalidInput)
	}
	if err := validateClock(req.Bedtime); err != nil {
		return nil, fmt.Errorf("%w: bedtime %v", ErrInvalidInput, err)
	}
	if err := validateClock(req.WakeTime); err != nil {
		return nil, fmt.Errorf("%w: wakeTime %v", ErrInvalidInput, err)
	}

	stored, err := s.Store.Upsert(ctx, &SleepLog{
		UserID:   userID,
		DateKey:  dateKey,
		Hours:    req.Hours,
		Quality:  req.Quality,
		Bedtime:  req.Bedtime,
		WakeTime: req.WakeTime,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, err
	}

	if s.AuditSvc != nil {
		_ = s.AuditSvc.LogAction(ctx, userID, auditlog.ActionSleepLogged, map[string]any{
			"date":  stored.DateKey,
			"hours": stored.Hours,
		}, ip, "success")
	}
	utils.PublishActivity(userID, auditlog.ActionSleepLogged, map[string]any{
		"date": stored.DateKey,
	})

	return stored, nil
}

// ===========================
// 🔍 Reads
func (s *Service) GetToday(ctx context.Context, userID string) (*SleepLog, error) {
	return s.Store.FindByDate(ctx, userID, s.TodayKey())
}

func (s *Service) GetByDate(ctx context.Context, userID, dateKey string) (*SleepLog, error) {
	if _, err := time.Parse(dateKeyLayout, dateKey); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return s.Store.FindByDate(ctx, userID, dateKey)
}

func (s *Service) ListRecent(ctx context.Context, userID string, limit int) ([]SleepLog, error) {
	return s.Store.ListRecent(ctx, userID, limit)
}

// validateClock accepts "" or 24-hour "HH:MM".
func validateClock(v string) error {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ":")
	if len(parts) != 2 {
		return fmt.Errorf("must be 24-hour HH:MM, got %q", v)
	}
	var hh, mm int
	if _, err := fmt.Sscanf(v, "%d:%d", &hh, &mm); err != nil {
		return fmt.Errorf("must be 24-hour HH:MM, got %q", v)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return fmt.Errorf("must be 24-hour HH:MM, got %q", v)
	}
	return nil
}
