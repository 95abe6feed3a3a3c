package sleep

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🔁 Upsert by (user_id, date_key)
// Logging sleep twice for the same day replaces the earlier log.
func (r *Repository) Upsert(ctx context.Context, log *SleepLog) (*SleepLog, error) {
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"hours", "quality", "bedtime", "wake_time", "notes", "updated_at",
		}),
	}).Create(log).Error
	if err != nil {
		return nil, err
	}

	var stored SleepLog
	err = r.DB.WithContext(ctx).
		Where("user_id = ? AND date_key = ?", log.UserID, log.DateKey).
		First(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// ===========================
// 🔍 Find By Date Key
func (r *Repository) FindByDate(ctx context.Context, userID, dateKey string) (*SleepLog, error) {
	var log SleepLog
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND date_key = ?", userID, dateKey).
		First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// ===========================
// 📄 Recent Logs
func (r *Repository) ListRecent(ctx context.Context, userID string, limit int) ([]SleepLog, error) {
	if limit <= 0 || limit > 90 {
		limit = 30
	}
	var logs []SleepLog
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date_key DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
