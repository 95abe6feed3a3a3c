package event

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Hard cap on a single range query, regardless of the caller-requested
// limit. Protects against unbounded scans of a fully synced calendar.
const (
	MaxPageSize     = 1000
	DefaultPageSize = 500
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// upsertColumns are the mutable fields replaced on a sync upsert: everything
// derived from the source payload, including raw. Status is deliberately
// absent: it is user-owned, and a re-sync must not undo a malleable toggle.
var upsertColumns = []string{
	"calendar_source_id", "title", "description", "location",
	"start_iso", "end_iso", "start_at", "end_at",
	"raw", "event_type", "updated_at",
}

// ===========================
// 🔁 Upsert by (user_id, external_id)
// Absence is insert, presence is full replacement of the mutable fields.
// Never errors on "not found".
func (r *Repository) UpsertByExternalID(ctx context.Context, e *Event) (*Event, error) {
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(e).Error
	if err != nil {
		return nil, err
	}

	// On the conflict path gorm leaves the struct without the stored id;
	// re-read so callers always get the resulting record.
	var stored Event
	err = r.DB.WithContext(ctx).
		Where("user_id = ? AND external_id = ?", e.UserID, e.ExternalID).
		First(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// ===========================
// 🔍 Find By ID
func (r *Repository) FindByID(ctx context.Context, id uint) (*Event, error) {
	var e Event
	err := r.DB.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ===========================
// 📄 Range List
// An event is "in range" when its interval overlaps the window at all:
// end_at >= start AND start_at <= end. Ordered by start_at ascending.
func (r *Repository) ListInRange(ctx context.Context, userID string, start, end *time.Time, calendarID string, limit, offset int) ([]Event, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	query := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if start != nil {
		query = query.Where("end_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("start_at <= ?", *end)
	}
	if calendarID != "" {
		query = query.Where("calendar_source_id = ?", calendarID)
	}

	var events []Event
	err := query.
		Order("start_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	return events, err
}

// ===========================
// 🛠 Partial Update
func (r *Repository) UpdateFields(ctx context.Context, id uint, fields map[string]any) (*Event, error) {
	res := r.DB.WithContext(ctx).Model(&Event{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// ===========================
// ❌ Delete By ID
func (r *Repository) DeleteByID(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&Event{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ===========================
// 💣 Bulk Clear (dev/test utility)
// Unconditionally wipes events and their ratings.
func (r *Repository) ClearAll(ctx context.Context) error {
	if err := r.DB.WithContext(ctx).Exec("DELETE FROM event_ratings").Error; err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Exec("DELETE FROM events").Error
}

// ===========================
// 📊 Counts By Calendar
func (r *Repository) CountsByCalendar(ctx context.Context, userID string) ([]CalendarCount, error) {
	var counts []CalendarCount
	err := r.DB.WithContext(ctx).Model(&Event{}).
		Select("calendar_source_id, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("calendar_source_id").
		Order("count DESC").
		Scan(&counts).Error
	return counts, err
}

// ===========================
// ⚔️ Fixed-Event Conflict Query
// SQL mirror of IntervalConflicts: other events of the same user with
// status=fixed whose interval collides with [newStart, newEnd) under the
// three-clause rule. Events without parsed instants never match (NULL
// comparisons), same as the source behavior for malformed synced data.
func (r *Repository) FindFixedConflicts(ctx context.Context, userID string, excludeID uint, newStart, newEnd time.Time) ([]Event, error) {
	var conflicts []Event
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND id <> ? AND status = ?", userID, excludeID, StatusFixed).
		Where(`(start_at <= ? AND end_at > ?) OR (start_at < ? AND end_at >= ?) OR (start_at >= ? AND end_at <= ?)`,
			newStart, newStart, // (a) new start inside existing
			newEnd, newEnd, // (b) new end inside existing
			newStart, newEnd, // (c) new contains existing
		).
		Order("start_at ASC").
		Find(&conflicts).Error
	return conflicts, err
}

// ===========================
// 🔄 Batch Iteration (reclassify)
func (r *Repository) IterateByUser(ctx context.Context, userID string, fn func(*Event) error) error {
	var batch []Event
	res := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		FindInBatches(&batch, 200, func(tx *gorm.DB, _ int) error {
			for i := range batch {
				if err := fn(&batch[i]); err != nil {
					return err
				}
			}
			return nil
		})
	return res.Error
}
