package eventrating

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("rating not found")

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Upsert inserts or replaces the rating for (user_id, external_id).
func (r *Repository) Upsert(ctx context.Context, rating *EventRating) (*EventRating, error) {
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
	}).Create(rating).Error
	if err != nil {
		return nil, err
	}

	var stored EventRating
	err = r.DB.WithContext(ctx).
		Where("user_id = ? AND external_id = ?", rating.UserID, rating.ExternalID).
		First(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *Repository) FindByExternalID(ctx context.Context, userID, externalID string) (*EventRating, error) {
	var rating EventRating
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND external_id = ?", userID, externalID).
		First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]EventRating, error) {
	var ratings []EventRating
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&ratings).Error
	return ratings, err
}

func (r *Repository) DeleteByExternalID(ctx context.Context, userID, externalID string) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND external_id = ?", userID, externalID).
		Delete(&EventRating{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
