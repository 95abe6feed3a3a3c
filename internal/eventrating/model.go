package eventrating

import "time"

// EventRating is a user's rating of a calendar event. Events are referenced
// by external id so a rating survives re-syncs that rewrite event rows.
// Uniqueness mirrors the event store: one rating per (user_id, external_id).
type EventRating struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"size:128;not null;uniqueIndex:idx_ratings_user_external"`
	ExternalID string    `json:"external_id" gorm:"size:512;not null;uniqueIndex:idx_ratings_user_external"`
	Rating     int       `json:"rating" gorm:"not null"`
	Comment    string    `json:"comment" gorm:"type:text"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (EventRating) TableName() string {
	return "event_ratings"
}

// RateRequest is the POST /ratings body.
type RateRequest struct {
	UserID     string `json:"user_id"`
	ExternalID string `json:"external_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}
