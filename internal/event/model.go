package event

import (
	"time"

	"gorm.io/datatypes"
)

// Scheduling status values. Fixed events act as hard constraints for the
// conflict check; malleable events may be moved by the external optimizer.
const (
	StatusFixed     = "fixed"
	StatusMalleable = "malleable"
)

// Event type values assigned by the classifier.
const (
	TypeClass      = "class"
	TypeMeeting    = "meeting"
	TypeMeal       = "meal"
	TypeExam       = "exam"
	TypeAssignment = "assignment"
	TypeNap        = "nap"
	TypeExercise   = "exercise"
	TypeSocial     = "social"
	TypeEvent      = "event" // default / fallback
)

// ValidStatus reports whether s is a recognized scheduling status.
func ValidStatus(s string) bool {
	return s == StatusFixed || s == StatusMalleable
}

// ValidType reports whether t is a recognized event type.
func ValidType(t string) bool {
	switch t {
	case TypeClass, TypeMeeting, TypeMeal, TypeExam, TypeAssignment,
		TypeNap, TypeExercise, TypeSocial, TypeEvent:
		return true
	}
	return false
}

// ============================
// 🔷 GORM Event Model
type Event struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"type:varchar(128);not null;uniqueIndex:idx_events_user_external,priority:1" json:"userId"`

	// Identifier from the upstream calendar source, or a synthesized
	// "ai-<ms>-<rand>" id for internally created events. (user_id,
	// external_id) is unique; sync upserts by this pair.
	ExternalID       string `gorm:"type:varchar(255);not null;uniqueIndex:idx_events_user_external,priority:2" json:"externalId"`
	CalendarSourceID string `gorm:"type:varchar(255);index" json:"calendarSourceId"`

	Title       string `gorm:"type:text" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Location    string `gorm:"type:text" json:"location"`

	// Textual timestamps exactly as received, kept for traceability even
	// when parsing fails.
	StartISO string `gorm:"type:varchar(64)" json:"startISO"`
	EndISO   string `gorm:"type:varchar(64)" json:"endISO"`

	// Parsed instants; nil when the source text was empty or unparseable.
	StartAt *time.Time `gorm:"index" json:"startAt"`
	EndAt   *time.Time `gorm:"index" json:"endAt"`

	// Verbatim upstream payload, never interpreted.
	Raw datatypes.JSON `gorm:"type:jsonb" json:"raw,omitempty"`

	Status    string    `gorm:"type:varchar(20);not null;default:fixed" json:"status"`
	EventType string    `gorm:"type:varchar(20);not null;default:event" json:"type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName overrides table name for Event
func (Event) TableName() string {
	return "events"
}

// ============================
// 🟡 Requests

// SyncRequest carries a bulk payload from the calendar agent. Events is a
// pointer so a missing/non-array field can be rejected while an empty array
// stays a valid no-op.
type SyncRequest struct {
	UserID string            `json:"user_id"`
	Events *[]map[string]any `json:"events"`
}

type CreateEventRequest struct {
	UserID      string `json:"userId"`
	CalendarID  string `json:"calendarId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartTs     string `json:"startTs"`
	EndTs       string `json:"endTs"`
	Type        string `json:"type"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UpdateTypeRequest struct {
	Type string `json:"type"`
}

type RescheduleRequest struct {
	StartTs string `json:"startTs"`
	EndTs   string `json:"endTs"`
}

type ReclassifyRequest struct {
	UserID string `json:"user_id"`
}

// ============================
// 🟠 Responses

// BulkResult summarizes one sync batch. nUpserted matches the number of
// records written; malformed entries are skipped and counted, never abort
// the batch.
type BulkResult struct {
	NUpserted int `json:"nUpserted"`
	NSkipped  int `json:"nSkipped"`
}

// ConflictingEvent is the caller-facing shape of a fixed event blocking a
// reschedule.
type ConflictingEvent struct {
	ID    uint       `json:"id"`
	Title string     `json:"title"`
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// CalendarCount is one row of the per-calendar aggregate.
type CalendarCount struct {
	CalendarID string `json:"calendarId" gorm:"column:calendar_source_id"`
	Count      int64  `json:"count"`
}

// ReclassifyResult reports a bulk re-run of the classifier.
type ReclassifyResult struct {
	Total   int `json:"total"`
	Updated int `json:"updated"`
}
