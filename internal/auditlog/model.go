package auditlog

import (
	"time"
)

// Actions recorded against the activity log.
const (
	ActionEventCreated     = "EVENT_CREATED"
	ActionEventSync        = "EVENT_SYNC"
	ActionEventRescheduled = "EVENT_RESCHEDULED"
	ActionEventStatus      = "EVENT_STATUS_CHANGED"
	ActionEventType        = "EVENT_TYPE_CHANGED"
	ActionEventDeleted     = "EVENT_DELETED"
	ActionEventsCleared    = "EVENTS_CLEARED"
	ActionEventsReclassify = "EVENTS_RECLASSIFIED"
	ActionSleepLogged      = "SLEEP_LOGGED"
)

// AuditLog represents the audit_logs table. User ids are free strings, the
// same trusted identifiers the event store uses; there is no user registry
// to join against.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:varchar(128);index" json:"user_id"`
	Action    string    `gorm:"size:100;not null;index" json:"action"`
	Details   string    `gorm:"type:jsonb" json:"details"` // freeform JSON details
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	Status    string    `gorm:"size:20;not null;index" json:"status"` // success/failure
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName overrides table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// AuditLogFilter represents filters for querying audit logs
type AuditLogFilter struct {
	UserID   string     `json:"user_id"`
	Action   string     `json:"action"`
	Status   string     `json:"status"`
	FromDate *time.Time `json:"from_date"`
	ToDate   *time.Time `json:"to_date"`
	Page     int        `json:"page"`
	Limit    int        `json:"limit"`
}

// PaginatedAuditLogs represents paginated audit log response
type PaginatedAuditLogs struct {
	Data       []AuditLog `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
}
