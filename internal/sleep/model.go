package sleep

import "time"

// ============================
// 🟢 Sleep Log Model
// ============================

// SleepLog is one night of sleep for a user. A user has at most one log per
// calendar day; the day is identified by DateKey (YYYY-MM-DD resolved in the
// configured timezone, not UTC).
type SleepLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"size:128;not null;uniqueIndex:idx_sleep_user_date"`
	DateKey   string    `json:"date" gorm:"size:10;not null;uniqueIndex:idx_sleep_user_date"`
	Hours     float64   `json:"hours"`
	Quality   int       `json:"quality"`
	Bedtime   string    `json:"bedtime" gorm:"size:5"`
	WakeTime  string    `json:"wakeTime" gorm:"size:5"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SleepLog) TableName() string {
	return "sleep_logs"
}

// ============================
// 🟡 Requests
// ============================

// LogRequest is the POST /sleep body. Date is optional; when absent the log
// lands on today in the configured timezone.
type LogRequest struct {
	UserID   string  `json:"user_id"`
	Date     string  `json:"date"`
	Hours    float64 `json:"hours"`
	Quality  int     `json:"quality"`
	Bedtime  string  `json:"bedtime"`
	WakeTime string  `json:"wakeTime"`
	Notes    string  `json:"notes"`
}
