package event

import (
	"fmt"
	"time"
)

// NormalizedEvent is the intermediate record produced from one raw sync
// entry, before classification and persistence.
type NormalizedEvent struct {
	ExternalID       string
	CalendarSourceID string
	Title            string
	Description      string
	Location         string
	StartISO         string
	EndISO           string
	StartAt          *time.Time
	EndAt            *time.Time
}

// ErrMissingExternalID marks a sync entry with no usable identifier. Such
// entries are skipped and counted, they never abort the batch.
var ErrMissingExternalID = fmt.Errorf("raw event has no id")

// ParseRawEvent normalizes one raw calendar entry. Field names vary by
// source, so extraction tries ordered aliases: the Google agent posts
// events with id/summary/calendar_id, while manual re-imports use
// external_id/title/calendarId.
func ParseRawEvent(raw map[string]any) (NormalizedEvent, error) {
	externalID := firstString(raw, "id", "external_id")
	if externalID == "" {
		return NormalizedEvent{}, ErrMissingExternalID
	}

	n := NormalizedEvent{
		ExternalID:       externalID,
		CalendarSourceID: firstString(raw, "calendar_id", "calendarId"),
		Title:            firstString(raw, "summary", "title"),
		Description:      firstString(raw, "description"),
		Location:         firstString(raw, "location"),
	}

	n.StartISO, n.StartAt = extractTime(raw["start"])
	n.EndISO, n.EndAt = extractTime(raw["end"])

	return n, nil
}

// firstString returns the first non-empty string among the named fields.
func firstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := raw[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// extractTime pulls a timestamp out of one of three source shapes, in
// priority order: a nested object with a dateTime, a nested object with a
// date-only date, or a bare string. The original text is always kept; the
// parsed instant is nil when the text is absent or unparseable.
func extractTime(value any) (string, *time.Time) {
	var iso string

	switch v := value.(type) {
	case map[string]any:
		if dt, ok := v["dateTime"].(string); ok && dt != "" {
			iso = dt
		} else if d, ok := v["date"].(string); ok && d != "" {
			iso = d
		}
	case string:
		iso = v
	}

	if iso == "" {
		return "", nil
	}
	return iso, parseInstant(iso)
}

// parseInstant tries the timestamp layouts seen in calendar payloads.
func parseInstant(iso string) *time.Time {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return &t
		}
	}
	return nil
}
