package reports

import (
	"context"

	"github.com/Nopesy/UCSB-Hacks-XII/internal/event"
)

type Service struct {
	Events   *event.Service
	Exporter Exporter
}

func NewService(events *event.Service, exporter Exporter) *Service {
	return &Service{Events: events, Exporter: exporter}
}

// ExportEvents renders a user's events in [start, end] as a download.
func (s *Service) ExportEvents(ctx context.Context, userID, calendarID, start, end, format string) ([]byte, string, string, error) {
	events, err := s.Events.ListEvents(ctx, userID, calendarID, start, end, event.MaxPageSize, 0)
	if err != nil {
		return nil, "", "", err
	}

	rows := make([]EventReportRow, 0, len(events))
	for _, e := range events {
		rows = append(rows, EventReportRow{
			ID:       e.ID,
			Title:    e.Title,
			Type:     e.EventType,
			Status:   e.Status,
			Calendar: e.CalendarSourceID,
			Start:    e.StartISO,
			End:      e.EndISO,
			Location: e.Location,
		})
	}

	return s.Exporter.Export(format, rows)
}
