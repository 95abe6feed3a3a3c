package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	FormatExcel = "excel"
	FormatCSV   = "csv"
)

// EventReportRow is one exported calendar event.
type EventReportRow struct {
	ID       uint
	Title    string
	Type     string
	Status   string
	Calendar string
	Start    string
	End      string
	Location string
}

// Exporter renders event rows into a downloadable file.
type Exporter interface {
	Export(format string, rows []EventReportRow) ([]byte, string, string, error)
}

type eventExporter struct{}

func NewExporter() Exporter {
	return &eventExporter{}
}

func (e *eventExporter) Export(format string, rows []EventReportRow) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatExcel:
		data, err := e.exportExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("events_report_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("events_report_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format: %s", format)
	}
}

var reportHeaders = []string{"ID", "Title", "Type", "Status", "Calendar", "Start", "End", "Location"}

func (e *eventExporter) exportExcel(rows []EventReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Events"
	f.SetSheetName("Sheet1", sheetName)

	for i, header := range reportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Title)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.Type)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.Calendar)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), r.Start)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), r.End)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), r.Location)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *eventExporter) exportCSV(rows []EventReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(reportHeaders); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			fmt.Sprint(r.ID),
			r.Title,
			r.Type,
			r.Status,
			r.Calendar,
			r.Start,
			r.End,
			r.Location,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
