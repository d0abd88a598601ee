package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/wellingtonshopee/analitics/internal/models/dtos"
)

// Export column header. Semicolon-delimited for spreadsheet compatibility in
// pt-BR locales, matching the files the hub team already works with.
var exportHeader = []string{
	"TRACKING_NUMBER",
	"SOURCE_LOCATION",
	"SWEEPER_STATUS",
	"SUGGESTED_ACTION",
	"DISPOSITION",
}

// ExportService serializes a result set to delimited text. Callers must
// hand it rows produced by ReportService.Build so export and display can
// never diverge.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// WriteCSV writes the header and one line per result row.
func (s *ExportService) WriteCSV(w io.Writer, rows []dtos.ResultRow) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	if err := writer.Write(exportHeader); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.TrackingNumber,
			row.Source,
			row.SweeperStatus,
			row.Action,
			row.Label,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// FileName builds the attachment name for a report export.
func (s *ExportService) FileName(title string, window *dtos.DateWindow) string {
	name := strings.ReplaceAll(title, " ", "_")
	name = strings.ReplaceAll(name, ":", "")
	if window == nil {
		return name + ".csv"
	}
	return fmt.Sprintf("%s_%s_%s.csv",
		name,
		window.Start.Format("20060102"),
		window.End.Format("20060102"),
	)
}
