package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/mbergmann/wachplan/internal/config"
	"github.com/mbergmann/wachplan/pkg/core/model"
	"github.com/mbergmann/wachplan/pkg/core/roster"
)

// exportHeader is the column layout shared by CSV files and sheet tabs.
var exportHeader = []string{
	"Name", "Phone", "Guard ID", "E-PIN",
	"Start Date", "End Date", "Start Time", "End Time",
	"Shift Type", "Locations", "Mobile", "Recurring", "Weekdays", "Notes",
}

// SheetWriter defines the sheet operations needed to publish a roster
type SheetWriter interface {
	ClearTab(spreadsheetID, tab string) error
	AppendRows(spreadsheetID, tab string, values [][]interface{}) error
}

// ExportRoster writes the filtered, sorted roster as CSV to w and
// returns the number of data rows written.
func ExportRoster(
	ctx context.Context,
	store RosterStore,
	logger *zap.Logger,
	criteria roster.Criteria,
	field roster.SortField,
	dir roster.Direction,
	w io.Writer,
) (int, error) {
	result, err := DashboardView(ctx, store, logger, criteria, field, dir)
	if err != nil {
		return 0, err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return 0, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, rec := range result.Records {
		if err := writer.Write(exportRow(rec)); err != nil {
			return 0, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush csv: %w", err)
	}

	logger.Info("Roster exported", zap.Int("rows", len(result.Records)))
	return len(result.Records), nil
}

// PublishRoster replaces the configured sheet tab with the filtered,
// sorted roster, so the shared spreadsheet always mirrors the last
// published dashboard view.
func PublishRoster(
	ctx context.Context,
	store RosterStore,
	sheets SheetWriter,
	cfg *config.Config,
	logger *zap.Logger,
	criteria roster.Criteria,
	field roster.SortField,
	dir roster.Direction,
) (int, error) {
	result, err := DashboardView(ctx, store, logger, criteria, field, dir)
	if err != nil {
		return 0, err
	}

	values := make([][]interface{}, 0, len(result.Records)+1)
	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	values = append(values, header)

	for _, rec := range result.Records {
		row := exportRow(rec)
		cells := make([]interface{}, len(row))
		for i, c := range row {
			cells[i] = c
		}
		values = append(values, cells)
	}

	logger.Info("Publishing roster to sheet",
		zap.String("spreadsheet_id", cfg.ExportSheetID),
		zap.String("tab", cfg.ExportTab),
		zap.Int("rows", len(result.Records)))

	if err := sheets.ClearTab(cfg.ExportSheetID, cfg.ExportTab); err != nil {
		return 0, fmt.Errorf("failed to clear export tab: %w", err)
	}
	if err := sheets.AppendRows(cfg.ExportSheetID, cfg.ExportTab, values); err != nil {
		return 0, fmt.Errorf("failed to append roster rows: %w", err)
	}

	return len(result.Records), nil
}

func exportRow(rec model.AvailabilityRecord) []string {
	return []string{
		rec.Owner.FullName(),
		rec.Owner.PhoneNumber,
		rec.Owner.GuardIDNumber,
		rec.Owner.EPinNumber,
		rec.StartDate,
		rec.EndDate,
		rec.StartTime,
		rec.EndTime,
		string(rec.ShiftType),
		rec.JoinedLocations(),
		string(rec.MobileDeployable),
		strconv.FormatBool(rec.IsRecurring),
		rec.JoinedWeekdays(),
		rec.Notes,
	}
}
