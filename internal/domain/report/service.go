package report

import (
	"bytes"
	"context"
)

// ReportService produces attendance projections for the authenticated
// employee around a reference date.
type ReportService interface {
	// WeeklyView returns the Monday-start week containing the date
	WeeklyView(ctx context.Context, date string) (WeeklyView, error)

	// MonthlySummary aggregates the calendar month containing the date
	MonthlySummary(ctx context.Context, date string) (MonthlySummary, error)

	// ExportMonthly renders the month as an .xlsx workbook and returns the
	// file content plus a suggested filename
	ExportMonthly(ctx context.Context, date string) (*bytes.Buffer, string, error)
}
