package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportMonthly implements report.ReportService. It renders one sheet of
// day rows for the calendar month plus a summary block, and returns the
// workbook content with a suggested filename.
func (s *ReportServiceImpl) ExportMonthly(ctx context.Context, date string) (*bytes.Buffer, string, error) {
	employeeID, name, ref, err := s.resolveReference(ctx, date)
	if err != nil {
		return nil, "", err
	}

	snapshot, err := s.ledger.SnapshotFor(ctx, employeeID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to snapshot ledger: %w", err)
	}

	summary := BuildMonthlySummary(snapshot, ref)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Monthly Attendance"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "F", 20)
	f.SetColWidth(sheetName, "G", "G", 32)

	f.SetCellValue(sheetName, "A1", "Employee")
	f.SetCellValue(sheetName, "B1", name)
	f.SetCellValue(sheetName, "A2", "Month")
	f.SetCellValue(sheetName, "B2", summary.Month)

	headers := []string{"Date", "Day", "Status", "Check-in", "Check-out", "Work Place", "Notes"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(sheetName, cell, h)
	}

	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	for day := 0; day < summary.DaysInMonth; day++ {
		entry := buildDayEntry(snapshot, first.AddDate(0, 0, day))
		row := 5 + day
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), entry.Date)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), entry.Weekday)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), entry.StatusLabel)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), entry.CheckIn)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), entry.CheckOut)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), entry.WorkPlace)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), entry.Notes)
	}

	summaryRow := 6 + summary.DaysInMonth
	lines := []struct {
		label string
		count int
		pct   float64
	}{
		{"Present", summary.Present, summary.PresentPct},
		{"Absent", summary.Absent, summary.AbsentPct},
		{"Leave", summary.Leave, summary.LeavePct},
		{"Holiday", summary.Holiday, summary.HolidayPct},
	}
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Summary")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow), fmt.Sprintf("Workable days: %d", summary.Workable))
	for i, line := range lines {
		row := summaryRow + 1 + i
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), line.label)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), line.count)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), fmt.Sprintf("%.1f%%", line.pct))
	}
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+5), "Unrecorded")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+5), summary.Unrecorded)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate workbook: %w", err)
	}

	filename := fmt.Sprintf("attendance-%s-%s.xlsx", summary.Month, employeeID)
	return buf, filename, nil
}
