package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hrops-dev/attendance-backend-go/internal/domain/attendance"
	"github.com/hrops-dev/attendance-backend-go/internal/domain/employee"
	"github.com/hrops-dev/attendance-backend-go/internal/domain/report"
	"github.com/hrops-dev/attendance-backend-go/internal/pkg/validator"
)

type ReportServiceImpl struct {
	ledger    attendance.Ledger
	directory employee.Directory
	now       func() time.Time
}

func NewReportService(ledger attendance.Ledger, directory employee.Directory) report.ReportService {
	return &ReportServiceImpl{
		ledger:    ledger,
		directory: directory,
		now:       time.Now,
	}
}

// employeeIDFromContext extracts employee_id from JWT claims
func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return employeeID, nil
}

func (s *ReportServiceImpl) resolveReference(ctx context.Context, date string) (string, string, time.Time, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return "", "", time.Time{}, err
	}

	ref := s.now()
	if date != "" {
		parsed, ok := validator.IsValidDate(date)
		if !ok {
			return "", "", time.Time{}, validator.ValidationErrors{{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			}}
		}
		ref = parsed
	}

	name, err := s.directory.ResolveName(ctx, employeeID)
	if err != nil {
		name = employeeID
	}

	return employeeID, name, ref, nil
}

// WeeklyView implements report.ReportService.
func (s *ReportServiceImpl) WeeklyView(ctx context.Context, date string) (report.WeeklyView, error) {
	employeeID, name, ref, err := s.resolveReference(ctx, date)
	if err != nil {
		return report.WeeklyView{}, err
	}

	snapshot, err := s.ledger.SnapshotFor(ctx, employeeID)
	if err != nil {
		return report.WeeklyView{}, fmt.Errorf("failed to snapshot ledger: %w", err)
	}

	days := BuildWeek(snapshot, ref)
	return report.WeeklyView{
		EmployeeID:   employeeID,
		EmployeeName: name,
		WeekStart:    days[0].Date,
		WeekEnd:      days[6].Date,
		Days:         days,
	}, nil
}

// MonthlySummary implements report.ReportService.
func (s *ReportServiceImpl) MonthlySummary(ctx context.Context, date string) (report.MonthlySummary, error) {
	employeeID, name, ref, err := s.resolveReference(ctx, date)
	if err != nil {
		return report.MonthlySummary{}, err
	}

	snapshot, err := s.ledger.SnapshotFor(ctx, employeeID)
	if err != nil {
		return report.MonthlySummary{}, fmt.Errorf("failed to snapshot ledger: %w", err)
	}

	summary := BuildMonthlySummary(snapshot, ref)
	summary.EmployeeID = employeeID
	summary.EmployeeName = name
	return summary, nil
}

// BuildWeek computes the Monday-start, Sunday-end window containing ref and
// returns exactly seven entries in Monday-to-Sunday order, crossing month
// and year boundaries as needed. Pure: reads only the snapshot.
func BuildWeek(snapshot map[string]attendance.Record, ref time.Time) []report.DayEntry {
	// time.Weekday counts Sunday as 0; shift so Monday is 0.
	offset := (int(ref.Weekday()) + 6) % 7
	monday := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -offset)

	days := make([]report.DayEntry, 0, 7)
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		days = append(days, buildDayEntry(snapshot, day))
	}
	return days
}

func buildDayEntry(snapshot map[string]attendance.Record, day time.Time) report.DayEntry {
	date := day.Format(attendance.DateFormat)
	entry := report.DayEntry{
		Date:        date,
		Weekday:     day.Weekday().String(),
		Status:      attendance.StatusUnset,
		StatusLabel: attendance.StatusUnset.Label(),
	}

	rec, ok := snapshot[date]
	if !ok {
		return entry
	}

	entry.HasRecord = true
	entry.Status = rec.Status
	entry.StatusLabel = rec.Status.Label()
	entry.Notes = rec.Notes
	if p := rec.Presence; p != nil {
		entry.CheckIn = p.CheckInBucket.Label()
		entry.CheckOut = p.CheckOutBucket.Label()
		entry.WorkPlace = p.WorkLocation.Label()
	}
	return entry
}

// BuildMonthlySummary aggregates every calendar day of the month containing
// ref. Days without a record (or still unset) join no status bucket but do
// count toward the Workable denominator. Pure: reads only the snapshot.
func BuildMonthlySummary(snapshot map[string]attendance.Record, ref time.Time) report.MonthlySummary {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	summary := report.MonthlySummary{
		Month:       first.Format("2006-01"),
		DaysInMonth: daysInMonth,
	}

	for day := 1; day <= daysInMonth; day++ {
		date := first.AddDate(0, 0, day-1).Format(attendance.DateFormat)
		rec, ok := snapshot[date]
		if !ok {
			continue
		}
		switch rec.Status {
		case attendance.StatusPresent:
			summary.Present++
		case attendance.StatusAbsent:
			summary.Absent++
		case attendance.StatusLeave:
			summary.Leave++
		case attendance.StatusHoliday:
			summary.Holiday++
		}
	}
	summary.Unrecorded = daysInMonth - summary.Present - summary.Absent - summary.Leave - summary.Holiday

	// Holidays shrink the workable denominator only when any were recorded.
	summary.Workable = daysInMonth
	if summary.Holiday > 0 {
		summary.Workable = daysInMonth - summary.Holiday
	}

	summary.PresentPct = percentage(summary.Present, summary.Workable)
	summary.AbsentPct = percentage(summary.Absent, summary.Workable)
	summary.LeavePct = percentage(summary.Leave, summary.Workable)
	summary.HolidayPct = percentage(summary.Holiday, summary.DaysInMonth)

	return summary
}

// percentage returns 100*count/total rounded to one decimal place.
func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}
