package report

import (
	"github.com/hrops-dev/attendance-backend-go/internal/domain/attendance"
)

// DayEntry is one display row of the weekly view. Days without a ledger
// record keep HasRecord false and a "No Data" status label.
type DayEntry struct {
	Date        string            `json:"date"`
	Weekday     string            `json:"weekday"`
	HasRecord   bool              `json:"has_record"`
	Status      attendance.Status `json:"status"`
	StatusLabel string            `json:"status_label"`
	CheckIn     string            `json:"check_in,omitempty"`
	CheckOut    string            `json:"check_out,omitempty"`
	WorkPlace   string            `json:"work_place,omitempty"`
	Notes       string            `json:"notes,omitempty"`
}

// WeeklyView is the Monday-to-Sunday window containing the reference date.
// Always exactly seven entries, Monday first.
type WeeklyView struct {
	EmployeeID   string     `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	WeekStart    string     `json:"week_start"`
	WeekEnd      string     `json:"week_end"`
	Days         []DayEntry `json:"days"`
}

// MonthlySummary aggregates one calendar month. Workable excludes holiday
// days only when any holiday was recorded; percentages are rounded to one
// decimal. Unrecorded days still count toward Workable but are reported
// separately so the gap is visible.
type MonthlySummary struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Month        string `json:"month"` // YYYY-MM
	DaysInMonth  int    `json:"days_in_month"`
	Workable     int    `json:"workable_days"`

	Present    int `json:"present"`
	Absent     int `json:"absent"`
	Leave      int `json:"leave"`
	Holiday    int `json:"holiday"`
	Unrecorded int `json:"unrecorded"`

	PresentPct float64 `json:"present_pct"`
	AbsentPct  float64 `json:"absent_pct"`
	LeavePct   float64 `json:"leave_pct"`
	HolidayPct float64 `json:"holiday_pct"`
}
