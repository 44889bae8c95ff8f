package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hrops-dev/attendance-backend-go/internal/domain/attendance"
	"github.com/hrops-dev/attendance-backend-go/internal/domain/employee"
)

const defaultLeaveNote = "Marked as Leave"

type AttendanceServiceImpl struct {
	ledger    attendance.Ledger
	directory employee.Directory
	locator   attendance.Locator
	notifier  attendance.Notifier
	gate      *PromptGate

	locateTimeout time.Duration
	now           func() time.Time
}

func NewAttendanceService(
	ledger attendance.Ledger,
	directory employee.Directory,
	locator attendance.Locator,
	notifier attendance.Notifier,
	gate *PromptGate,
	locateTimeout time.Duration,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		ledger:        ledger,
		directory:     directory,
		locator:       locator,
		notifier:      notifier,
		gate:          gate,
		locateTimeout: locateTimeout,
		now:           time.Now,
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

func (s *AttendanceServiceImpl) today() string {
	return s.now().Format(attendance.DateFormat)
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	date := s.today()

	var patch attendance.Patch
	if req.MarkAsLeave {
		status := attendance.StatusLeave
		note := req.Note
		if note == "" {
			note = defaultLeaveNote
		}
		patch = attendance.Patch{Status: &status, Notes: &note}
	} else {
		status := attendance.StatusPresent
		patch = attendance.Patch{
			Status: &status,
			CheckIn: &attendance.CheckInUpdate{
				Bucket:       req.Bucket,
				WorkLocation: req.WorkLocation,
				Coordinates:  s.locate(ctx, employeeID, req.Coordinates),
			},
			// A fresh check-in always resets any earlier check-out for
			// the same day.
			CheckOut: &attendance.CheckOutUpdate{},
		}
		if req.Note != "" {
			note := req.Note
			patch.Notes = &note
		}
	}

	rec, err := s.ledger.Upsert(ctx, employeeID, date, patch)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to save check-in: %w", err)
	}

	if req.MarkAsLeave {
		s.notifier.Notify(employeeID, attendance.NotifyInfo, "Marked today as leave")
	} else {
		s.notifier.Notify(employeeID, attendance.NotifyInfo, "Checked in successfully")
	}

	return s.toResponse(ctx, employeeID, date, rec), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	date := s.today()

	rec, err := s.ledger.Get(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			s.notifier.Notify(employeeID, attendance.NotifyWarning, "Check in before checking out")
			return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to read today's record: %w", err)
	}

	// No ledger write without a same-day check-in to pair with.
	if rec.Status != attendance.StatusPresent || !rec.HasCheckIn() {
		s.notifier.Notify(employeeID, attendance.NotifyWarning, "Check in before checking out")
		return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
	}

	patch := attendance.Patch{
		CheckOut: &attendance.CheckOutUpdate{
			Bucket:      req.Bucket,
			Coordinates: s.locate(ctx, employeeID, req.Coordinates),
		},
	}
	if req.Note != nil {
		patch.Notes = req.Note
	}

	updated, err := s.ledger.Upsert(ctx, employeeID, date, patch)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to save check-out: %w", err)
	}

	s.notifier.Notify(employeeID, attendance.NotifyInfo, "Checked out successfully")

	return s.toResponse(ctx, employeeID, date, updated), nil
}

// AdminEdit implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) AdminEdit(ctx context.Context, req attendance.AdminEditRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	patch := attendance.Patch{
		Status: req.Status,
		Notes:  req.Notes,
	}
	if req.CheckIn != nil {
		patch.CheckIn = &attendance.CheckInUpdate{
			Bucket:       req.CheckIn.Bucket,
			WorkLocation: req.CheckIn.WorkLocation,
			Coordinates:  req.CheckIn.Coordinates,
		}
	}
	if req.CheckOut != nil {
		patch.CheckOut = &attendance.CheckOutUpdate{
			Bucket:      req.CheckOut.Bucket,
			Coordinates: req.CheckOut.Coordinates,
		}
	}

	rec, err := s.ledger.Upsert(ctx, req.EmployeeID, req.Date, patch)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to save attendance edit: %w", err)
	}

	return s.toResponse(ctx, req.EmployeeID, req.Date, rec), nil
}

// GetRecord implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetRecord(ctx context.Context, employeeID, date string) (attendance.RecordResponse, error) {
	rec, err := s.ledger.Get(ctx, employeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return s.toResponse(ctx, employeeID, date, rec), nil
}

// PromptStatus implements attendance.AttendanceService. Satisfied beats
// Dismissed beats NeedsPrompt; a check-in recorded by any means (including
// an administrative edit) satisfies the gate.
func (s *AttendanceServiceImpl) PromptStatus(ctx context.Context, date string) (attendance.PromptStatusResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.PromptStatusResponse{}, err
	}
	if date == "" {
		date = s.today()
	}

	resp := attendance.PromptStatusResponse{Date: date, State: attendance.PromptNeeded}

	rec, err := s.ledger.Get(ctx, employeeID, date)
	switch {
	case err == nil:
		r := s.toResponse(ctx, employeeID, date, rec)
		resp.Record = &r
		resp.CanCheckOut = rec.CanCheckOut()
		if rec.HasCheckIn() {
			resp.State = attendance.PromptSatisfied
			return resp, nil
		}
	case errors.Is(err, attendance.ErrRecordNotFound):
		// fall through to the dismissal flag
	default:
		return attendance.PromptStatusResponse{}, fmt.Errorf("failed to read record: %w", err)
	}

	if s.gate.IsDismissed(employeeID, date) {
		resp.State = attendance.PromptDismissed
	}
	return resp, nil
}

// DismissPrompt implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DismissPrompt(ctx context.Context, date string) error {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return err
	}
	if date == "" {
		date = s.today()
	}
	s.gate.Dismiss(employeeID, date)
	return nil
}

// locate prefers client-supplied coordinates and otherwise asks the
// Locator under a bounded timeout. Failure is tolerated: the flow proceeds
// with no coordinates and the employee gets a warning toast.
func (s *AttendanceServiceImpl) locate(ctx context.Context, employeeID string, supplied *attendance.Coordinates) *attendance.Coordinates {
	if supplied != nil {
		c := *supplied
		return &c
	}

	lctx, cancel := context.WithTimeout(ctx, s.locateTimeout)
	defer cancel()

	coords, err := s.locator.Acquire(lctx)
	if err != nil {
		s.notifier.Notify(employeeID, attendance.NotifyWarning, "Couldn't get your device location, saved without it")
		return nil
	}
	return &coords
}

func (s *AttendanceServiceImpl) toResponse(ctx context.Context, employeeID, date string, rec attendance.Record) attendance.RecordResponse {
	name, err := s.directory.ResolveName(ctx, employeeID)
	if err != nil {
		name = employeeID
	}

	resp := attendance.RecordResponse{
		EmployeeID:   employeeID,
		EmployeeName: name,
		Date:         date,
		Status:       rec.Status,
		StatusLabel:  rec.Status.Label(),
		Notes:        rec.Notes,
		CanCheckOut:  rec.CanCheckOut(),
	}

	if p := rec.Presence; p != nil {
		if p.CheckInBucket != "" {
			b := p.CheckInBucket
			label := b.Label()
			resp.CheckInBucket = &b
			resp.CheckInBucketLabel = &label
		}
		if p.WorkLocation != "" {
			l := p.WorkLocation
			label := l.Label()
			resp.WorkLocation = &l
			resp.WorkLocationLabel = &label
		}
		if p.CheckInCoords != nil {
			c := *p.CheckInCoords
			resp.CheckInCoords = &c
		}
		if p.CheckOutBucket != "" {
			b := p.CheckOutBucket
			label := b.Label()
			resp.CheckOutBucket = &b
			resp.CheckOutLabel = &label
		}
		if p.CheckOutCoords != nil {
			c := *p.CheckOutCoords
			resp.CheckOutCoords = &c
		}
	}

	return resp
}
