package attendance

import "context"

// PromptState is the daily prompt gate state for one employee-day.
type PromptState string

const (
	PromptNeeded    PromptState = "needs_prompt"
	PromptDismissed PromptState = "dismissed"
	PromptSatisfied PromptState = "satisfied"
)

// AttendanceService defines business logic for the attendance flows
type AttendanceService interface {
	// CheckIn records a presence check-in or marks the day as leave
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)

	// CheckOut records the evening half of a present day; fails with
	// ErrNotCheckedIn when there is no same-day check-in to pair with
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// AdminEdit upserts any employee-day without flow preconditions
	AdminEdit(ctx context.Context, req AdminEditRequest) (RecordResponse, error)

	// GetRecord returns one employee-day record
	GetRecord(ctx context.Context, employeeID, date string) (RecordResponse, error)

	// PromptStatus evaluates the daily prompt gate for the caller
	PromptStatus(ctx context.Context, date string) (PromptStatusResponse, error)

	// DismissPrompt flags the prompt as dismissed for this session
	DismissPrompt(ctx context.Context, date string) error
}

// Notifier is the toast surface flows talk to. Purely observational;
// delivery failures are the implementation's problem, not the flow's.
type Notifier interface {
	Notify(employeeID, level, message string)
}

const (
	NotifyInfo    = "info"
	NotifyWarning = "warning"
)
