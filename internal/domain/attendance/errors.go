package attendance

import "errors"

// Attendance domain errors
var (
	// Check-out precondition: no same-day check-in to pair with
	ErrNotCheckedIn = errors.New("you have not checked in today")

	// Geo locator failed or was denied; flows degrade, never abort
	ErrLocationUnavailable = errors.New("device location is unavailable")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
