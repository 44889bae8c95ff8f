package attendance

import "context"

// Locator acquires the device's current position. Acquisition is slow and
// unreliable: it may take seconds, be denied, or be unsupported entirely.
// Callers bound it with a context and treat any error as
// ErrLocationUnavailable.
type Locator interface {
	Acquire(ctx context.Context) (Coordinates, error)
}
