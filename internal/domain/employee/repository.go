package employee

import "context"

// Directory resolves employee identifiers to display names. Read-only;
// the attendance core never writes back to the employee store.
type Directory interface {
	ResolveName(ctx context.Context, employeeID string) (string, error)
}
