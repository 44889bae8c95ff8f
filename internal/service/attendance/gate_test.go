package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptGateDismiss(t *testing.T) {
	t.Parallel()
	g := NewPromptGate()

	assert.False(t, g.IsDismissed("emp-1", "2025-03-10"))

	g.Dismiss("emp-1", "2025-03-10")
	assert.True(t, g.IsDismissed("emp-1", "2025-03-10"))

	// Scoped per employee and per day.
	assert.False(t, g.IsDismissed("emp-2", "2025-03-10"))
	assert.False(t, g.IsDismissed("emp-1", "2025-03-11"))
}

func TestPromptGateEvictsEarlierDates(t *testing.T) {
	t.Parallel()
	g := NewPromptGate()

	g.Dismiss("emp-1", "2025-03-10")
	g.Dismiss("emp-1", "2025-03-11")

	// The day rolled over; yesterday's flag is gone for good.
	assert.False(t, g.IsDismissed("emp-1", "2025-03-10"))
	assert.True(t, g.IsDismissed("emp-1", "2025-03-11"))
}
