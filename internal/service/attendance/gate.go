package attendance

import (
	"sync"
)

// PromptGate holds the session-scoped "dismissed without saving" flags for
// the daily check-in prompt. Deliberately separate from the durable ledger:
// the flags live for the current process only and are never persisted, so a
// new session re-evaluates purely from ledger state.
type PromptGate struct {
	mu        sync.Mutex
	dismissed map[string]map[string]struct{} // employeeID -> dateISO
}

func NewPromptGate() *PromptGate {
	return &PromptGate{
		dismissed: make(map[string]map[string]struct{}),
	}
}

// Dismiss marks the prompt for (employee, date) as closed without saving.
// Flags for the employee's earlier dates are evicted; they can never be
// consulted again once the day has rolled over.
func (g *PromptGate) Dismiss(employeeID, date string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	days := g.dismissed[employeeID]
	if days == nil {
		days = make(map[string]struct{})
		g.dismissed[employeeID] = days
	}
	for d := range days {
		if d < date {
			delete(days, d)
		}
	}
	days[date] = struct{}{}
}

// IsDismissed reports whether the prompt was dismissed this session.
func (g *PromptGate) IsDismissed(employeeID, date string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.dismissed[employeeID][date]
	return ok
}
