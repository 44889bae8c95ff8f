package sse

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Toast is a human-readable notification pushed to the employee's open
// session. Purely observational; nothing reads it back.
type Toast struct {
	ID        string      `json:"id"`
	Level     string      `json:"level"`
	Message   string      `json:"message"`
	CreatedAt time.Time   `json:"created_at"`
	Data      interface{} `json:"data,omitempty"`
}

// Hub manages SSE subscribers and toast delivery per employee
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Toast]struct{}
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Toast]struct{}),
	}
}

// Subscribe registers a new subscriber for an employee and returns the
// toast channel and cleanup function
func (h *Hub) Subscribe(employeeID string) (chan Toast, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Toast, 10)

	if h.subscribers[employeeID] == nil {
		h.subscribers[employeeID] = make(map[chan Toast]struct{})
	}
	h.subscribers[employeeID][ch] = struct{}{}

	// Return channel and cleanup function
	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[employeeID], ch)
		close(ch)
		if len(h.subscribers[employeeID]) == 0 {
			delete(h.subscribers, employeeID)
		}
	}

	return ch, cleanup
}

// Notify implements the attendance Notifier surface: it wraps the message
// in a Toast and delivers it to every open session of the employee.
func (h *Hub) Notify(employeeID, level, message string) {
	h.publish(employeeID, Toast{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
}

func (h *Hub) publish(employeeID string, toast Toast) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[employeeID]; ok {
		for ch := range subs {
			select {
			case ch <- toast:
			default:
				// Skip if channel is full (non-blocking to prevent deadlock)
			}
		}
	}
}

// SubscriberCount returns the number of active subscribers for an employee
func (h *Hub) SubscriberCount(employeeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[employeeID]; ok {
		return len(subs)
	}
	return 0
}
