// Package chat holds the ephemeral driver-communication sessions opened from
// the monitoring and alert screens. Nothing here is persisted: a session
// lives only while its dialog is open, and switching drivers fully resets
// message state so no conversation leaks across drivers.
package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message is a single chat line.
type Message struct {
	ID     string    `json:"id"`
	Sender string    `json:"sender"` // "Dispatch" or "Driver"
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// Session is an open dialog with one driver.
type Session struct {
	DriverID   string    `json:"driver_id"`
	DriverName string    `json:"driver_name"`
	Zone       string    `json:"zone,omitempty"`
	Messages   []Message `json:"messages"`
	OpenedAt   time.Time `json:"opened_at"`
}

// Prompt is the check-in suggestion returned when an alert is acknowledged.
// It is offered to the operator, never auto-sent.
type Prompt struct {
	DriverID   string `json:"driver_id"`
	DriverName string `json:"driver_name"`
	Message    string `json:"message"`
}

// Registry manages the single open session per UI session.
type Registry struct {
	mu      sync.Mutex
	current *Session
}

// NewRegistry creates an empty chat registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Open returns the session for a driver, seeding it with the dispatch
// check-in script. Opening for a different driver discards the previous
// session entirely.
func (r *Registry) Open(driverID, driverName, zone string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != nil && r.current.DriverID == driverID {
		return r.current
	}

	session := &Session{
		DriverID:   driverID,
		DriverName: driverName,
		Zone:       zone,
		OpenedAt:   time.Now(),
	}
	for _, line := range scriptFor(driverID, driverName, zone) {
		session.Messages = append(session.Messages, Message{
			ID:     uuid.NewString(),
			Sender: line.sender,
			Text:   line.text,
			SentAt: session.OpenedAt,
		})
	}
	r.current = session
	return session
}

// Append adds an operator message to the current session for the driver.
// Returns false when no session is open for that driver.
func (r *Registry) Append(driverID, sender, text string) (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil || r.current.DriverID != driverID {
		return Message{}, false
	}
	msg := Message{
		ID:     uuid.NewString(),
		Sender: sender,
		Text:   text,
		SentAt: time.Now(),
	}
	r.current.Messages = append(r.current.Messages, msg)
	return msg, true
}

// Close drops the current session.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = nil
}

// PromptFor builds the check-in prompt offered when an alert for the driver
// is acknowledged.
func PromptFor(driverID, driverName, zone string) Prompt {
	script := scriptFor(driverID, driverName, zone)
	return Prompt{
		DriverID:   driverID,
		DriverName: driverName,
		Message:    script[0].text,
	}
}
