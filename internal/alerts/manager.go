// Package alerts owns the safety-alert lifecycle on the client side:
// active -> acknowledged -> resolved. The backend only stores the
// acknowledged flag; "resolved" is this client's projection meaning
// acknowledged and dismissed from the active queue. Transitions are applied
// optimistically for responsiveness and reconciled against server truth on
// the next poll.
package alerts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"fleetconsole/internal/backend"
	"fleetconsole/internal/chat"
	"fleetconsole/internal/models"
)

// API is the slice of the backend client the lifecycle needs.
type API interface {
	AcknowledgeAlert(ctx context.Context, alertID string, acknowledged bool) (models.Alert, error)
}

// Invalidator forces the alert caches to refetch after a write.
type Invalidator interface {
	InvalidateAlerts()
}

// Manager tracks per-session lifecycle overlays keyed by alert id. Overlays
// are tied to the alert's created timestamp: a record arriving with a
// different timestamp is a new event and starts over as active.
type Manager struct {
	mu       sync.Mutex
	api      API
	cache    Invalidator
	log      *logrus.Logger
	acked    map[string]time.Time
	resolved map[string]time.Time
}

// NewManager wires the alert lifecycle against a backend client and cache.
func NewManager(api API, cache Invalidator, log *logrus.Logger) *Manager {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Manager{
		api:      api,
		cache:    cache,
		log:      log,
		acked:    make(map[string]time.Time),
		resolved: make(map[string]time.Time),
	}
}

// State projects an alert record through the session overlays.
func (m *Manager) State(a models.Alert) models.AlertState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked(a)
}

func (m *Manager) stateLocked(a models.Alert) models.AlertState {
	if ts, ok := m.resolved[a.AlertID]; ok && ts.Equal(a.Timestamp) {
		return models.AlertResolved
	}
	if a.Acknowledged {
		return models.AlertAcknowledged
	}
	if ts, ok := m.acked[a.AlertID]; ok && ts.Equal(a.Timestamp) {
		return models.AlertAcknowledged
	}
	return models.AlertActive
}

// Acknowledge flips an alert to acknowledged: optimistic local flip, PATCH,
// cache invalidation on success, revert on failure. Acknowledging an alert
// that is already acknowledged or resolved is a no-op success because two
// operators may race on the same alert. The returned prompt offers (never
// forces) a driver check-in chat.
func (m *Manager) Acknowledge(ctx context.Context, a models.Alert, driverName, zone string) (chat.Prompt, error) {
	prompt := chat.PromptFor(a.DriverID, driverName, zone)

	m.mu.Lock()
	if m.stateLocked(a) != models.AlertActive {
		// Already done by this or another operator.
		m.mu.Unlock()
		return prompt, nil
	}
	m.acked[a.AlertID] = a.Timestamp
	m.mu.Unlock()

	if _, err := m.api.AcknowledgeAlert(ctx, a.AlertID, true); err != nil {
		m.revertAck(a.AlertID)
		return prompt, m.writeError("acknowledge", a.AlertID, err)
	}

	m.cache.InvalidateAlerts()
	return prompt, nil
}

// MarkSafe resolves an alert: acknowledged upstream plus local dismissal from
// the active queue. Resolving an already-resolved alert is a no-op success.
func (m *Manager) MarkSafe(ctx context.Context, a models.Alert) error {
	m.mu.Lock()
	if ts, ok := m.resolved[a.AlertID]; ok && ts.Equal(a.Timestamp) {
		m.mu.Unlock()
		return nil
	}
	_, hadAck := m.acked[a.AlertID]
	m.acked[a.AlertID] = a.Timestamp
	m.resolved[a.AlertID] = a.Timestamp
	m.mu.Unlock()

	if _, err := m.api.AcknowledgeAlert(ctx, a.AlertID, true); err != nil {
		m.mu.Lock()
		delete(m.resolved, a.AlertID)
		if !hadAck && !a.Acknowledged {
			delete(m.acked, a.AlertID)
		}
		m.mu.Unlock()
		return m.writeError("resolve", a.AlertID, err)
	}

	m.cache.InvalidateAlerts()
	return nil
}

// Observe prunes overlays that no longer match the polled records, so a
// backend reset (new timestamp, acknowledged=false) reads as a fresh active
// alert and the maps do not grow without bound.
func (m *Manager) Observe(list []models.Alert) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current := make(map[string]time.Time, len(list))
	for _, a := range list {
		current[a.AlertID] = a.Timestamp
	}
	for id, ts := range m.acked {
		if seen, ok := current[id]; !ok || !seen.Equal(ts) {
			delete(m.acked, id)
		}
	}
	for id, ts := range m.resolved {
		if seen, ok := current[id]; !ok || !seen.Equal(ts) {
			delete(m.resolved, id)
		}
	}
}

func (m *Manager) revertAck(alertID string) {
	m.mu.Lock()
	delete(m.acked, alertID)
	m.mu.Unlock()
}

func (m *Manager) writeError(op, alertID string, err error) error {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusConflict || apiErr.StatusCode == http.StatusNotFound) {
		// Another operator got there first or the record moved on; the
		// authoritative state arrives with the forced refetch.
		m.cache.InvalidateAlerts()
	}
	m.log.WithFields(logrus.Fields{
		"alert_id": alertID,
		"op":       op,
	}).WithError(err).Error("alert lifecycle write failed")
	return fmt.Errorf("%s alert %s: %w", op, alertID, err)
}
