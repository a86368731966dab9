package views

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"fleetconsole/internal/poll"
	"fleetconsole/internal/store"
)

// Registry owns the background polling that keeps the shared cache warm
// while at least one console is connected. Mount and Unmount hang off the
// websocket hub's presence transitions: no connected clients means no
// polling, so an idle gateway stops hitting the backend.
type Registry struct {
	views *Views
	log   *logrus.Logger

	mu      sync.Mutex
	cancels []poll.CancelFunc
}

// NewRegistry wires the polling registry over the read views.
func NewRegistry(v *Views, log *logrus.Logger) *Registry {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Registry{views: v, log: log}
}

// Mount starts the standing pollers. Calling Mount while mounted is a no-op.
func (r *Registry) Mount() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.cancels) > 0 {
		return
	}
	r.log.Info("console connected, starting fleet polling")
	r.cancels = append(r.cancels,
		poll.Start(r.refreshAlerts, poll.AlertsInterval),
		poll.Start(r.refreshFleet, poll.FleetInterval),
	)
}

// Unmount stops every poller and returns once no callback can fire again.
// Calling Unmount while unmounted is a no-op.
func (r *Registry) Unmount() {
	r.mu.Lock()
	cancels := r.cancels
	r.cancels = nil
	r.mu.Unlock()
	if len(cancels) == 0 {
		return
	}
	for _, cancel := range cancels {
		cancel()
	}
	r.log.Info("last console disconnected, fleet polling stopped")
}

// Mounted reports whether the pollers are running.
func (r *Registry) Mounted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cancels) > 0
}

func (r *Registry) refreshAlerts() {
	ctx, cancel := context.WithTimeout(context.Background(), poll.AlertsInterval)
	defer cancel()
	key := store.AlertsKey("", "", nil, 0, alertsFetchLimit)
	r.views.cache.Invalidate(key)
	if _, err := r.views.cache.Refetch(ctx, key, store.KindAlerts,
		func(ctx context.Context) (interface{}, error) {
			return r.views.api.ListAlerts(ctx, "", "", nil, 0, alertsFetchLimit)
		}); err != nil {
		r.log.WithError(err).Warn("alert poll failed")
	}
}

func (r *Registry) refreshFleet() {
	ctx, cancel := context.WithTimeout(context.Background(), poll.FleetInterval)
	defer cancel()

	refetches := []struct {
		key   string
		kind  store.Kind
		fetch store.FetchFunc
	}{
		{store.DriversKey(0, driversFetchLimit), store.KindDrivers,
			func(ctx context.Context) (interface{}, error) {
				return r.views.api.ListDrivers(ctx, 0, driversFetchLimit)
			}},
		{store.FleetSummaryKey(), store.KindFleetSummary,
			func(ctx context.Context) (interface{}, error) {
				return r.views.api.DriverSummary(ctx)
			}},
		{store.OrderStatsKey("", ""), store.KindOrderStats,
			func(ctx context.Context) (interface{}, error) {
				return r.views.api.OrderStats(ctx, "", "")
			}},
	}
	for _, rf := range refetches {
		r.views.cache.Invalidate(rf.key)
		if _, err := r.views.cache.Refetch(ctx, rf.key, rf.kind, rf.fetch); err != nil {
			r.log.WithError(err).WithField("kind", rf.kind).Warn("fleet poll failed")
		}
	}
}
