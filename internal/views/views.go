// Package views builds the normalized read models served to the console and
// the driver app. Views never talk to the backend directly: every read goes
// through the entity cache, so concurrent screens share fetches and a backend
// outage degrades to stale data instead of errors.
package views

import (
	"context"

	"github.com/sirupsen/logrus"

	"fleetconsole/internal/alerts"
	"fleetconsole/internal/models"
	"fleetconsole/internal/store"
)

// Fetch page sizes. Filtering and sorting happen client-side over one cached
// page, so these bound how much of the fleet a view can see at once.
const (
	driversFetchLimit = 500
	alertsFetchLimit  = 200
)

// API is the slice of the backend client the read views need.
type API interface {
	ListDrivers(ctx context.Context, skip, limit int) (models.DriverList, error)
	DriverSummary(ctx context.Context) (models.FleetSummary, error)
	DriverPerformanceStats(ctx context.Context, driverID string) (models.PerformanceStats, error)
	ListOrders(ctx context.Context, status, driverID, pickupZone string) ([]models.Order, error)
	OrderStats(ctx context.Context, startDate, endDate string) (models.OrderStats, error)
	ListAlerts(ctx context.Context, driverID, alertType string, acknowledged *bool, skip, limit int) ([]models.Alert, error)
}

// Views reads cached entities and shapes them for the UI surfaces.
type Views struct {
	api       API
	cache     *store.Store
	lifecycle *alerts.Manager
	log       *logrus.Logger
}

// New wires the read views.
func New(api API, cache *store.Store, lifecycle *alerts.Manager, log *logrus.Logger) *Views {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Views{api: api, cache: cache, lifecycle: lifecycle, log: log}
}

// Lifecycle exposes the alert lifecycle manager for the write handlers.
func (v *Views) Lifecycle() *alerts.Manager {
	return v.lifecycle
}

func (v *Views) fetchDrivers(ctx context.Context) store.Snapshot {
	return v.cache.ReadOrRefetch(ctx, store.DriversKey(0, driversFetchLimit), store.KindDrivers,
		func(ctx context.Context) (interface{}, error) {
			return v.api.ListDrivers(ctx, 0, driversFetchLimit)
		})
}

func (v *Views) fetchAlerts(ctx context.Context) store.Snapshot {
	return v.cache.ReadOrRefetch(ctx, store.AlertsKey("", "", nil, 0, alertsFetchLimit), store.KindAlerts,
		func(ctx context.Context) (interface{}, error) {
			return v.api.ListAlerts(ctx, "", "", nil, 0, alertsFetchLimit)
		})
}
