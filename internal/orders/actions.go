package orders

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"fleetconsole/internal/models"
)

// API is the slice of the backend client the order actions need.
type API interface {
	PickupOrder(ctx context.Context, orderID string, lat, lng float64) (models.Order, error)
	DeliverOrder(ctx context.Context, orderID string, lat, lng float64) (models.Order, error)
	AssignOrder(ctx context.Context, orderID, driverID string) (models.Order, error)
	AutoAssignOrder(ctx context.Context, orderID string) (models.Order, error)
}

// Invalidator forces the order caches to refetch ahead of the next poll tick,
// bounding the staleness an operator sees after their own action to one round
// trip.
type Invalidator interface {
	InvalidateOrders()
}

// Actions performs the order write operations shared by the driver app
// (pickup, deliver) and the admin dashboards (assign, auto-assign).
type Actions struct {
	api   API
	cache Invalidator
	log   *logrus.Logger
}

// NewActions wires the order actions against a backend client and cache.
func NewActions(api API, cache Invalidator, log *logrus.Logger) *Actions {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Actions{api: api, cache: cache, log: log}
}

// ConfirmPickup reports the pickup with the order's last-known pickup
// coordinates. A missing coordinate falls back to 0,0; the tolerance is
// logged rather than hidden so a stranded record stays observable.
func (a *Actions) ConfirmPickup(ctx context.Context, order models.Order) (models.Order, error) {
	lat, lng := a.coords(order.OrderID, order.PickupLatitude, order.PickupLongitude, "pickup")
	updated, err := a.api.PickupOrder(ctx, order.OrderID, lat, lng)
	if err != nil {
		return models.Order{}, fmt.Errorf("confirm pickup for order %s: %w", order.OrderID, err)
	}
	a.cache.InvalidateOrders()
	return updated, nil
}

// CompleteDelivery reports the delivery with the order's last-known dropoff
// coordinates, with the same 0,0 tolerance as ConfirmPickup.
func (a *Actions) CompleteDelivery(ctx context.Context, order models.Order) (models.Order, error) {
	lat, lng := a.coords(order.OrderID, order.DropoffLatitude, order.DropoffLongitude, "dropoff")
	updated, err := a.api.DeliverOrder(ctx, order.OrderID, lat, lng)
	if err != nil {
		return models.Order{}, fmt.Errorf("complete delivery for order %s: %w", order.OrderID, err)
	}
	a.cache.InvalidateOrders()
	return updated, nil
}

// Assign assigns an order to a driver.
func (a *Actions) Assign(ctx context.Context, orderID, driverID string) (models.Order, error) {
	updated, err := a.api.AssignOrder(ctx, orderID, driverID)
	if err != nil {
		return models.Order{}, fmt.Errorf("assign order %s: %w", orderID, err)
	}
	a.cache.InvalidateOrders()
	return updated, nil
}

// AutoAssign lets the backend pick a driver for the order.
func (a *Actions) AutoAssign(ctx context.Context, orderID string) (models.Order, error) {
	updated, err := a.api.AutoAssignOrder(ctx, orderID)
	if err != nil {
		return models.Order{}, fmt.Errorf("auto-assign order %s: %w", orderID, err)
	}
	a.cache.InvalidateOrders()
	return updated, nil
}

func (a *Actions) coords(orderID string, lat, lng *float64, kind string) (float64, float64) {
	if lat == nil || lng == nil {
		a.log.WithFields(logrus.Fields{
			"order_id": orderID,
			"kind":     kind,
		}).Warn("order record has no coordinates, submitting 0,0")
		return 0, 0
	}
	return *lat, *lng
}
