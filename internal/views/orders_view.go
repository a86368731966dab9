package views

import (
	"context"

	"fleetconsole/internal/models"
	"fleetconsole/internal/orders"
	"fleetconsole/internal/store"
)

// OrderRow is an order with its UI mapping attached, so every surface agrees
// on badge text and which action button to show.
type OrderRow struct {
	models.Order
	UIStatus   string            `json:"ui_status"`
	BadgeLabel string            `json:"badge_label"`
	NextAction orders.NextAction `json:"next_action"`
}

// OrderPage is an order list shaped for a screen.
type OrderPage struct {
	Count  int        `json:"count"`
	Orders []OrderRow `json:"orders"`
	Stale  bool       `json:"stale,omitempty"`
}

// DriverOrders returns one driver's order queue. The upstream query filters
// by the caller's driver id, so two drivers never share a cache entry or a
// response payload.
func (v *Views) DriverOrders(ctx context.Context, driverID string) (OrderPage, error) {
	snap := v.cache.ReadOrRefetch(ctx, store.DriverOrdersKey(driverID), store.KindDriverOrders,
		func(ctx context.Context) (interface{}, error) {
			return v.api.ListOrders(ctx, "", driverID, "")
		})
	if snap.Value == nil {
		if snap.Err != nil {
			return OrderPage{}, snap.Err
		}
		return OrderPage{Orders: []OrderRow{}}, nil
	}
	list, ok := snap.Value.([]models.Order)
	if !ok {
		return OrderPage{Orders: []OrderRow{}}, nil
	}
	return orderPage(list, snap.Stale), nil
}

// Orders returns the dispatcher's order list, optionally filtered upstream by
// status, driver and pickup zone.
func (v *Views) Orders(ctx context.Context, status, driverID, pickupZone string) (OrderPage, error) {
	snap := v.cache.ReadOrRefetch(ctx, store.OrdersKey(status, driverID, pickupZone), store.KindOrders,
		func(ctx context.Context) (interface{}, error) {
			return v.api.ListOrders(ctx, status, driverID, pickupZone)
		})
	if snap.Value == nil {
		if snap.Err != nil {
			return OrderPage{}, snap.Err
		}
		return OrderPage{Orders: []OrderRow{}}, nil
	}
	list, ok := snap.Value.([]models.Order)
	if !ok {
		return OrderPage{Orders: []OrderRow{}}, nil
	}
	return orderPage(list, snap.Stale), nil
}

// FindDriverOrder looks an order up in the driver's cached queue.
func (v *Views) FindDriverOrder(ctx context.Context, driverID, orderID string) (models.Order, bool) {
	page, err := v.DriverOrders(ctx, driverID)
	if err != nil {
		return models.Order{}, false
	}
	for _, row := range page.Orders {
		if row.OrderID == orderID {
			return row.Order, true
		}
	}
	return models.Order{}, false
}

func orderPage(list []models.Order, stale bool) OrderPage {
	rows := make([]OrderRow, 0, len(list))
	for _, o := range list {
		view := orders.MapOrderStatus(o.Status)
		rows = append(rows, OrderRow{
			Order:      o,
			UIStatus:   view.UIStatus,
			BadgeLabel: view.BadgeLabel,
			NextAction: view.NextAction,
		})
	}
	return OrderPage{Count: len(rows), Orders: rows, Stale: stale}
}
