package models

import "time"

// Backend order statuses. Transitions are monotonic along
// PENDING -> ASSIGNED -> PICKED_UP -> IN_TRANSIT -> DELIVERED;
// CANCELLED is reachable from any non-terminal state.
const (
	OrderPending   = "PENDING"
	OrderAssigned  = "ASSIGNED"
	OrderPickedUp  = "PICKED_UP"
	OrderInTransit = "IN_TRANSIT"
	OrderDelivered = "DELIVERED"
	OrderCancelled = "CANCELLED"
)

// Order mirrors the backend order record.
type Order struct {
	OrderID           string     `json:"order_id"`
	Status            string     `json:"status"`
	DriverID          string     `json:"driver_id,omitempty"`
	PickupAddress     string     `json:"pickup_address"`
	PickupLatitude    *float64   `json:"pickup_latitude,omitempty"`
	PickupLongitude   *float64   `json:"pickup_longitude,omitempty"`
	DropoffAddress    string     `json:"dropoff_address"`
	DropoffLatitude   *float64   `json:"dropoff_latitude,omitempty"`
	DropoffLongitude  *float64   `json:"dropoff_longitude,omitempty"`
	CustomerName      string     `json:"customer_name,omitempty"`
	CustomerContact   string     `json:"customer_contact,omitempty"`
	RestaurantName    string     `json:"restaurant_name,omitempty"`
	RestaurantContact string     `json:"restaurant_contact,omitempty"`
	Price             *float64   `json:"price,omitempty"`
	PickupZone        string     `json:"pickup_zone,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	AssignedAt        *time.Time `json:"assigned_at,omitempty"`
	PickedUpAt        *time.Time `json:"picked_up_at,omitempty"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
}

// OrderStats is the response of GET /orders/stats.
type OrderStats struct {
	TotalOrders         int     `json:"total_orders"`
	PendingOrders       int     `json:"pending_orders"`
	AssignedOrders      int     `json:"assigned_orders"`
	InTransitOrders     int     `json:"in_transit_orders"`
	DeliveredOrders     int     `json:"delivered_orders"`
	CancelledOrders     int     `json:"cancelled_orders"`
	TotalRevenue        float64 `json:"total_revenue"`
	AverageDeliveryTime float64 `json:"average_delivery_time"`
}
