// Package orders maps backend order state to the view state shared by the
// admin dashboards (badges) and the driver app (action buttons), and performs
// the driver-side order actions.
package orders

import "strings"

// NextAction is the driver-facing action a view should offer for an order.
type NextAction string

const (
	ActionConfirmPickup    NextAction = "confirmPickup"
	ActionCompleteDelivery NextAction = "completeDelivery"
	ActionNone             NextAction = "none"
)

// OrderView is the UI projection of a backend order status.
type OrderView struct {
	UIStatus   string     `json:"ui_status"`
	BadgeLabel string     `json:"badge_label"`
	NextAction NextAction `json:"next_action"`
}

// MapOrderStatus is the single source of truth for order status rendering.
// The driver app uses NextAction to pick its button; the dashboards use
// BadgeLabel. Unknown statuses fall back to pending (refresh only).
func MapOrderStatus(backendStatus string) OrderView {
	switch strings.ToUpper(strings.TrimSpace(backendStatus)) {
	case "ASSIGNED":
		return OrderView{UIStatus: "assigned", BadgeLabel: "Awaiting Pickup", NextAction: ActionConfirmPickup}
	case "PICKED_UP", "IN_TRANSIT":
		return OrderView{UIStatus: "assigned", BadgeLabel: "In Transit", NextAction: ActionCompleteDelivery}
	case "DELIVERED":
		return OrderView{UIStatus: "completed", BadgeLabel: "Completed", NextAction: ActionNone}
	default:
		return OrderView{UIStatus: "pending", BadgeLabel: "Pending", NextAction: ActionNone}
	}
}

// StatusRank positions a backend status along the monotonic lifecycle.
// Used by the cache to reject stale responses that would revert a
// locally-confirmed forward transition. Unknown statuses rank lowest.
func StatusRank(backendStatus string) int {
	switch strings.ToUpper(strings.TrimSpace(backendStatus)) {
	case "PENDING":
		return 0
	case "ASSIGNED":
		return 1
	case "PICKED_UP":
		return 2
	case "IN_TRANSIT":
		return 3
	case "DELIVERED":
		return 4
	case "CANCELLED":
		return 5
	default:
		return -1
	}
}

// Terminal reports whether a backend status is an end state.
func Terminal(backendStatus string) bool {
	switch strings.ToUpper(strings.TrimSpace(backendStatus)) {
	case "DELIVERED", "CANCELLED":
		return true
	}
	return false
}
