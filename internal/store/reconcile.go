package store

import (
	"fleetconsole/internal/models"
	"fleetconsole/internal/orders"
)

// reconcileOrders drops incoming order records whose status would revert a
// locally-confirmed forward transition. A slow list response must not undo a
// pickup the driver already confirmed; the regressed record keeps the cached
// state until a later fetch supersedes it.
func reconcileOrders(prev, next interface{}) interface{} {
	nextList, ok := next.([]models.Order)
	if !ok {
		return next
	}
	prevList, ok := prev.([]models.Order)
	if !ok {
		return next
	}
	return mergeOrders(prevList, nextList)
}

func mergeOrders(prevList, nextList []models.Order) []models.Order {
	prevByID := make(map[string]models.Order, len(prevList))
	for _, p := range prevList {
		prevByID[p.OrderID] = p
	}
	out := make([]models.Order, 0, len(nextList))
	for _, n := range nextList {
		p, seen := prevByID[n.OrderID]
		if seen && regresses(p.Status, n.Status) {
			out = append(out, p)
			continue
		}
		out = append(out, n)
	}
	return out
}

func regresses(prevStatus, nextStatus string) bool {
	pr, nr := orders.StatusRank(prevStatus), orders.StatusRank(nextStatus)
	if pr < 0 || nr < 0 {
		return false
	}
	// CANCELLED is reachable from any non-terminal state, so it never counts
	// as a regression unless the order already reached a terminal state.
	if nextStatus == models.OrderCancelled {
		return orders.Terminal(prevStatus)
	}
	return nr < pr
}

// reconcileAlerts keeps acknowledged monotonic: once true for an alert_id it
// stays true unless the record arrives with a different created timestamp,
// which is treated as a new event.
func reconcileAlerts(prev, next interface{}) interface{} {
	prevList, ok := prev.([]models.Alert)
	nextList, ok2 := next.([]models.Alert)
	if !ok || !ok2 {
		return next
	}
	prevByID := make(map[string]models.Alert, len(prevList))
	for _, p := range prevList {
		prevByID[p.AlertID] = p
	}
	out := make([]models.Alert, 0, len(nextList))
	for _, n := range nextList {
		if p, seen := prevByID[n.AlertID]; seen && p.Acknowledged && !n.Acknowledged && p.Timestamp.Equal(n.Timestamp) {
			n.Acknowledged = true
		}
		out = append(out, n)
	}
	return out
}
