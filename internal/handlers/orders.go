package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fleetconsole/internal/middleware"
	"fleetconsole/internal/orders"
	"fleetconsole/internal/views"
	"fleetconsole/pkg/utils"
)

// GetOrders returns the dispatcher's order list with UI status mapping
// applied, optionally filtered by status, driver and pickup zone.
func GetOrders(v *views.Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := v.Orders(r.Context(),
			r.URL.Query().Get("status"),
			r.URL.Query().Get("driver_id"),
			r.URL.Query().Get("pickup_zone"),
		)
		if err != nil {
			utils.Error(w, http.StatusBadGateway, "orders unavailable")
			return
		}
		utils.Success(w, page)
	}
}

// GetDriverOrders returns the authenticated driver's order queue with UI
// status mapping applied.
func GetDriverOrders(v *views.Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		page, err := v.DriverOrders(r.Context(), user.UserID)
		if err != nil {
			utils.Error(w, http.StatusBadGateway, "orders unavailable")
			return
		}
		utils.Success(w, page)
	}
}

// PickupOrder confirms pickup of one of the driver's assigned orders.
func PickupOrder(v *views.Views, acts *orders.Actions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		orderID := chi.URLParam(r, "id")
		order, ok := v.FindDriverOrder(r.Context(), user.UserID, orderID)
		if !ok {
			utils.Error(w, http.StatusNotFound, "order not found")
			return
		}
		updated, err := acts.ConfirmPickup(r.Context(), order)
		if err != nil {
			utils.Error(w, http.StatusBadGateway, "pickup failed")
			return
		}
		utils.Success(w, updated)
	}
}

// DeliverOrder completes delivery of one of the driver's orders.
func DeliverOrder(v *views.Views, acts *orders.Actions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		orderID := chi.URLParam(r, "id")
		order, ok := v.FindDriverOrder(r.Context(), user.UserID, orderID)
		if !ok {
			utils.Error(w, http.StatusNotFound, "order not found")
			return
		}
		updated, err := acts.CompleteDelivery(r.Context(), order)
		if err != nil {
			utils.Error(w, http.StatusBadGateway, "delivery failed")
			return
		}
		utils.Success(w, updated)
	}
}

// AssignOrder assigns an order to a chosen driver.
func AssignOrder(acts *orders.Actions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := chi.URLParam(r, "id")

		var body struct {
			DriverID string `json:"driver_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.DriverID == "" {
			utils.Error(w, http.StatusBadRequest, "driver_id required")
			return
		}

		updated, err := acts.Assign(r.Context(), orderID, body.DriverID)
		if err != nil {
			utils.Error(w, http.StatusBadGateway, "assign failed")
			return
		}
		utils.Success(w, updated)
	}
}

// AutoAssignOrder lets the backend pick the best driver for an order.
func AutoAssignOrder(acts *orders.Actions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := chi.URLParam(r, "id")
		updated, err := acts.AutoAssign(r.Context(), orderID)
		if err != nil {
			utils.Error(w, http.StatusBadGateway, "auto-assign failed")
			return
		}
		utils.Success(w, updated)
	}
}
