package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fleetconsole/internal/models"
	"fleetconsole/internal/views"
	"fleetconsole/pkg/utils"
)

// ListAlerts returns the safety alert board.
func ListAlerts(v *views.Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab := views.AlertTab(r.URL.Query().Get("tab"))
		if !tab.Valid() {
			utils.Error(w, http.StatusBadRequest, "unknown tab: "+string(tab))
			return
		}
		q := views.AlertQuery{
			Tab:      tab,
			Severity: models.Severity(r.URL.Query().Get("severity")),
			Search:   r.URL.Query().Get("search"),
			SortBy:   r.URL.Query().Get("sort"),
		}
		board, err := v.Alerts(r.Context(), q)
		if err != nil {
			utils.Error(w, http.StatusBadGateway, "alerts unavailable")
			return
		}
		utils.Success(w, board)
	}
}

// AcknowledgeAlert flips an alert to acknowledged and returns the chat
// prompt for the driver involved. Acknowledging twice is fine.
func AcknowledgeAlert(v *views.Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alertID := chi.URLParam(r, "id")
		alert, ok := v.FindAlert(r.Context(), alertID)
		if !ok {
			utils.Error(w, http.StatusNotFound, "alert not found")
			return
		}

		driverName, zone := "", ""
		if driver, ok := v.DriverByID(r.Context(), alert.DriverID); ok {
			driverName, zone = driver.Name, driver.CurrentZone
		}

		prompt, err := v.Lifecycle().Acknowledge(r.Context(), alert, driverName, zone)
		if err != nil {
			utils.Error(w, http.StatusBadGateway, "acknowledge failed")
			return
		}
		utils.Success(w, map[string]interface{}{
			"alert_id": alertID,
			"state":    models.AlertAcknowledged,
			"prompt":   prompt,
		})
	}
}

// ResolveAlert marks an alert safe and drops it from the active queue.
func ResolveAlert(v *views.Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alertID := chi.URLParam(r, "id")
		alert, ok := v.FindAlert(r.Context(), alertID)
		if !ok {
			utils.Error(w, http.StatusNotFound, "alert not found")
			return
		}
		if err := v.Lifecycle().MarkSafe(r.Context(), alert); err != nil {
			utils.Error(w, http.StatusBadGateway, "resolve failed")
			return
		}
		utils.Success(w, map[string]interface{}{
			"alert_id": alertID,
			"state":    models.AlertResolved,
		})
	}
}
