package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fleetconsole/internal/models"
	"fleetconsole/internal/views"
	"fleetconsole/pkg/utils"
)

// GetFleetSummary returns the dashboard header counts.
func GetFleetSummary(v *views.Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := v.Fleet(r.Context())
		if err != nil {
			utils.Error(w, http.StatusBadGateway, "fleet summary unavailable")
			return
		}
		utils.Success(w, status)
	}
}

// GetOrderStats returns aggregate order throughput.
func GetOrderStats(v *views.Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := v.Fleet(r.Context())
		if err != nil {
			utils.Error(w, http.StatusBadGateway, "order stats unavailable")
			return
		}
		utils.Success(w, map[string]interface{}{
			"order_stats": status.OrderStats,
			"stale":       status.Stale,
		})
	}
}

// ListDrivers returns the monitoring list with search/status filters and
// pagination.
func ListDrivers(v *views.Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := views.DriverQuery{
			Search: r.URL.Query().Get("search"),
			Status: models.DriverStatus(r.URL.Query().Get("status")),
			Skip:   intQuery(r, "skip", 0),
			Limit:  intQuery(r, "limit", 50),
		}
		page, err := v.DriverMonitor(r.Context(), q)
		if err != nil {
			utils.Error(w, http.StatusBadGateway, "driver list unavailable")
			return
		}
		utils.Success(w, page)
	}
}

// GetDriverPerformance returns a driver's performance stats with defaults
// filled for metrics the backend has not computed yet.
func GetDriverPerformance(v *views.Views) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID := chi.URLParam(r, "id")
		stats, err := v.DriverStats(r.Context(), driverID)
		if err != nil {
			utils.Error(w, http.StatusBadGateway, "performance stats unavailable")
			return
		}
		utils.Success(w, stats)
	}
}

func intQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
		return parsed
	}
	return fallback
}
