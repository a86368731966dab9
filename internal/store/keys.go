package store

import (
	"net/url"
	"strconv"
	"strings"
)

// Cache keys are kind plus the canonical (sorted) query string, so two views
// asking the same question share one entry.

func keyOf(kind Kind, params url.Values) string {
	if len(params) == 0 {
		return string(kind)
	}
	return string(kind) + "?" + params.Encode()
}

// KeyParams recovers the query parameters baked into a cache key, so hooks
// observing an update can tell which driver or query it belongs to.
func KeyParams(key string) url.Values {
	_, raw, ok := strings.Cut(key, "?")
	if !ok {
		return url.Values{}
	}
	params, err := url.ParseQuery(raw)
	if err != nil {
		return url.Values{}
	}
	return params
}

// DriversKey keys a driver list page.
func DriversKey(skip, limit int) string {
	params := url.Values{}
	params.Set("skip", strconv.Itoa(skip))
	params.Set("limit", strconv.Itoa(limit))
	return keyOf(KindDrivers, params)
}

// FleetSummaryKey keys the fleet status counts.
func FleetSummaryKey() string {
	return keyOf(KindFleetSummary, nil)
}

// DriverStatsKey keys per-driver performance stats.
func DriverStatsKey(driverID string) string {
	params := url.Values{}
	params.Set("driver_id", driverID)
	return keyOf(KindDriverStats, params)
}

// OrdersKey keys an admin order query.
func OrdersKey(status, driverID, pickupZone string) string {
	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	if driverID != "" {
		params.Set("driver_id", driverID)
	}
	if pickupZone != "" {
		params.Set("pickup_zone", pickupZone)
	}
	return keyOf(KindOrders, params)
}

// DriverOrdersKey keys a driver's own order list.
func DriverOrdersKey(driverID string) string {
	params := url.Values{}
	params.Set("driver_id", driverID)
	return keyOf(KindDriverOrders, params)
}

// OrderStatsKey keys aggregate order statistics.
func OrderStatsKey(startDate, endDate string) string {
	params := url.Values{}
	if startDate != "" {
		params.Set("start_date", startDate)
	}
	if endDate != "" {
		params.Set("end_date", endDate)
	}
	return keyOf(KindOrderStats, params)
}

// AlertsKey keys a safety alert query.
func AlertsKey(driverID, alertType string, acknowledged *bool, skip, limit int) string {
	params := url.Values{}
	if driverID != "" {
		params.Set("driver_id", driverID)
	}
	if alertType != "" {
		params.Set("alert_type", alertType)
	}
	if acknowledged != nil {
		params.Set("acknowledged", strconv.FormatBool(*acknowledged))
	}
	params.Set("skip", strconv.Itoa(skip))
	params.Set("limit", strconv.Itoa(limit))
	return keyOf(KindAlerts, params)
}
