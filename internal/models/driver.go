package models

import "time"

// DriverStatus is the canonical operational status used by every UI surface.
// Backend responses carry free-form synonyms ("ON_DELIVERY", "ONLINE", ...)
// which are normalized by the classify package before reaching a view.
type DriverStatus string

const (
	DriverAvailable DriverStatus = "AVAILABLE"
	DriverBusy      DriverStatus = "BUSY"
	DriverOnBreak   DriverStatus = "ON_BREAK"
	DriverOffline   DriverStatus = "OFFLINE"
)

// FatigueLevel is the classified driver fatigue band.
type FatigueLevel string

const (
	FatigueNormal  FatigueLevel = "NORMAL"
	FatigueMild    FatigueLevel = "MILD"
	FatigueWarning FatigueLevel = "WARNING"
	FatigueSevere  FatigueLevel = "SEVERE"
)

// Driver mirrors the backend driver record. Status and fatigue are kept raw
// here; classification happens per read so the cached record stays server truth.
type Driver struct {
	DriverID     string    `json:"driver_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	VehicleType  string    `json:"vehicle_type,omitempty"`
	LicensePlate string    `json:"license_plate,omitempty"`
	CurrentZone  string    `json:"current_zone,omitempty"`
	Status       string    `json:"status"`
	FatigueScore *float64  `json:"fatigue_score,omitempty"`
	FatigueLabel string    `json:"fatigue,omitempty"`
	Rating       float64   `json:"rating,omitempty"`
	SafetyAlerts int       `json:"safety_alerts,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// DriverList is the paginated response of GET /drivers.
type DriverList struct {
	Total   int      `json:"total"`
	Drivers []Driver `json:"drivers"`
}

// FleetSummary is the response of GET /drivers/stats/summary.
type FleetSummary struct {
	TotalDrivers     int `json:"total_drivers"`
	AvailableDrivers int `json:"available_drivers"`
	BusyDrivers      int `json:"busy_drivers"`
	OnBreakDrivers   int `json:"on_break_drivers"`
	OfflineDrivers   int `json:"offline_drivers"`
}
