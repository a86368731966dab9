package models

import "time"

// Severity is the UI-facing alert severity derived from the backend's
// numeric 1-4 code.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Known alert types. The set is open: unknown types must render generically,
// never crash.
const (
	AlertFatigue       = "fatigue"
	AlertAccident      = "accident"
	AlertFall          = "fall"
	AlertSpeeding      = "speeding"
	AlertDevice        = "device"
	AlertEnvironmental = "environmental"
)

// Alert mirrors the backend safety alert record. Severity stays the raw
// numeric code here; the classify package maps it for display.
type Alert struct {
	AlertID      string    `json:"alert_id"`
	DriverID     string    `json:"driver_id"`
	AlertType    string    `json:"alert_type"`
	Severity     int       `json:"severity"`
	Acknowledged bool      `json:"acknowledged"`
	Timestamp    time.Time `json:"timestamp"`
}

// AlertState is the client-side lifecycle projection. The backend only
// distinguishes acknowledged true/false; "resolved" means acknowledged and
// dismissed from the active queue.
type AlertState string

const (
	AlertActive       AlertState = "active"
	AlertAcknowledged AlertState = "acknowledged"
	AlertResolved     AlertState = "resolved"
)
