// Package classify holds the pure mapping functions from raw backend enums
// and numeric codes to the UI-facing categories. Every rendering surface goes
// through these; screen-local copies of the mappings are the defect class
// this package removes.
package classify

import (
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"fleetconsole/internal/models"
)

var log *logrus.Logger = logrus.StandardLogger()

// SetLogger swaps the logger used for anomaly reporting. Classification never
// fails; unknown input maps to the safe default and is logged here.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		log = l
	}
}

// NormalizeDriverStatus maps a raw backend status string to the canonical
// four-value set. Unrecognized input maps to OFFLINE.
func NormalizeDriverStatus(raw string) models.DriverStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "AVAILABLE", "ONLINE":
		return models.DriverAvailable
	case "BUSY", "ON_DELIVERY", "ON DELIVERY", "ON-DELIVERY":
		return models.DriverBusy
	case "ON_BREAK", "ON BREAK", "BREAK":
		return models.DriverOnBreak
	case "OFFLINE":
		return models.DriverOffline
	default:
		if raw != "" {
			log.WithField("status", raw).Warn("unknown driver status, treating as OFFLINE")
		}
		return models.DriverOffline
	}
}

// ClassifyFatigue bands a 0-10 fatigue score. Out-of-range or NaN scores map
// to NORMAL.
func ClassifyFatigue(score float64) models.FatigueLevel {
	if math.IsNaN(score) || score < 0 || score > 10 {
		log.WithField("score", score).Warn("fatigue score out of range, treating as NORMAL")
		return models.FatigueNormal
	}
	switch {
	case score > 7:
		return models.FatigueSevere
	case score > 4:
		return models.FatigueWarning
	case score >= 2:
		return models.FatigueMild
	default:
		return models.FatigueNormal
	}
}

// ClassifyFatigueLabel maps a pre-labeled fatigue string. Unknown labels map
// to NORMAL.
func ClassifyFatigueLabel(label string) models.FatigueLevel {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "NORMAL":
		return models.FatigueNormal
	case "MILD":
		return models.FatigueMild
	case "WARNING":
		return models.FatigueWarning
	case "SEVERE":
		return models.FatigueSevere
	default:
		if label != "" {
			log.WithField("label", label).Warn("unknown fatigue label, treating as NORMAL")
		}
		return models.FatigueNormal
	}
}

// DriverFatigue classifies whichever fatigue representation the driver record
// carries: a numeric score when present, otherwise the pre-labeled string.
func DriverFatigue(d models.Driver) models.FatigueLevel {
	if d.FatigueScore != nil {
		return ClassifyFatigue(*d.FatigueScore)
	}
	return ClassifyFatigueLabel(d.FatigueLabel)
}

// ClassifySeverity maps the backend's numeric 1-4 severity code.
// Codes outside the range map to low.
func ClassifySeverity(code int) models.Severity {
	switch code {
	case 4:
		return models.SeverityCritical
	case 3:
		return models.SeverityHigh
	case 2:
		return models.SeverityMedium
	case 1:
		return models.SeverityLow
	default:
		log.WithField("code", code).Warn("severity code out of range, treating as low")
		return models.SeverityLow
	}
}

// SeverityRank orders severities for sort comparisons only, critical first.
// Never use the rank for display.
func SeverityRank(s models.Severity) int {
	switch s {
	case models.SeverityCritical:
		return 0
	case models.SeverityHigh:
		return 1
	case models.SeverityMedium:
		return 2
	default:
		return 3
	}
}
