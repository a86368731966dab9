package views

import (
	"context"
	"strings"

	"fleetconsole/internal/classify"
	"fleetconsole/internal/models"
)

// DriverQuery filters the monitoring list. Search and Status combine with
// AND: both must match when both are set. Limit 0 means no pagination.
type DriverQuery struct {
	Search string
	Status models.DriverStatus
	Skip   int
	Limit  int
}

// DriverRow is one monitored driver with classification applied.
type DriverRow struct {
	models.Driver
	DisplayStatus models.DriverStatus `json:"display_status"`
	FatigueLevel  models.FatigueLevel `json:"fatigue_level"`
	Telemetry     models.Telemetry    `json:"telemetry"`
}

// DriverPage is the filtered, paginated monitoring list. Total counts the
// filtered set, not the page.
type DriverPage struct {
	Total   int         `json:"total"`
	Drivers []DriverRow `json:"drivers"`
	Stale   bool        `json:"stale,omitempty"`
}

// DriverMonitor returns the live driver monitoring list.
func (v *Views) DriverMonitor(ctx context.Context, q DriverQuery) (DriverPage, error) {
	snap := v.fetchDrivers(ctx)
	if snap.Value == nil {
		if snap.Err != nil {
			return DriverPage{}, snap.Err
		}
		return DriverPage{Drivers: []DriverRow{}}, nil
	}
	list, ok := snap.Value.(models.DriverList)
	if !ok {
		return DriverPage{Drivers: []DriverRow{}}, nil
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	rows := make([]DriverRow, 0, len(list.Drivers))
	for _, d := range list.Drivers {
		row := DriverRow{
			Driver:        d,
			DisplayStatus: classify.NormalizeDriverStatus(d.Status),
			FatigueLevel:  classify.DriverFatigue(d),
			Telemetry:     telemetryFor(d),
		}
		if !matchesDriver(row, search, q.Status) {
			continue
		}
		rows = append(rows, row)
	}

	page := DriverPage{Total: len(rows), Stale: snap.Stale}
	page.Drivers = paginate(rows, q.Skip, q.Limit)
	return page, nil
}

func matchesDriver(row DriverRow, search string, status models.DriverStatus) bool {
	if status != "" && row.DisplayStatus != status {
		return false
	}
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(row.Name), search) ||
		strings.Contains(strings.ToLower(row.DriverID), search)
}

func paginate(rows []DriverRow, skip, limit int) []DriverRow {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(rows) {
		return []DriverRow{}
	}
	rows = rows[skip:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

// telemetryFor builds the device feed for a driver. No device channel is
// wired up yet, so every sensor reports unavailable rather than a fabricated
// reading.
func telemetryFor(models.Driver) models.Telemetry {
	return models.Telemetry{
		SpeedKmh:     models.Unavailable[float64](),
		BatteryPct:   models.Unavailable[int](),
		Network:      models.Unavailable[string](),
		CameraActive: models.Unavailable[bool](),
	}
}
