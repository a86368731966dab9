package views

import (
	"context"
	"sort"
	"strings"

	"fleetconsole/internal/classify"
	"fleetconsole/internal/models"
)

// Sort orders for the alert board.
const (
	SortByTime     = "time"
	SortBySeverity = "severity"
	SortByTitle    = "title"
)

// AlertTab selects the lifecycle slice shown.
type AlertTab string

const (
	TabActive       AlertTab = "active"
	TabAcknowledged AlertTab = "acknowledged"
	TabResolved     AlertTab = "resolved"
	TabAll          AlertTab = "all"
)

// Valid reports whether the tab names a known lifecycle slice. Empty means
// TabAll.
func (t AlertTab) Valid() bool {
	switch t {
	case "", TabAll, TabActive, TabAcknowledged, TabResolved:
		return true
	}
	return false
}

// AlertQuery filters and orders the board. Tab, Severity and Search combine
// with AND. An empty SortBy means newest first.
type AlertQuery struct {
	Tab      AlertTab
	Severity models.Severity
	Search   string
	SortBy   string
}

// AlertRow is one alert with lifecycle state, display severity and driver
// identity joined in.
type AlertRow struct {
	models.Alert
	State         models.AlertState `json:"state"`
	SeverityLabel models.Severity   `json:"severity_label"`
	Title         string            `json:"title"`
	DriverName    string            `json:"driver_name"`
}

// AlertBoard is the safety alert screen: the filtered rows plus the counters
// that stay computed over the full set regardless of active filters.
type AlertBoard struct {
	Alerts         []AlertRow     `json:"alerts"`
	TypeCounts     map[string]int `json:"type_counts"`
	CriticalActive int            `json:"critical_active"`
	Stale          bool           `json:"stale,omitempty"`
}

// Alerts returns the safety alert board.
func (v *Views) Alerts(ctx context.Context, q AlertQuery) (AlertBoard, error) {
	snap := v.fetchAlerts(ctx)
	if snap.Value == nil {
		if snap.Err != nil {
			return AlertBoard{}, snap.Err
		}
		return AlertBoard{Alerts: []AlertRow{}, TypeCounts: map[string]int{}}, nil
	}
	list, ok := snap.Value.([]models.Alert)
	if !ok {
		return AlertBoard{Alerts: []AlertRow{}, TypeCounts: map[string]int{}}, nil
	}

	v.lifecycle.Observe(list)
	names := v.driverNames(ctx)

	board := AlertBoard{
		Alerts:     make([]AlertRow, 0, len(list)),
		TypeCounts: make(map[string]int),
		Stale:      snap.Stale,
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, a := range list {
		row := AlertRow{
			Alert:         a,
			State:         v.lifecycle.State(a),
			SeverityLabel: classify.ClassifySeverity(a.Severity),
			Title:         alertTitle(a.AlertType),
			DriverName:    names[a.DriverID],
		}
		if row.DriverName == "" {
			row.DriverName = "Unknown Driver"
		}

		// Counters cover everything the poll returned, not the filtered view.
		board.TypeCounts[strings.ToLower(a.AlertType)]++
		if row.SeverityLabel == models.SeverityCritical && row.State == models.AlertActive {
			board.CriticalActive++
		}

		if !matchesAlert(row, q.Tab, q.Severity, search) {
			continue
		}
		board.Alerts = append(board.Alerts, row)
	}

	sortAlerts(board.Alerts, q.SortBy)
	return board, nil
}

func matchesAlert(row AlertRow, tab AlertTab, severity models.Severity, search string) bool {
	switch tab {
	case "", TabAll:
	case TabActive, TabAcknowledged, TabResolved:
		if string(row.State) != string(tab) {
			return false
		}
	default:
		return false
	}
	if severity != "" && row.SeverityLabel != severity {
		return false
	}
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(row.DriverName), search) ||
		strings.Contains(strings.ToLower(row.DriverID), search) ||
		strings.Contains(strings.ToLower(row.Title), search) ||
		strings.Contains(strings.ToLower(row.AlertType), search)
}

func sortAlerts(rows []AlertRow, by string) {
	switch by {
	case SortBySeverity:
		sort.SliceStable(rows, func(i, j int) bool {
			ri := classify.SeverityRank(rows[i].SeverityLabel)
			rj := classify.SeverityRank(rows[j].SeverityLabel)
			if ri != rj {
				return ri < rj
			}
			return rows[i].Timestamp.After(rows[j].Timestamp)
		})
	case SortByTitle:
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Title != rows[j].Title {
				return rows[i].Title < rows[j].Title
			}
			return rows[i].Timestamp.After(rows[j].Timestamp)
		})
	default:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Timestamp.After(rows[j].Timestamp)
		})
	}
}

// alertTitle renders an alert type for display. The type set is open, so
// unknown values get the generic word treatment instead of an error.
func alertTitle(alertType string) string {
	words := strings.FieldsFunc(strings.ToLower(alertType), func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	if len(words) == 0 {
		return "Safety Alert"
	}
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ") + " Alert"
}

// FindAlert looks an alert up by id in the cached list. Write handlers use
// this to turn a URL id back into the full record the lifecycle needs.
func (v *Views) FindAlert(ctx context.Context, alertID string) (models.Alert, bool) {
	snap := v.fetchAlerts(ctx)
	list, ok := snap.Value.([]models.Alert)
	if !ok {
		return models.Alert{}, false
	}
	for _, a := range list {
		if a.AlertID == alertID {
			return a, true
		}
	}
	return models.Alert{}, false
}

// DriverByID looks a driver up in the cached fleet list.
func (v *Views) DriverByID(ctx context.Context, driverID string) (models.Driver, bool) {
	snap := v.fetchDrivers(ctx)
	if list, ok := snap.Value.(models.DriverList); ok {
		for _, d := range list.Drivers {
			if d.DriverID == driverID {
				return d, true
			}
		}
	}
	return models.Driver{}, false
}

// driverNames joins driver ids to display names from the cached driver list.
// A cold cache yields an empty map; callers fall back to "Unknown Driver".
func (v *Views) driverNames(ctx context.Context) map[string]string {
	snap := v.fetchDrivers(ctx)
	names := make(map[string]string)
	if list, ok := snap.Value.(models.DriverList); ok {
		for _, d := range list.Drivers {
			names[d.DriverID] = d.Name
		}
	}
	return names
}
