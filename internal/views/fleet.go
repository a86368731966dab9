package views

import (
	"context"

	"fleetconsole/internal/models"
	"fleetconsole/internal/store"
)

// FleetStatus is the dashboard header: driver availability counts plus order
// throughput. Stale is true when either half could not be refreshed and the
// values shown are the last good ones.
type FleetStatus struct {
	Summary    models.FleetSummary `json:"summary"`
	OrderStats models.OrderStats   `json:"order_stats"`
	Stale      bool                `json:"stale,omitempty"`
}

// Fleet returns the fleet summary view. An error is returned only when
// nothing was ever fetched; afterwards failures degrade to Stale.
func (v *Views) Fleet(ctx context.Context) (FleetStatus, error) {
	sumSnap := v.cache.ReadOrRefetch(ctx, store.FleetSummaryKey(), store.KindFleetSummary,
		func(ctx context.Context) (interface{}, error) {
			return v.api.DriverSummary(ctx)
		})
	statsSnap := v.cache.ReadOrRefetch(ctx, store.OrderStatsKey("", ""), store.KindOrderStats,
		func(ctx context.Context) (interface{}, error) {
			return v.api.OrderStats(ctx, "", "")
		})

	if sumSnap.Value == nil && sumSnap.Err != nil {
		return FleetStatus{}, sumSnap.Err
	}

	out := FleetStatus{Stale: sumSnap.Stale || statsSnap.Stale}
	if sum, ok := sumSnap.Value.(models.FleetSummary); ok {
		out.Summary = sum
	}
	if stats, ok := statsSnap.Value.(models.OrderStats); ok {
		out.OrderStats = stats
	}
	return out, nil
}

// DriverStats returns a driver's performance stats with the documented
// defaults filled in for metrics the backend has not computed.
func (v *Views) DriverStats(ctx context.Context, driverID string) (models.ResolvedStats, error) {
	snap := v.cache.ReadOrRefetch(ctx, store.DriverStatsKey(driverID), store.KindDriverStats,
		func(ctx context.Context) (interface{}, error) {
			return v.api.DriverPerformanceStats(ctx, driverID)
		})
	if snap.Value == nil {
		if snap.Err != nil {
			return models.ResolvedStats{}, snap.Err
		}
		return models.StatsDefaults, nil
	}
	stats, ok := snap.Value.(models.PerformanceStats)
	if !ok {
		return models.StatsDefaults, nil
	}
	return stats.WithDefaults(), nil
}
