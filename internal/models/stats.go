package models

// PerformanceStats is the response of GET /drivers/{id}/performance-stats.
// Fields are pointers because the backend omits metrics it has not computed
// yet; WithDefaults resolves the gaps against the documented defaults instead
// of scattering fallback literals across call sites.
type PerformanceStats struct {
	TodayOrders         *int     `json:"today_orders,omitempty"`
	CompletionRate      *float64 `json:"completion_rate,omitempty"`
	TodayBreaks         *int     `json:"today_breaks,omitempty"`
	TodayDistance       *float64 `json:"today_distance,omitempty"`
	AverageRating       *float64 `json:"average_rating,omitempty"`
	TodaySafetyAlerts   *int     `json:"today_safety_alerts,omitempty"`
	AverageFatigueScore *float64 `json:"average_fatigue_score,omitempty"`
	TotalOrders         *int     `json:"total_orders,omitempty"`
}

// ResolvedStats is a PerformanceStats with every gap filled.
type ResolvedStats struct {
	TodayOrders         int     `json:"today_orders"`
	CompletionRate      float64 `json:"completion_rate"`
	TodayBreaks         int     `json:"today_breaks"`
	TodayDistance       float64 `json:"today_distance"`
	AverageRating       float64 `json:"average_rating"`
	TodaySafetyAlerts   int     `json:"today_safety_alerts"`
	AverageFatigueScore float64 `json:"average_fatigue_score"`
	TotalOrders         int     `json:"total_orders"`
	SafetyScore         int     `json:"safety_score"`
}

// StatsDefaults documents the per-field defaults used when the backend has no
// value yet. SafetyScore has no backend source at all and always takes the
// default until the scoring pipeline lands.
var StatsDefaults = ResolvedStats{
	TodayOrders:         0,
	CompletionRate:      0,
	TodayBreaks:         0,
	TodayDistance:       0,
	AverageRating:       0,
	TodaySafetyAlerts:   0,
	AverageFatigueScore: 0,
	TotalOrders:         0,
	SafetyScore:         95,
}

// WithDefaults resolves missing fields against StatsDefaults.
func (p PerformanceStats) WithDefaults() ResolvedStats {
	r := StatsDefaults
	if p.TodayOrders != nil {
		r.TodayOrders = *p.TodayOrders
	}
	if p.CompletionRate != nil {
		r.CompletionRate = *p.CompletionRate
	}
	if p.TodayBreaks != nil {
		r.TodayBreaks = *p.TodayBreaks
	}
	if p.TodayDistance != nil {
		r.TodayDistance = *p.TodayDistance
	}
	if p.AverageRating != nil {
		r.AverageRating = *p.AverageRating
	}
	if p.TodaySafetyAlerts != nil {
		r.TodaySafetyAlerts = *p.TodaySafetyAlerts
	}
	if p.AverageFatigueScore != nil {
		r.AverageFatigueScore = *p.AverageFatigueScore
	}
	if p.TotalOrders != nil {
		r.TotalOrders = *p.TotalOrders
	}
	return r
}
