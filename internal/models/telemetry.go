package models

// Sensor wraps a telemetry reading so "no data" is distinguishable from a
// zero value. Speed, battery, network and camera feeds are not wired up yet;
// those fields stay Unavailable rather than carrying placeholder literals.
type Sensor[T any] struct {
	Value     T    `json:"value"`
	Available bool `json:"available"`
}

// Reading returns an available sensor value.
func Reading[T any](v T) Sensor[T] {
	return Sensor[T]{Value: v, Available: true}
}

// Unavailable returns a sensor with no data.
func Unavailable[T any]() Sensor[T] {
	return Sensor[T]{}
}

// Telemetry is the per-driver device feed shown on the monitoring screens.
type Telemetry struct {
	SpeedKmh     Sensor[float64] `json:"speed_kmh"`
	BatteryPct   Sensor[int]     `json:"battery_pct"`
	Network      Sensor[string]  `json:"network"`
	CameraActive Sensor[bool]    `json:"camera_active"`
}
