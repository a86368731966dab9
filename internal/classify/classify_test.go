package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fleetconsole/internal/classify"
	"fleetconsole/internal/models"
)

func TestNormalizeDriverStatus_Synonyms(t *testing.T) {
	for _, raw := range []string{"BUSY", "ON_DELIVERY", "ON DELIVERY", "busy", "on_delivery"} {
		assert.Equal(t, models.DriverBusy, classify.NormalizeDriverStatus(raw), "raw=%q", raw)
	}
	for _, raw := range []string{"AVAILABLE", "ONLINE", "available"} {
		assert.Equal(t, models.DriverAvailable, classify.NormalizeDriverStatus(raw), "raw=%q", raw)
	}
	for _, raw := range []string{"ON_BREAK", "BREAK", "on break"} {
		assert.Equal(t, models.DriverOnBreak, classify.NormalizeDriverStatus(raw), "raw=%q", raw)
	}
}

func TestNormalizeDriverStatus_UnknownIsOffline(t *testing.T) {
	assert.Equal(t, models.DriverOffline, classify.NormalizeDriverStatus(""))
	assert.Equal(t, models.DriverOffline, classify.NormalizeDriverStatus("SUSPENDED"))
	assert.Equal(t, models.DriverOffline, classify.NormalizeDriverStatus("garbage"))
}

func TestClassifyFatigue_FixedPoints(t *testing.T) {
	assert.Equal(t, models.FatigueSevere, classify.ClassifyFatigue(8))
	assert.Equal(t, models.FatigueMild, classify.ClassifyFatigue(3))
	assert.Equal(t, models.FatigueNormal, classify.ClassifyFatigue(0))
	assert.Equal(t, models.FatigueWarning, classify.ClassifyFatigue(5))
	assert.Equal(t, models.FatigueWarning, classify.ClassifyFatigue(7))
	assert.Equal(t, models.FatigueMild, classify.ClassifyFatigue(4))
	assert.Equal(t, models.FatigueMild, classify.ClassifyFatigue(2))
	assert.Equal(t, models.FatigueNormal, classify.ClassifyFatigue(1.9))
}

func TestClassifyFatigue_MonotonicInScore(t *testing.T) {
	rank := map[models.FatigueLevel]int{
		models.FatigueNormal:  0,
		models.FatigueMild:    1,
		models.FatigueWarning: 2,
		models.FatigueSevere:  3,
	}
	prev := -1
	for s := 0.0; s <= 10.0; s += 0.25 {
		cur := rank[classify.ClassifyFatigue(s)]
		assert.GreaterOrEqual(t, cur, prev, "score=%v", s)
		prev = cur
	}
}

func TestClassifyFatigue_OutOfRangeIsNormal(t *testing.T) {
	assert.Equal(t, models.FatigueNormal, classify.ClassifyFatigue(-1))
	assert.Equal(t, models.FatigueNormal, classify.ClassifyFatigue(11))
}

func TestClassifyFatigueLabel(t *testing.T) {
	assert.Equal(t, models.FatigueSevere, classify.ClassifyFatigueLabel("SEVERE"))
	assert.Equal(t, models.FatigueWarning, classify.ClassifyFatigueLabel("warning"))
	assert.Equal(t, models.FatigueNormal, classify.ClassifyFatigueLabel("unknown-label"))
	assert.Equal(t, models.FatigueNormal, classify.ClassifyFatigueLabel(""))
}

func TestDriverFatigue_PrefersScore(t *testing.T) {
	score := 9.0
	d := models.Driver{FatigueScore: &score, FatigueLabel: "NORMAL"}
	assert.Equal(t, models.FatigueSevere, classify.DriverFatigue(d))

	d = models.Driver{FatigueLabel: "WARNING"}
	assert.Equal(t, models.FatigueWarning, classify.DriverFatigue(d))
}

func TestClassifySeverity(t *testing.T) {
	assert.Equal(t, models.SeverityCritical, classify.ClassifySeverity(4))
	assert.Equal(t, models.SeverityHigh, classify.ClassifySeverity(3))
	assert.Equal(t, models.SeverityMedium, classify.ClassifySeverity(2))
	assert.Equal(t, models.SeverityLow, classify.ClassifySeverity(1))
	assert.Equal(t, models.SeverityLow, classify.ClassifySeverity(0))
	assert.Equal(t, models.SeverityLow, classify.ClassifySeverity(99))
}

func TestSeverityRank_StrictOrder(t *testing.T) {
	assert.Less(t, classify.SeverityRank(models.SeverityCritical), classify.SeverityRank(models.SeverityHigh))
	assert.Less(t, classify.SeverityRank(models.SeverityHigh), classify.SeverityRank(models.SeverityMedium))
	assert.Less(t, classify.SeverityRank(models.SeverityMedium), classify.SeverityRank(models.SeverityLow))
}
