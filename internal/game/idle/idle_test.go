package idle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/idlerpg/internal/game/idle"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestSettle_UnderOneHour(t *testing.T) {
	a := idle.Settle(base, base.Add(59*time.Minute), 5)
	assert.Equal(t, idle.Accrual{}, a)
}

func TestSettle_ExactHourBoundary(t *testing.T) {
	a := idle.Settle(base, base.Add(time.Hour), 1)
	assert.Equal(t, 1, a.Hours)
	assert.Equal(t, 5, a.Gold)
	assert.Equal(t, 2, a.Exp)
}

func TestSettle_PartialHoursFloored(t *testing.T) {
	a := idle.Settle(base, base.Add(3*time.Hour+59*time.Minute), 2)
	assert.Equal(t, 3, a.Hours)
	assert.Equal(t, 30, a.Gold)
	assert.Equal(t, 12, a.Exp)
}

func TestSettle_CappedAtTwentyFourHours(t *testing.T) {
	// 30 hours idle at level 2: capped to 24h → 240 gold, 96 exp; the
	// remaining 6 hours are forfeited.
	a := idle.Settle(base, base.Add(30*time.Hour), 2)
	assert.Equal(t, 24, a.Hours)
	assert.Equal(t, 240, a.Gold)
	assert.Equal(t, 96, a.Exp)
}

func TestProperty_Settle_HoursNeverExceedCap(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		minutes := rapid.IntRange(0, 14*24*60).Draw(rt, "minutes")
		level := rapid.IntRange(1, 99).Draw(rt, "level")
		a := idle.Settle(base, base.Add(time.Duration(minutes)*time.Minute), level)
		assert.LessOrEqual(rt, a.Hours, idle.CapHours)
		assert.Equal(rt, a.Hours*level*idle.GoldPerLevelHour, a.Gold)
		assert.Equal(rt, a.Hours*level*idle.ExpPerLevelHour, a.Exp)
	})
}
