package progression_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/idlerpg/internal/game/progression"
)

func TestExpForLevel_BaseCase(t *testing.T) {
	assert.Equal(t, 100, progression.ExpForLevel(1))
	assert.Equal(t, 150, progression.ExpForLevel(2))
	assert.Equal(t, 225, progression.ExpForLevel(3))
}

func TestExpForLevel_StrictlyIncreasing(t *testing.T) {
	for l := 1; l < 60; l++ {
		assert.Greater(t, progression.ExpForLevel(l+1), progression.ExpForLevel(l),
			"curve must be strictly increasing at level %d", l)
	}
}

func TestCumulativeExp(t *testing.T) {
	assert.Equal(t, 0, progression.CumulativeExp(1))
	assert.Equal(t, 100, progression.CumulativeExp(2))
	assert.Equal(t, 250, progression.CumulativeExp(3))
	assert.Equal(t, 475, progression.CumulativeExp(4))
}

func TestDeriveLevel_Boundaries(t *testing.T) {
	tests := []struct {
		exp   int
		level int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},
		{474, 3},
		{475, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, progression.DeriveLevel(tt.exp), "exp=%d", tt.exp)
	}
}

func TestProperty_DeriveLevel_Unique(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		exp := rapid.IntRange(0, 5_000_000).Draw(rt, "exp")
		level := progression.DeriveLevel(exp)
		require.GreaterOrEqual(rt, level, 1)
		assert.LessOrEqual(rt, progression.CumulativeExp(level), exp)
		assert.Greater(rt, progression.CumulativeExp(level+1), exp)
	})
}

func TestExpProgress(t *testing.T) {
	p := progression.ExpProgress(120, 2)
	assert.Equal(t, 20, p.Current)
	assert.Equal(t, 150, p.Needed)

	p = progression.ExpProgress(0, 1)
	assert.Equal(t, 0, p.Current)
	assert.Equal(t, 100, p.Needed)
}

func TestProperty_ExpProgress_WithinLevel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		exp := rapid.IntRange(0, 1_000_000).Draw(rt, "exp")
		level := progression.DeriveLevel(exp)
		p := progression.ExpProgress(exp, level)
		assert.GreaterOrEqual(rt, p.Current, 0)
		assert.Less(rt, p.Current, p.Needed)
	})
}

func TestStatsForLevel(t *testing.T) {
	s := progression.StatsForLevel(1)
	assert.Equal(t, 100, s.MaxHealth)
	assert.Equal(t, 10, s.Attack)
	assert.Equal(t, 6, s.Defense)

	s = progression.StatsForLevel(5)
	assert.Equal(t, 140, s.MaxHealth)
	assert.Equal(t, 18, s.Attack)
	assert.Equal(t, 10, s.Defense)
}

func TestApply_NoLevelUp(t *testing.T) {
	g := progression.Apply(0, 1, 50)
	assert.Equal(t, 50, g.Experience)
	assert.Equal(t, 1, g.Level)
	assert.False(t, g.LeveledUp)
}

func TestApply_LevelUp(t *testing.T) {
	g := progression.Apply(90, 1, 20)
	assert.Equal(t, 110, g.Experience)
	assert.Equal(t, 2, g.Level)
	assert.True(t, g.LeveledUp)
}

func TestApply_MultiLevelJump(t *testing.T) {
	g := progression.Apply(0, 1, 500)
	assert.Equal(t, 4, g.Level)
	assert.True(t, g.LeveledUp)
}

func TestProperty_Apply_NeverDecreases(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		exp := rapid.IntRange(0, 1_000_000).Draw(rt, "exp")
		amount := rapid.IntRange(0, 100_000).Draw(rt, "amount")
		level := progression.DeriveLevel(exp)
		g := progression.Apply(exp, level, amount)
		assert.GreaterOrEqual(rt, g.Level, level)
		assert.GreaterOrEqual(rt, g.Experience, exp)
		assert.Equal(rt, g.LeveledUp, g.Level > level)
	})
}
