// Package progression provides the pure experience and level math shared by
// character levels and per-skill levels.
package progression

import "math"

const (
	// BaseExp is the experience required to complete level 1.
	BaseExp = 100
	// Growth is the per-level multiplier of the experience curve.
	Growth = 1.5
)

// ExpForLevel returns the experience required to complete the given level.
//
// Precondition: level >= 1.
// Postcondition: Returns floor(100 * 1.5^(level-1)); strictly increasing in level.
func ExpForLevel(level int) int {
	return int(math.Floor(BaseExp * math.Pow(Growth, float64(level-1))))
}

// CumulativeExp returns the total experience required to reach the given level
// from level 1, i.e. the sum of ExpForLevel over levels 1..level-1.
//
// Precondition: level >= 1.
// Postcondition: CumulativeExp(1) == 0.
func CumulativeExp(level int) int {
	total := 0
	for l := 1; l < level; l++ {
		total += ExpForLevel(l)
	}
	return total
}

// DeriveLevel returns the level implied by a total experience value.
//
// Precondition: totalExp >= 0.
// Postcondition: Returns the unique L >= 1 with
// CumulativeExp(L) <= totalExp < CumulativeExp(L+1).
func DeriveLevel(totalExp int) int {
	level := 1
	cumulative := 0
	for cumulative+ExpForLevel(level) <= totalExp {
		cumulative += ExpForLevel(level)
		level++
	}
	return level
}

// Progress describes position within the current level.
type Progress struct {
	// Current is the experience earned inside the current level.
	Current int
	// Needed is the experience required to complete the current level.
	Needed int
}

// ExpProgress returns the progress through the given level for a total
// experience value.
//
// Precondition: level == DeriveLevel(totalExp).
// Postcondition: 0 <= result.Current < result.Needed.
func ExpProgress(totalExp, level int) Progress {
	return Progress{
		Current: totalExp - CumulativeExp(level),
		Needed:  ExpForLevel(level),
	}
}

// Stats is the derived combat stat block for a character level.
type Stats struct {
	MaxHealth int
	Attack    int
	Defense   int
}

// StatsForLevel returns the stat block a character holds at the given level.
//
// Precondition: level >= 1.
func StatsForLevel(level int) Stats {
	return Stats{
		MaxHealth: 100 + (level-1)*10,
		Attack:    10 + (level-1)*2,
		Defense:   5 + level,
	}
}

// Gain is the result of applying an experience grant.
type Gain struct {
	Experience int // new total experience
	Level      int // new derived level
	LeveledUp  bool
}

// Apply adds amount to a total experience value and derives the new level.
//
// Precondition: totalExp >= 0; level == DeriveLevel(totalExp); amount >= 0.
// Postcondition: result.Level >= level; result.Experience == totalExp + amount.
func Apply(totalExp, level, amount int) Gain {
	newExp := totalExp + amount
	newLevel := DeriveLevel(newExp)
	return Gain{
		Experience: newExp,
		Level:      newLevel,
		LeveledUp:  newLevel > level,
	}
}
