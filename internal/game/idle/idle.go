// Package idle computes offline reward accrual. Settlement is lazy: rewards
// are computed from elapsed wall-clock time on the next read, never ticked.
package idle

import "time"

const (
	// CapHours is the maximum number of hours credited per settlement.
	// Hours beyond the cap are forfeited, not carried forward.
	CapHours = 24
	// GoldPerLevelHour is the gold earned per capped hour per player level.
	GoldPerLevelHour = 5
	// ExpPerLevelHour is the experience earned per capped hour per player level.
	ExpPerLevelHour = 2
)

// Accrual is the computed idle reward for one settlement.
type Accrual struct {
	Hours int // capped hours credited; 0 means nothing to settle
	Gold  int
	Exp   int
}

// Settle computes the idle accrual for the elapsed time since lastReward.
//
// Precondition: level >= 1.
// Postcondition: Hours == min(floor(elapsed/1h), CapHours); a zero Accrual is
// returned when less than one full hour has elapsed. The caller advances the
// settlement timestamp to now whenever Hours > 0, so overflow beyond the cap
// is permanently forfeited.
func Settle(lastReward, now time.Time, level int) Accrual {
	hours := int(now.Sub(lastReward) / time.Hour)
	if hours < 1 {
		return Accrual{}
	}
	if hours > CapHours {
		hours = CapHours
	}
	return Accrual{
		Hours: hours,
		Gold:  hours * level * GoldPerLevelHour,
		Exp:   hours * level * ExpPerLevelHour,
	}
}
