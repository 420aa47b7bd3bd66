// Package combat provides pure turn resolution for single-player battles
// against catalog enemies. State transitions and persistence live in the
// engine; this package only computes damage, outcomes, and loot.
package combat

import (
	"github.com/cory-johannsen/idlerpg/internal/game/catalog"
	"github.com/cory-johannsen/idlerpg/internal/game/rng"
)

// Variance bounds for the random damage component. Rolls are in [0, n).
const (
	playerVariance = 5
	enemyVariance  = 3
)

// Outcome classifies the result of a resolved turn.
type Outcome string

const (
	// OutcomeContinue means both combatants survive and the battle goes on.
	OutcomeContinue Outcome = "continue"
	// OutcomeVictory means the enemy dropped to 0 or below this turn.
	OutcomeVictory Outcome = "victory"
	// OutcomeDefeat means the player dropped to 0 this turn.
	OutcomeDefeat Outcome = "defeat"
)

// Turn holds the full result of a single combat turn.
type Turn struct {
	PlayerDamage int // damage dealt to the enemy, always >= 1
	EnemyDamage  int // damage dealt to the player; 0 when the enemy died first
	EnemyHealth  int // enemy health after the turn, floored at 0
	PlayerHealth int // player health after the turn, floored at 0
	Outcome      Outcome
}

// PlayerDamage computes the player's damage roll against an enemy.
//
// Precondition: src must be non-nil.
// Postcondition: Returns max(1, attack - enemyDefense + roll[0,5)); never < 1.
func PlayerDamage(attack, enemyDefense int, src rng.Source) int {
	dmg := attack - enemyDefense + src.Intn(playerVariance)
	if dmg < 1 {
		return 1
	}
	return dmg
}

// EnemyDamage computes the enemy's counter-attack roll against the player.
//
// Precondition: src must be non-nil.
// Postcondition: Returns max(1, enemyAttack - defense + roll[0,3)); never < 1.
func EnemyDamage(enemyAttack, defense int, src rng.Source) int {
	dmg := enemyAttack - defense + src.Intn(enemyVariance)
	if dmg < 1 {
		return 1
	}
	return dmg
}

// ResolveTurn resolves one combat turn. The player always strikes first; a
// defeated enemy never counter-attacks. Both damage rolls floor at 1, so a
// battle cannot stall.
//
// Precondition: enemyHealth > 0; playerHealth > 0; src must be non-nil.
// Postcondition: result.Outcome == OutcomeVictory iff the player's strike
// brought the enemy to 0 or below; EnemyDamage == 0 on victory.
func ResolveTurn(attack, defense, playerHealth int, enemy catalog.Enemy, enemyHealth int, src rng.Source) Turn {
	t := Turn{PlayerHealth: playerHealth}

	t.PlayerDamage = PlayerDamage(attack, enemy.Defense, src)
	remaining := enemyHealth - t.PlayerDamage

	if remaining <= 0 {
		t.EnemyHealth = 0
		t.Outcome = OutcomeVictory
		return t
	}

	t.EnemyHealth = remaining
	t.EnemyDamage = EnemyDamage(enemy.Attack, defense, src)
	t.PlayerHealth = playerHealth - t.EnemyDamage
	if t.PlayerHealth <= 0 {
		t.PlayerHealth = 0
		t.Outcome = OutcomeDefeat
	} else {
		t.Outcome = OutcomeContinue
	}
	return t
}

// Loot is a single rolled drop.
type Loot struct {
	ItemID   string
	Quantity int
}

// RollDrops rolls each drop spec independently against its chance.
//
// Precondition: drops must have passed catalog validation; src must be non-nil.
// Postcondition: Each returned Quantity is in [MinQty, MaxQty] for its spec.
func RollDrops(drops []catalog.DropSpec, src rng.Source) []Loot {
	var out []Loot
	for _, d := range drops {
		if !rng.Chance(src, d.Chance) {
			continue
		}
		out = append(out, Loot{
			ItemID:   d.ItemID,
			Quantity: rng.IntBetween(src, d.MinQty, d.MaxQty),
		})
	}
	return out
}
