package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/idlerpg/internal/game/catalog"
	"github.com/cory-johannsen/idlerpg/internal/game/combat"
	"github.com/cory-johannsen/idlerpg/internal/game/rng"
)

// seqSource replays a fixed sequence of roll values.
type seqSource struct {
	values []int
	pos    int
}

func (s *seqSource) Intn(n int) int {
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v % n
}

func trainingEnemy() catalog.Enemy {
	return catalog.Enemy{
		ID: "slime", Name: "Slime", Level: 1,
		Health: 30, Attack: 3, Defense: 1,
		ExperienceReward: 10, GoldReward: 5,
	}
}

func TestProperty_PlayerDamage_FloorsAtOne(t *testing.T) {
	src := rng.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		attack := rapid.IntRange(0, 100).Draw(rt, "attack")
		defense := rapid.IntRange(0, 200).Draw(rt, "defense")
		assert.GreaterOrEqual(rt, combat.PlayerDamage(attack, defense, src), 1)
	})
}

func TestProperty_EnemyDamage_FloorsAtOne(t *testing.T) {
	src := rng.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		attack := rapid.IntRange(0, 100).Draw(rt, "attack")
		defense := rapid.IntRange(0, 200).Draw(rt, "defense")
		assert.GreaterOrEqual(rt, combat.EnemyDamage(attack, defense, src), 1)
	})
}

func TestPlayerDamage_VarianceRange(t *testing.T) {
	src := rng.NewCryptoSource()
	for i := 0; i < 500; i++ {
		// attack 10 vs defense 2: damage in [8, 12]
		dmg := combat.PlayerDamage(10, 2, src)
		assert.GreaterOrEqual(t, dmg, 8)
		assert.LessOrEqual(t, dmg, 12)
	}
}

func TestResolveTurn_Continue(t *testing.T) {
	// Player roll 0 → damage max(1, 10-1+0) = 9; enemy roll 0 → max(1, 3-5+0) = 1.
	src := &seqSource{values: []int{0, 0}}
	turn := combat.ResolveTurn(10, 5, 100, trainingEnemy(), 30, src)

	assert.Equal(t, combat.OutcomeContinue, turn.Outcome)
	assert.Equal(t, 9, turn.PlayerDamage)
	assert.Equal(t, 21, turn.EnemyHealth)
	assert.Equal(t, 1, turn.EnemyDamage)
	assert.Equal(t, 99, turn.PlayerHealth)
}

func TestResolveTurn_Victory_NoCounterAttack(t *testing.T) {
	src := &seqSource{values: []int{4}}
	// damage = max(1, 10-1+4) = 13 >= enemy health 5 → victory
	turn := combat.ResolveTurn(10, 5, 100, trainingEnemy(), 5, src)

	assert.Equal(t, combat.OutcomeVictory, turn.Outcome)
	assert.Equal(t, 0, turn.EnemyHealth)
	assert.Equal(t, 0, turn.EnemyDamage, "a defeated enemy never counter-attacks")
	assert.Equal(t, 100, turn.PlayerHealth)
}

func TestResolveTurn_Defeat_FloorsPlayerHealthAtZero(t *testing.T) {
	enemy := trainingEnemy()
	enemy.Attack = 50
	// Player roll 0 → 9 damage leaves the enemy alive; enemy roll 2 →
	// max(1, 50-5+2) = 47 against 3 HP.
	src := &seqSource{values: []int{0, 2}}
	turn := combat.ResolveTurn(10, 5, 3, enemy, 30, src)

	assert.Equal(t, combat.OutcomeDefeat, turn.Outcome)
	assert.Equal(t, 0, turn.PlayerHealth)
	assert.Equal(t, 47, turn.EnemyDamage)
}

func TestResolveTurn_BattleCannotStall(t *testing.T) {
	// Level-1 stats vs a tanky enemy: damage floors guarantee progress, so a
	// bounded number of turns must always terminate the battle.
	enemy := catalog.Enemy{ID: "wall", Name: "Wall", Level: 1, Health: 30, Attack: 3, Defense: 100}
	src := rng.NewCryptoSource()

	playerHealth := 1000
	enemyHealth := enemy.Health
	for turns := 0; turns < 100; turns++ {
		turn := combat.ResolveTurn(1, 1, playerHealth, enemy, enemyHealth, src)
		if turn.Outcome == combat.OutcomeVictory {
			return
		}
		require.NotEqual(t, combat.OutcomeDefeat, turn.Outcome)
		playerHealth = turn.PlayerHealth
		enemyHealth = turn.EnemyHealth
	}
	t.Fatal("battle did not terminate within 100 turns despite the damage floor")
}

func TestRollDrops_GuaranteedAndImpossible(t *testing.T) {
	src := rng.NewCryptoSource()
	drops := []catalog.DropSpec{
		{ItemID: "herb", Chance: 1.0, MinQty: 2, MaxQty: 4},
	}
	for i := 0; i < 100; i++ {
		loot := combat.RollDrops(drops, src)
		require.Len(t, loot, 1)
		assert.Equal(t, "herb", loot[0].ItemID)
		assert.GreaterOrEqual(t, loot[0].Quantity, 2)
		assert.LessOrEqual(t, loot[0].Quantity, 4)
	}
}

func TestRollDrops_IndependentRolls(t *testing.T) {
	// Chance(p=1) short-circuits without consuming a roll, so the quantity
	// rolls are consumed in spec order.
	src := &seqSource{values: []int{0, 2}}
	drops := []catalog.DropSpec{
		{ItemID: "wood", Chance: 1.0, MinQty: 1, MaxQty: 3},
		{ItemID: "stone", Chance: 1.0, MinQty: 1, MaxQty: 3},
	}
	loot := combat.RollDrops(drops, src)
	require.Len(t, loot, 2)
	assert.Equal(t, 1, loot[0].Quantity)
	assert.Equal(t, 3, loot[1].Quantity)
}

func TestRollDrops_Empty(t *testing.T) {
	assert.Empty(t, combat.RollDrops(nil, rng.NewCryptoSource()))
}
