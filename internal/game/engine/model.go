package engine

import "time"

// Player represents a character's persistent state.
//
// Invariant: 0 <= Health <= MaxHealth; Level == progression.DeriveLevel(Experience).
// ID is set by the persistence layer; a zero ID indicates an unsaved player.
type Player struct {
	ID        int64
	AccountID int64

	Name string
	Race string

	Level      int
	Experience int
	Gold       int

	Health    int
	MaxHealth int

	Attack   int
	Strength int
	Defense  int
	Range    int
	Magic    int
	Prayer   int
	Stamina  int
	Luck     int

	LastActivity   time.Time
	LastIdleReward time.Time
	CreatedAt      time.Time
}

// Skill is one (player, skill name) progression row.
//
// Invariant: Level == progression.DeriveLevel(Experience), using the same
// curve as Player.
type Skill struct {
	PlayerID   int64
	Name       string
	Level      int
	Experience int
}

// InventoryEntry is one stack of an item held by a player.
//
// Invariant: Quantity >= 1. A row is deleted rather than kept at zero.
type InventoryEntry struct {
	PlayerID int64
	ItemID   string
	Quantity int
}

// Battle is the single live battle of a player.
//
// Invariant: at most one Battle exists per player.
type Battle struct {
	PlayerID     int64
	EnemyID      string
	EnemyHealth  int // enemy's remaining health
	PlayerHealth int // player's health snapshot inside the battle
	CreatedAt    time.Time
}
