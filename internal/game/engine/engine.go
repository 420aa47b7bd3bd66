// Package engine orchestrates all gameplay operations over the persistence
// gateway: character lifecycle, combat, gathering, crafting, and idle reward
// settlement. Every operation serializes on a per-player lock and commits its
// state changes through a single transaction, so a failure leaves the player
// untouched.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/idlerpg/internal/game/namegen"
	"github.com/cory-johannsen/idlerpg/internal/game/progression"
	"github.com/cory-johannsen/idlerpg/internal/game/rng"
)

// Clock abstracts wall-clock time so idle settlement is testable.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// RealClock returns a Clock backed by time.Now in UTC.
func RealClock() Clock { return realClock{} }

// Engine executes gameplay operations.
type Engine struct {
	store   Store
	catalog Catalog
	src     rng.Source
	clock   Clock
	names   *namegen.Generator
	logger  *zap.Logger
	locks   *playerLocks
}

// NewEngine constructs an Engine.
//
// Precondition: all arguments must be non-nil.
func NewEngine(store Store, cat Catalog, src rng.Source, clock Clock, logger *zap.Logger) *Engine {
	return &Engine{
		store:   store,
		catalog: cat,
		src:     src,
		clock:   clock,
		names:   namegen.NewGenerator(src),
		logger:  logger,
		locks:   newPlayerLocks(),
	}
}

// loadPlayer fetches a player through the given store view.
func (e *Engine) loadPlayer(ctx context.Context, s Store, playerID int64) (*Player, error) {
	p, err := s.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load player %d: %w", playerID, err)
	}
	return p, nil
}

// applyExperience grants experience to a player and recomputes the derived
// stat block on level-up. Health is restored to the new maximum when the
// player levels. The player is mutated but not persisted; the caller writes
// it through the transaction it is operating in.
func applyExperience(p *Player, amount int) (leveledUp bool) {
	gain := progression.Apply(p.Experience, p.Level, amount)
	p.Experience = gain.Experience
	if !gain.LeveledUp {
		return false
	}
	p.Level = gain.Level
	stats := progression.StatsForLevel(gain.Level)
	p.MaxHealth = stats.MaxHealth
	p.Attack = stats.Attack
	p.Defense = stats.Defense
	p.Health = stats.MaxHealth
	return true
}

// addSkillExperience grants experience to one of the player's skills and
// persists the updated row through tx.
func (e *Engine) addSkillExperience(ctx context.Context, tx Store, playerID int64, name string, amount int) (Skill, bool, error) {
	sk, err := tx.GetSkill(ctx, playerID, name)
	if err != nil {
		return Skill{}, false, fmt.Errorf("failed to load skill %q: %w", name, err)
	}
	gain := progression.Apply(sk.Experience, sk.Level, amount)
	sk.Experience = gain.Experience
	sk.Level = gain.Level
	if err := tx.UpsertSkill(ctx, *sk); err != nil {
		return Skill{}, false, fmt.Errorf("failed to save skill %q: %w", name, err)
	}
	return *sk, gain.LeveledUp, nil
}

// addItem increases the player's stack of itemID by qty, creating the row
// when absent.
//
// Precondition: qty >= 1.
func addItem(ctx context.Context, tx Store, playerID int64, itemID string, qty int) error {
	entry, err := tx.GetInventoryItem(ctx, playerID, itemID)
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to load inventory item %q: %w", itemID, err)
	}
	next := InventoryEntry{PlayerID: playerID, ItemID: itemID, Quantity: qty}
	if entry != nil {
		next.Quantity += entry.Quantity
	}
	if err := tx.UpsertInventoryItem(ctx, next); err != nil {
		return fmt.Errorf("failed to save inventory item %q: %w", itemID, err)
	}
	return nil
}

// removeItem decreases the player's stack of itemID by qty, deleting the row
// when it reaches zero. Returns ErrInsufficientResource when the held
// quantity is short.
//
// Precondition: qty >= 1.
func removeItem(ctx context.Context, tx Store, playerID int64, itemID string, qty int) error {
	entry, err := tx.GetInventoryItem(ctx, playerID, itemID)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("item %q: %w", itemID, ErrInsufficientResource)
		}
		return fmt.Errorf("failed to load inventory item %q: %w", itemID, err)
	}
	if entry.Quantity < qty {
		return fmt.Errorf("item %q: have %d, need %d: %w", itemID, entry.Quantity, qty, ErrInsufficientResource)
	}
	if entry.Quantity == qty {
		if err := tx.DeleteInventoryItem(ctx, playerID, itemID); err != nil {
			return fmt.Errorf("failed to delete inventory item %q: %w", itemID, err)
		}
		return nil
	}
	entry.Quantity -= qty
	if err := tx.UpsertInventoryItem(ctx, *entry); err != nil {
		return fmt.Errorf("failed to save inventory item %q: %w", itemID, err)
	}
	return nil
}
