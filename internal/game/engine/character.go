package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/idlerpg/internal/game/catalog"
	"github.com/cory-johannsen/idlerpg/internal/game/idle"
	"github.com/cory-johannsen/idlerpg/internal/game/namegen"
	"github.com/cory-johannsen/idlerpg/internal/game/progression"
)

// Creation defaults for a fresh character.
const (
	startingGold      = 100
	startingHealth    = 100
	startingStatValue = 1
)

// CreateCharacter creates a new character for the account with a generated
// race-flavored name and one row per catalog skill, all in one transaction.
//
// Precondition: race must be a valid playable race.
// Postcondition: Returns ErrInvalidState when the account already has a
// character; on success the returned player has an assigned ID.
func (e *Engine) CreateCharacter(ctx context.Context, accountID int64, race namegen.Race) (*Player, error) {
	if !namegen.ValidRace(race) {
		return nil, fmt.Errorf("race %q: %w", race, ErrNotFound)
	}

	opID := uuid.New()
	existing, err := e.store.GetPlayerByAccount(ctx, accountID)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("failed to check for existing character: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("account %d already has character %q: %w", accountID, existing.Name, ErrInvalidState)
	}

	now := e.clock.Now()
	p := &Player{
		AccountID:      accountID,
		Name:           e.names.Generate(race),
		Race:           string(race),
		Level:          1,
		Experience:     0,
		Gold:           startingGold,
		Health:         startingHealth,
		MaxHealth:      startingHealth,
		Attack:         startingStatValue,
		Strength:       startingStatValue,
		Defense:        startingStatValue,
		Range:          startingStatValue,
		Magic:          startingStatValue,
		Prayer:         startingStatValue,
		Stamina:        startingStatValue,
		Luck:           startingStatValue,
		LastActivity:   now,
		LastIdleReward: now,
		CreatedAt:      now,
	}

	err = e.store.WithTx(ctx, func(tx Store) error {
		created, err := tx.CreatePlayer(ctx, p)
		if err != nil {
			return fmt.Errorf("failed to create player: %w", err)
		}
		p = created
		for _, name := range catalog.SkillNames {
			sk := Skill{PlayerID: p.ID, Name: name, Level: 1, Experience: 0}
			if err := tx.UpsertSkill(ctx, sk); err != nil {
				return fmt.Errorf("failed to create skill %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("character created",
		zap.String("op_id", opID.String()),
		zap.Int64("player_id", p.ID),
		zap.String("name", p.Name),
		zap.String("race", p.Race))
	return p, nil
}

// PlayerForAccount returns the account's character.
//
// Postcondition: Returns ErrNotFound when the account has no character yet.
func (e *Engine) PlayerForAccount(ctx context.Context, accountID int64) (*Player, error) {
	p, err := e.store.GetPlayerByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load character for account %d: %w", accountID, err)
	}
	return p, nil
}

// SkillView pairs a skill with its progress through the current level.
type SkillView struct {
	Skill    Skill
	Progress progression.Progress
}

// Card is the full character sheet returned by ViewCard.
type Card struct {
	Player    *Player
	Progress  progression.Progress
	Skills    []SkillView
	Inventory []InventoryEntry
	// Settled is the idle accrual credited by this view; zero when less than
	// one hour had elapsed.
	Settled idle.Accrual
}

// ViewCard settles any pending idle rewards and returns the character sheet.
//
// Postcondition: the returned player reflects the settled idle accrual.
func (e *Engine) ViewCard(ctx context.Context, playerID int64) (*Card, error) {
	release := e.locks.acquire(playerID)
	defer release()

	settled, err := e.settleIdleLocked(ctx, playerID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	p, err := e.loadPlayer(ctx, e.store, playerID)
	if err != nil {
		return nil, err
	}
	skills, err := e.store.GetSkills(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load skills: %w", err)
	}
	inv, err := e.store.GetInventory(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	card := &Card{
		Player:    p,
		Progress:  progression.ExpProgress(p.Experience, p.Level),
		Inventory: inv,
		Settled:   settled.Accrual,
	}
	for _, sk := range skills {
		card.Skills = append(card.Skills, SkillView{
			Skill:    sk,
			Progress: progression.ExpProgress(sk.Experience, sk.Level),
		})
	}
	return card, nil
}
