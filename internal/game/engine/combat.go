package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/idlerpg/internal/game/catalog"
	"github.com/cory-johannsen/idlerpg/internal/game/combat"
)

// huntLevelMargin bounds random enemy selection to enemies at most this many
// levels above the player.
const huntLevelMargin = 3

// HuntResult reports a newly started battle.
type HuntResult struct {
	Enemy  catalog.Enemy
	Battle *Battle
}

// Hunt starts a battle against the named enemy, or against a random enemy at
// most three levels above the player when enemyID is empty.
//
// Postcondition: Returns ErrInvalidState when the player is already in battle
// or has 0 health; on success exactly one battle row exists for the player.
func (e *Engine) Hunt(ctx context.Context, playerID int64, enemyID string) (*HuntResult, error) {
	release := e.locks.acquire(playerID)
	defer release()

	p, err := e.loadPlayer(ctx, e.store, playerID)
	if err != nil {
		return nil, err
	}
	if p.Health <= 0 {
		return nil, fmt.Errorf("player %d has no health, rest first: %w", playerID, ErrInvalidState)
	}
	if _, err := e.store.GetActiveBattle(ctx, playerID); err == nil {
		return nil, fmt.Errorf("player %d is already in battle: %w", playerID, ErrInvalidState)
	} else if !isNotFound(err) {
		return nil, fmt.Errorf("failed to check for active battle: %w", err)
	}

	enemy, err := e.pickEnemy(enemyID, p.Level)
	if err != nil {
		return nil, err
	}

	battle := &Battle{
		PlayerID:     playerID,
		EnemyID:      enemy.ID,
		EnemyHealth:  enemy.Health,
		PlayerHealth: p.Health,
		CreatedAt:    e.clock.Now(),
	}
	err = e.store.WithTx(ctx, func(tx Store) error {
		if err := tx.CreateBattle(ctx, battle); err != nil {
			return fmt.Errorf("failed to create battle: %w", err)
		}
		p.LastActivity = e.clock.Now()
		if err := tx.UpdatePlayer(ctx, p); err != nil {
			return fmt.Errorf("failed to save player: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("battle started",
		zap.Int64("player_id", playerID),
		zap.String("enemy_id", enemy.ID),
		zap.Int("enemy_level", enemy.Level))
	return &HuntResult{Enemy: enemy, Battle: battle}, nil
}

// pickEnemy resolves an explicit enemy ID or draws a random one within the
// level margin.
func (e *Engine) pickEnemy(enemyID string, playerLevel int) (catalog.Enemy, error) {
	if enemyID != "" {
		enemy, ok := e.catalog.Enemy(enemyID)
		if !ok {
			return catalog.Enemy{}, fmt.Errorf("enemy %q: %w", enemyID, ErrNotFound)
		}
		return enemy, nil
	}

	var eligible []catalog.Enemy
	for _, enemy := range e.catalog.ListEnemies() {
		if enemy.Level <= playerLevel+huntLevelMargin {
			eligible = append(eligible, enemy)
		}
	}
	if len(eligible) == 0 {
		return catalog.Enemy{}, fmt.Errorf("no enemy at or below level %d: %w", playerLevel+huntLevelMargin, ErrNotFound)
	}
	return eligible[e.src.Intn(len(eligible))], nil
}

// TurnResult reports one resolved combat turn and, on victory, the rewards
// committed with it.
type TurnResult struct {
	Enemy catalog.Enemy
	Turn  combat.Turn

	// Victory rewards; zero unless Turn.Outcome is OutcomeVictory.
	ExpGained      int
	GoldGained     int
	SkillExpGained int
	Loot           []combat.Loot
	LeveledUp      bool
	Level          int // player level after the turn
}

// AttackTurn resolves one turn of the player's active battle. Victory commits
// experience, gold, combat-skill experience, and rolled loot atomically with
// the battle's removal; defeat zeroes the player's health.
//
// Postcondition: Returns ErrInvalidState when no battle is active. After a
// terminal turn no battle row remains.
func (e *Engine) AttackTurn(ctx context.Context, playerID int64) (*TurnResult, error) {
	release := e.locks.acquire(playerID)
	defer release()

	opID := uuid.New()
	p, err := e.loadPlayer(ctx, e.store, playerID)
	if err != nil {
		return nil, err
	}
	battle, err := e.store.GetActiveBattle(ctx, playerID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("player %d is not in battle: %w", playerID, ErrInvalidState)
		}
		return nil, fmt.Errorf("failed to load active battle: %w", err)
	}

	enemy, ok := e.catalog.Enemy(battle.EnemyID)
	if !ok {
		// Content changed under a live battle. Abandon it.
		if err := e.store.DeleteBattle(ctx, playerID); err != nil {
			return nil, fmt.Errorf("failed to abandon stale battle: %w", err)
		}
		return nil, fmt.Errorf("enemy %q: %w", battle.EnemyID, ErrNotFound)
	}

	turn := combat.ResolveTurn(p.Attack, p.Defense, battle.PlayerHealth, enemy, battle.EnemyHealth, e.src)
	result := &TurnResult{Enemy: enemy, Turn: turn, Level: p.Level}

	err = e.store.WithTx(ctx, func(tx Store) error {
		p.LastActivity = e.clock.Now()
		switch turn.Outcome {
		case combat.OutcomeVictory:
			return e.commitVictory(ctx, tx, p, enemy, result)
		case combat.OutcomeDefeat:
			p.Health = 0
			if err := tx.UpdatePlayer(ctx, p); err != nil {
				return fmt.Errorf("failed to save defeated player: %w", err)
			}
			if err := tx.DeleteBattle(ctx, p.ID); err != nil {
				return fmt.Errorf("failed to delete battle: %w", err)
			}
			return nil
		default:
			battle.EnemyHealth = turn.EnemyHealth
			battle.PlayerHealth = turn.PlayerHealth
			if err := tx.UpdateBattle(ctx, battle); err != nil {
				return fmt.Errorf("failed to save battle: %w", err)
			}
			p.Health = turn.PlayerHealth
			if err := tx.UpdatePlayer(ctx, p); err != nil {
				return fmt.Errorf("failed to save player: %w", err)
			}
			return nil
		}
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("combat turn resolved",
		zap.String("op_id", opID.String()),
		zap.Int64("player_id", playerID),
		zap.String("enemy_id", enemy.ID),
		zap.String("outcome", string(turn.Outcome)))
	return result, nil
}

// commitVictory applies all victory rewards inside the caller's transaction.
func (e *Engine) commitVictory(ctx context.Context, tx Store, p *Player, enemy catalog.Enemy, result *TurnResult) error {
	result.ExpGained = enemy.ExperienceReward
	result.GoldGained = enemy.GoldReward
	result.SkillExpGained = enemy.ExperienceReward / 2
	result.Loot = combat.RollDrops(enemy.Drops, e.src)

	p.Gold += enemy.GoldReward
	result.LeveledUp = applyExperience(p, enemy.ExperienceReward)
	result.Level = p.Level
	if err := tx.UpdatePlayer(ctx, p); err != nil {
		return fmt.Errorf("failed to save victory rewards: %w", err)
	}

	if _, _, err := e.addSkillExperience(ctx, tx, p.ID, catalog.SkillCombat, result.SkillExpGained); err != nil {
		return err
	}
	for _, loot := range result.Loot {
		if err := addItem(ctx, tx, p.ID, loot.ItemID, loot.Quantity); err != nil {
			return err
		}
	}
	if err := tx.DeleteBattle(ctx, p.ID); err != nil {
		return fmt.Errorf("failed to delete battle: %w", err)
	}
	return nil
}

// FleeResult reports an abandoned battle.
type FleeResult struct {
	Enemy catalog.Enemy
}

// Flee abandons the player's active battle. Health damage taken during the
// battle is kept; no rewards are granted.
//
// Postcondition: Returns ErrInvalidState when no battle is active.
func (e *Engine) Flee(ctx context.Context, playerID int64) (*FleeResult, error) {
	release := e.locks.acquire(playerID)
	defer release()

	p, err := e.loadPlayer(ctx, e.store, playerID)
	if err != nil {
		return nil, err
	}
	battle, err := e.store.GetActiveBattle(ctx, playerID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("player %d is not in battle: %w", playerID, ErrInvalidState)
		}
		return nil, fmt.Errorf("failed to load active battle: %w", err)
	}
	enemy, _ := e.catalog.Enemy(battle.EnemyID)

	err = e.store.WithTx(ctx, func(tx Store) error {
		p.Health = battle.PlayerHealth
		p.LastActivity = e.clock.Now()
		if err := tx.UpdatePlayer(ctx, p); err != nil {
			return fmt.Errorf("failed to save player: %w", err)
		}
		if err := tx.DeleteBattle(ctx, playerID); err != nil {
			return fmt.Errorf("failed to delete battle: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("player fled",
		zap.Int64("player_id", playerID),
		zap.String("enemy_id", battle.EnemyID))
	return &FleeResult{Enemy: enemy}, nil
}
