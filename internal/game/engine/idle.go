package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/idlerpg/internal/game/idle"
)

// IdleResult reports a settled idle accrual.
type IdleResult struct {
	Accrual   idle.Accrual
	LeveledUp bool
	Level     int // player level after settlement
}

// SettleIdle credits idle rewards accrued since the player's last settlement.
// A zero Accrual means less than one full hour had elapsed and nothing was
// changed.
//
// Postcondition: when Accrual.Hours > 0 the settlement timestamp has advanced
// to now, forfeiting any time beyond the cap.
func (e *Engine) SettleIdle(ctx context.Context, playerID int64) (IdleResult, error) {
	release := e.locks.acquire(playerID)
	defer release()
	return e.settleIdleLocked(ctx, playerID)
}

func (e *Engine) settleIdleLocked(ctx context.Context, playerID int64) (IdleResult, error) {
	p, err := e.loadPlayer(ctx, e.store, playerID)
	if err != nil {
		return IdleResult{}, err
	}

	now := e.clock.Now()
	accrual := idle.Settle(p.LastIdleReward, now, p.Level)
	if accrual.Hours == 0 {
		return IdleResult{Level: p.Level}, nil
	}

	var leveledUp bool
	err = e.store.WithTx(ctx, func(tx Store) error {
		p.Gold += accrual.Gold
		leveledUp = applyExperience(p, accrual.Exp)
		p.LastIdleReward = now
		if err := tx.UpdatePlayer(ctx, p); err != nil {
			return fmt.Errorf("failed to save idle settlement: %w", err)
		}
		return nil
	})
	if err != nil {
		return IdleResult{}, err
	}

	e.logger.Debug("idle rewards settled",
		zap.Int64("player_id", playerID),
		zap.Int("hours", accrual.Hours),
		zap.Int("gold", accrual.Gold),
		zap.Int("exp", accrual.Exp),
		zap.Bool("leveled_up", leveledUp))
	return IdleResult{Accrual: accrual, LeveledUp: leveledUp, Level: p.Level}, nil
}
