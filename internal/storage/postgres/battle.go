package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cory-johannsen/idlerpg/internal/game/engine"
)

// GetActiveBattle retrieves the player's live battle.
//
// Postcondition: Returns the battle or engine.ErrNotFound.
func (s *Store) GetActiveBattle(ctx context.Context, playerID int64) (*engine.Battle, error) {
	var b engine.Battle
	err := s.db.QueryRow(ctx, `
		SELECT player_id, enemy_id, enemy_health, player_health, created_at
		FROM active_battles WHERE player_id = $1`,
		playerID,
	).Scan(&b.PlayerID, &b.EnemyID, &b.EnemyHealth, &b.PlayerHealth, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(fmt.Sprintf("battle for player %d", playerID))
		}
		return nil, transient("querying battle", err)
	}
	return &b, nil
}

// CreateBattle inserts the player's battle row. The primary key on player_id
// enforces the one-battle-per-player invariant.
//
// Postcondition: Returns engine.ErrInvalidState if a battle already exists.
func (s *Store) CreateBattle(ctx context.Context, b *engine.Battle) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO active_battles (player_id, enemy_id, enemy_health, player_health, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		b.PlayerID, b.EnemyID, b.EnemyHealth, b.PlayerHealth, b.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("player %d already has a battle: %w", b.PlayerID, engine.ErrInvalidState)
		}
		return transient("inserting battle", err)
	}
	return nil
}

// UpdateBattle persists the battle's health values.
//
// Postcondition: Returns engine.ErrNotFound if no row was updated.
func (s *Store) UpdateBattle(ctx context.Context, b *engine.Battle) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE active_battles SET enemy_health = $2, player_health = $3
		WHERE player_id = $1`,
		b.PlayerID, b.EnemyHealth, b.PlayerHealth,
	)
	if err != nil {
		return transient("updating battle", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(fmt.Sprintf("battle for player %d", b.PlayerID))
	}
	return nil
}

// DeleteBattle removes the player's battle row. Deleting an absent row is not
// an error.
func (s *Store) DeleteBattle(ctx context.Context, playerID int64) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM active_battles WHERE player_id = $1`, playerID)
	if err != nil {
		return transient("deleting battle", err)
	}
	return nil
}
