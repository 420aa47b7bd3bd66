package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cory-johannsen/idlerpg/internal/game/engine"
)

const playerColumns = `id, account_id, name, race, level, experience, gold,
	health, max_health, attack, strength, defense, range_stat, magic, prayer,
	stamina, luck, last_activity, last_idle_reward, created_at`

func scanPlayer(row pgx.Row) (*engine.Player, error) {
	var p engine.Player
	err := row.Scan(
		&p.ID, &p.AccountID, &p.Name, &p.Race, &p.Level, &p.Experience, &p.Gold,
		&p.Health, &p.MaxHealth, &p.Attack, &p.Strength, &p.Defense, &p.Range,
		&p.Magic, &p.Prayer, &p.Stamina, &p.Luck,
		&p.LastActivity, &p.LastIdleReward, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPlayer retrieves a player by its primary key.
//
// Precondition: id must be > 0.
// Postcondition: Returns the player or engine.ErrNotFound.
func (s *Store) GetPlayer(ctx context.Context, id int64) (*engine.Player, error) {
	p, err := scanPlayer(s.db.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(fmt.Sprintf("player %d", id))
		}
		return nil, transient("querying player", err)
	}
	return p, nil
}

// GetPlayerByAccount retrieves the character belonging to an account.
//
// Precondition: accountID must be > 0.
// Postcondition: Returns the player or engine.ErrNotFound.
func (s *Store) GetPlayerByAccount(ctx context.Context, accountID int64) (*engine.Player, error) {
	p, err := scanPlayer(s.db.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE account_id = $1`, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(fmt.Sprintf("player for account %d", accountID))
		}
		return nil, transient("querying player by account", err)
	}
	return p, nil
}

// CreatePlayer inserts a new player and returns it with ID set.
//
// Precondition: p.AccountID must reference an existing account with no player.
func (s *Store) CreatePlayer(ctx context.Context, p *engine.Player) (*engine.Player, error) {
	created, err := scanPlayer(s.db.QueryRow(ctx, `
		INSERT INTO players
			(account_id, name, race, level, experience, gold,
			 health, max_health, attack, strength, defense, range_stat, magic,
			 prayer, stamina, luck, last_activity, last_idle_reward, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		RETURNING `+playerColumns,
		p.AccountID, p.Name, p.Race, p.Level, p.Experience, p.Gold,
		p.Health, p.MaxHealth, p.Attack, p.Strength, p.Defense, p.Range,
		p.Magic, p.Prayer, p.Stamina, p.Luck,
		p.LastActivity, p.LastIdleReward, p.CreatedAt,
	))
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, fmt.Errorf("account %d already has a player: %w", p.AccountID, engine.ErrInvalidState)
		}
		return nil, transient("inserting player", err)
	}
	return created, nil
}

// UpdatePlayer persists every mutable field of the player.
//
// Precondition: p.ID must be > 0.
// Postcondition: Returns engine.ErrNotFound if no row was updated.
func (s *Store) UpdatePlayer(ctx context.Context, p *engine.Player) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE players SET
			level = $2, experience = $3, gold = $4,
			health = $5, max_health = $6,
			attack = $7, strength = $8, defense = $9, range_stat = $10,
			magic = $11, prayer = $12, stamina = $13, luck = $14,
			last_activity = $15, last_idle_reward = $16
		WHERE id = $1`,
		p.ID, p.Level, p.Experience, p.Gold,
		p.Health, p.MaxHealth,
		p.Attack, p.Strength, p.Defense, p.Range,
		p.Magic, p.Prayer, p.Stamina, p.Luck,
		p.LastActivity, p.LastIdleReward,
	)
	if err != nil {
		return transient("updating player", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(fmt.Sprintf("player %d", p.ID))
	}
	return nil
}
