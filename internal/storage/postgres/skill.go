package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cory-johannsen/idlerpg/internal/game/engine"
)

// GetSkills returns all skill rows for the player, ordered by name.
//
// Precondition: playerID must be > 0.
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (s *Store) GetSkills(ctx context.Context, playerID int64) ([]engine.Skill, error) {
	rows, err := s.db.Query(ctx, `
		SELECT player_id, name, level, experience
		FROM skills WHERE player_id = $1 ORDER BY name ASC`,
		playerID,
	)
	if err != nil {
		return nil, transient("listing skills", err)
	}
	defer rows.Close()

	var skills []engine.Skill
	for rows.Next() {
		var sk engine.Skill
		if err := rows.Scan(&sk.PlayerID, &sk.Name, &sk.Level, &sk.Experience); err != nil {
			return nil, transient("scanning skill row", err)
		}
		skills = append(skills, sk)
	}
	if err := rows.Err(); err != nil {
		return nil, transient("reading skill rows", err)
	}
	return skills, nil
}

// GetSkill retrieves one skill row by name.
//
// Postcondition: Returns the skill or engine.ErrNotFound.
func (s *Store) GetSkill(ctx context.Context, playerID int64, name string) (*engine.Skill, error) {
	var sk engine.Skill
	err := s.db.QueryRow(ctx, `
		SELECT player_id, name, level, experience
		FROM skills WHERE player_id = $1 AND name = $2`,
		playerID, name,
	).Scan(&sk.PlayerID, &sk.Name, &sk.Level, &sk.Experience)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(fmt.Sprintf("skill %q for player %d", name, playerID))
		}
		return nil, transient("querying skill", err)
	}
	return &sk, nil
}

// UpsertSkill inserts or updates a skill row.
//
// Precondition: sk.PlayerID must reference an existing player.
func (s *Store) UpsertSkill(ctx context.Context, sk engine.Skill) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO skills (player_id, name, level, experience)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (player_id, name)
		DO UPDATE SET level = EXCLUDED.level, experience = EXCLUDED.experience`,
		sk.PlayerID, sk.Name, sk.Level, sk.Experience,
	)
	if err != nil {
		return transient("upserting skill", err)
	}
	return nil
}
