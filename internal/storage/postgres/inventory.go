package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cory-johannsen/idlerpg/internal/game/engine"
)

// GetInventory returns all inventory rows for the player, ordered by item ID.
//
// Precondition: playerID must be > 0.
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (s *Store) GetInventory(ctx context.Context, playerID int64) ([]engine.InventoryEntry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT player_id, item_id, quantity
		FROM inventory WHERE player_id = $1 ORDER BY item_id ASC`,
		playerID,
	)
	if err != nil {
		return nil, transient("listing inventory", err)
	}
	defer rows.Close()

	var entries []engine.InventoryEntry
	for rows.Next() {
		var e engine.InventoryEntry
		if err := rows.Scan(&e.PlayerID, &e.ItemID, &e.Quantity); err != nil {
			return nil, transient("scanning inventory row", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, transient("reading inventory rows", err)
	}
	return entries, nil
}

// GetInventoryItem retrieves one inventory row.
//
// Postcondition: Returns the entry or engine.ErrNotFound.
func (s *Store) GetInventoryItem(ctx context.Context, playerID int64, itemID string) (*engine.InventoryEntry, error) {
	var e engine.InventoryEntry
	err := s.db.QueryRow(ctx, `
		SELECT player_id, item_id, quantity
		FROM inventory WHERE player_id = $1 AND item_id = $2`,
		playerID, itemID,
	).Scan(&e.PlayerID, &e.ItemID, &e.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(fmt.Sprintf("inventory item %q for player %d", itemID, playerID))
		}
		return nil, transient("querying inventory item", err)
	}
	return &e, nil
}

// UpsertInventoryItem inserts or replaces an inventory row with the given
// quantity.
//
// Precondition: e.Quantity must be >= 1; rows never persist at zero.
func (s *Store) UpsertInventoryItem(ctx context.Context, e engine.InventoryEntry) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO inventory (player_id, item_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, item_id)
		DO UPDATE SET quantity = EXCLUDED.quantity`,
		e.PlayerID, e.ItemID, e.Quantity,
	)
	if err != nil {
		return transient("upserting inventory item", err)
	}
	return nil
}

// DeleteInventoryItem removes an inventory row. Deleting an absent row is not
// an error.
func (s *Store) DeleteInventoryItem(ctx context.Context, playerID int64, itemID string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM inventory WHERE player_id = $1 AND item_id = $2`,
		playerID, itemID,
	)
	if err != nil {
		return transient("deleting inventory item", err)
	}
	return nil
}
