package engine

import (
	"context"

	"github.com/cory-johannsen/idlerpg/internal/game/catalog"
)

// Store is the persistence gateway the engine orchestrates against. All
// lookups return ErrNotFound (wrapped) when the row does not exist, and
// ErrTransient (wrapped) when the backing store fails.
type Store interface {
	GetPlayer(ctx context.Context, id int64) (*Player, error)
	GetPlayerByAccount(ctx context.Context, accountID int64) (*Player, error)
	// CreatePlayer persists a new player and returns it with ID assigned.
	CreatePlayer(ctx context.Context, p *Player) (*Player, error)
	UpdatePlayer(ctx context.Context, p *Player) error

	GetSkills(ctx context.Context, playerID int64) ([]Skill, error)
	GetSkill(ctx context.Context, playerID int64, name string) (*Skill, error)
	UpsertSkill(ctx context.Context, s Skill) error

	GetInventory(ctx context.Context, playerID int64) ([]InventoryEntry, error)
	GetInventoryItem(ctx context.Context, playerID int64, itemID string) (*InventoryEntry, error)
	UpsertInventoryItem(ctx context.Context, e InventoryEntry) error
	DeleteInventoryItem(ctx context.Context, playerID int64, itemID string) error

	GetActiveBattle(ctx context.Context, playerID int64) (*Battle, error)
	CreateBattle(ctx context.Context, b *Battle) error
	UpdateBattle(ctx context.Context, b *Battle) error
	// DeleteBattle is a no-op when no battle exists.
	DeleteBattle(ctx context.Context, playerID int64) error

	// WithTx runs fn against a transactional view of the store. If fn returns
	// an error the transaction rolls back and the error is returned unchanged.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

// Catalog is the read-only static content the engine resolves IDs against.
// *catalog.Registry satisfies it.
type Catalog interface {
	Item(id string) (catalog.Item, bool)
	Enemy(id string) (catalog.Enemy, bool)
	Recipe(id string) (catalog.Recipe, bool)
	Node(id string) (catalog.GatheringNode, bool)
	ListItems() []catalog.Item
	ListEnemies() []catalog.Enemy
	ListRecipes() []catalog.Recipe
	ListNodes() []catalog.GatheringNode
}
