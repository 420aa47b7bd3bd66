package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/idlerpg/internal/game/engine"
	"github.com/cory-johannsen/idlerpg/internal/storage/postgres"
	"github.com/cory-johannsen/idlerpg/internal/testutil"
)

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

// setupStore starts a migrated database and returns a Store plus the ID of a
// fresh account to hang players off.
func setupStore(t *testing.T) (*postgres.Store, int64) {
	t.Helper()
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)

	acctRepo := postgres.NewAccountRepository(pc.RawPool)
	acct, err := acctRepo.Create(context.Background(), uniqueName("user"), "password123")
	require.NoError(t, err)

	return postgres.NewStore(pc.Pool), acct.ID
}

func testPlayer(accountID int64) *engine.Player {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &engine.Player{
		AccountID: accountID,
		Name:      "Grimbeard",
		Race:      "dwarf",
		Level:     1, Experience: 0, Gold: 100,
		Health: 100, MaxHealth: 100,
		Attack: 1, Strength: 1, Defense: 1, Range: 1,
		Magic: 1, Prayer: 1, Stamina: 1, Luck: 1,
		LastActivity:   now,
		LastIdleReward: now,
		CreatedAt:      now,
	}
}

func TestStore_PlayerLifecycle(t *testing.T) {
	store, accountID := setupStore(t)
	ctx := context.Background()

	created, err := store.CreatePlayer(ctx, testPlayer(accountID))
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	got, err := store.GetPlayer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grimbeard", got.Name)
	assert.Equal(t, 100, got.Gold)

	byAccount, err := store.GetPlayerByAccount(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byAccount.ID)

	got.Gold = 250
	got.Level = 2
	got.Health = 55
	require.NoError(t, store.UpdatePlayer(ctx, got))

	updated, err := store.GetPlayer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 250, updated.Gold)
	assert.Equal(t, 2, updated.Level)
	assert.Equal(t, 55, updated.Health)
}

func TestStore_GetPlayer_NotFound(t *testing.T) {
	store, _ := setupStore(t)

	_, err := store.GetPlayer(context.Background(), 99999)
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestStore_CreatePlayer_OnePerAccount(t *testing.T) {
	store, accountID := setupStore(t)
	ctx := context.Background()

	_, err := store.CreatePlayer(ctx, testPlayer(accountID))
	require.NoError(t, err)
	_, err = store.CreatePlayer(ctx, testPlayer(accountID))
	assert.ErrorIs(t, err, engine.ErrInvalidState)
}

func TestStore_SkillUpsertAndList(t *testing.T) {
	store, accountID := setupStore(t)
	ctx := context.Background()
	p, err := store.CreatePlayer(ctx, testPlayer(accountID))
	require.NoError(t, err)

	require.NoError(t, store.UpsertSkill(ctx, engine.Skill{PlayerID: p.ID, Name: "mining", Level: 1, Experience: 0}))
	require.NoError(t, store.UpsertSkill(ctx, engine.Skill{PlayerID: p.ID, Name: "combat", Level: 1, Experience: 0}))

	// Upsert over an existing row updates in place.
	require.NoError(t, store.UpsertSkill(ctx, engine.Skill{PlayerID: p.ID, Name: "mining", Level: 3, Experience: 400}))

	sk, err := store.GetSkill(ctx, p.ID, "mining")
	require.NoError(t, err)
	assert.Equal(t, 3, sk.Level)
	assert.Equal(t, 400, sk.Experience)

	skills, err := store.GetSkills(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, skills, 2)
	assert.Equal(t, "combat", skills[0].Name, "skills are ordered by name")

	_, err = store.GetSkill(ctx, p.ID, "alchemy")
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestStore_InventoryLifecycle(t *testing.T) {
	store, accountID := setupStore(t)
	ctx := context.Background()
	p, err := store.CreatePlayer(ctx, testPlayer(accountID))
	require.NoError(t, err)

	require.NoError(t, store.UpsertInventoryItem(ctx, engine.InventoryEntry{PlayerID: p.ID, ItemID: "herb", Quantity: 3}))
	require.NoError(t, store.UpsertInventoryItem(ctx, engine.InventoryEntry{PlayerID: p.ID, ItemID: "wood", Quantity: 1}))
	require.NoError(t, store.UpsertInventoryItem(ctx, engine.InventoryEntry{PlayerID: p.ID, ItemID: "herb", Quantity: 5}))

	entry, err := store.GetInventoryItem(ctx, p.ID, "herb")
	require.NoError(t, err)
	assert.Equal(t, 5, entry.Quantity)

	inv, err := store.GetInventory(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, inv, 2)
	assert.Equal(t, "herb", inv[0].ItemID, "inventory is ordered by item id")

	require.NoError(t, store.DeleteInventoryItem(ctx, p.ID, "herb"))
	_, err = store.GetInventoryItem(ctx, p.ID, "herb")
	assert.ErrorIs(t, err, engine.ErrNotFound)

	// Deleting an absent row is a no-op.
	require.NoError(t, store.DeleteInventoryItem(ctx, p.ID, "herb"))
}

func TestStore_BattleLifecycle(t *testing.T) {
	store, accountID := setupStore(t)
	ctx := context.Background()
	p, err := store.CreatePlayer(ctx, testPlayer(accountID))
	require.NoError(t, err)

	b := &engine.Battle{
		PlayerID: p.ID, EnemyID: "slime",
		EnemyHealth: 30, PlayerHealth: 100,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.CreateBattle(ctx, b))

	// The primary key enforces one battle per player.
	err = store.CreateBattle(ctx, b)
	assert.ErrorIs(t, err, engine.ErrInvalidState)

	b.EnemyHealth = 12
	b.PlayerHealth = 88
	require.NoError(t, store.UpdateBattle(ctx, b))

	got, err := store.GetActiveBattle(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "slime", got.EnemyID)
	assert.Equal(t, 12, got.EnemyHealth)
	assert.Equal(t, 88, got.PlayerHealth)

	require.NoError(t, store.DeleteBattle(ctx, p.ID))
	_, err = store.GetActiveBattle(ctx, p.ID)
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestStore_WithTx_CommitsOnSuccess(t *testing.T) {
	store, accountID := setupStore(t)
	ctx := context.Background()
	p, err := store.CreatePlayer(ctx, testPlayer(accountID))
	require.NoError(t, err)

	err = store.WithTx(ctx, func(tx engine.Store) error {
		p.Gold = 500
		if err := tx.UpdatePlayer(ctx, p); err != nil {
			return err
		}
		return tx.UpsertInventoryItem(ctx, engine.InventoryEntry{PlayerID: p.ID, ItemID: "herb", Quantity: 1})
	})
	require.NoError(t, err)

	got, err := store.GetPlayer(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 500, got.Gold)

	entry, err := store.GetInventoryItem(ctx, p.ID, "herb")
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Quantity)
}

func TestStore_WithTx_RollsBackOnError(t *testing.T) {
	store, accountID := setupStore(t)
	ctx := context.Background()
	p, err := store.CreatePlayer(ctx, testPlayer(accountID))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.WithTx(ctx, func(tx engine.Store) error {
		p.Gold = 500
		if err := tx.UpdatePlayer(ctx, p); err != nil {
			return err
		}
		if err := tx.UpsertInventoryItem(ctx, engine.InventoryEntry{PlayerID: p.ID, ItemID: "herb", Quantity: 1}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.GetPlayer(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Gold, "the gold update must have rolled back")

	_, err = store.GetInventoryItem(ctx, p.ID, "herb")
	assert.ErrorIs(t, err, engine.ErrNotFound, "the inventory insert must have rolled back")
}

func TestStore_WithTx_NestedReusesTransaction(t *testing.T) {
	store, accountID := setupStore(t)
	ctx := context.Background()
	p, err := store.CreatePlayer(ctx, testPlayer(accountID))
	require.NoError(t, err)

	err = store.WithTx(ctx, func(tx engine.Store) error {
		return tx.WithTx(ctx, func(inner engine.Store) error {
			p.Gold = 321
			return inner.UpdatePlayer(ctx, p)
		})
	})
	require.NoError(t, err)

	got, err := store.GetPlayer(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 321, got.Gold)
}
