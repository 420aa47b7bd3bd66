package engine_test

import (
	"context"
	"fmt"
	"sort"

	"github.com/cory-johannsen/idlerpg/internal/game/engine"
)

// memStore is an in-memory engine.Store. WithTx snapshots the full state and
// restores it when the transaction function fails, which lets the tests
// verify that composite operations commit atomically.
type memStore struct {
	players   map[int64]engine.Player
	skills    map[int64]map[string]engine.Skill
	inventory map[int64]map[string]int
	battles   map[int64]engine.Battle
	nextID    int64

	// Fault injection: when set, the named method returns the error once.
	failUpsertSkill     error
	failUpsertInventory error
	failUpdatePlayer    error
}

func newMemStore() *memStore {
	return &memStore{
		players:   make(map[int64]engine.Player),
		skills:    make(map[int64]map[string]engine.Skill),
		inventory: make(map[int64]map[string]int),
		battles:   make(map[int64]engine.Battle),
	}
}

func (m *memStore) GetPlayer(_ context.Context, id int64) (*engine.Player, error) {
	p, ok := m.players[id]
	if !ok {
		return nil, fmt.Errorf("player %d: %w", id, engine.ErrNotFound)
	}
	return &p, nil
}

func (m *memStore) GetPlayerByAccount(_ context.Context, accountID int64) (*engine.Player, error) {
	for _, p := range m.players {
		if p.AccountID == accountID {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("account %d: %w", accountID, engine.ErrNotFound)
}

func (m *memStore) CreatePlayer(_ context.Context, p *engine.Player) (*engine.Player, error) {
	m.nextID++
	created := *p
	created.ID = m.nextID
	m.players[created.ID] = created
	return &created, nil
}

func (m *memStore) UpdatePlayer(_ context.Context, p *engine.Player) error {
	if err := m.failUpdatePlayer; err != nil {
		m.failUpdatePlayer = nil
		return err
	}
	if _, ok := m.players[p.ID]; !ok {
		return fmt.Errorf("player %d: %w", p.ID, engine.ErrNotFound)
	}
	m.players[p.ID] = *p
	return nil
}

func (m *memStore) GetSkills(_ context.Context, playerID int64) ([]engine.Skill, error) {
	var out []engine.Skill
	for _, sk := range m.skills[playerID] {
		out = append(out, sk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) GetSkill(_ context.Context, playerID int64, name string) (*engine.Skill, error) {
	sk, ok := m.skills[playerID][name]
	if !ok {
		return nil, fmt.Errorf("skill %q: %w", name, engine.ErrNotFound)
	}
	return &sk, nil
}

func (m *memStore) UpsertSkill(_ context.Context, s engine.Skill) error {
	if err := m.failUpsertSkill; err != nil {
		m.failUpsertSkill = nil
		return err
	}
	if m.skills[s.PlayerID] == nil {
		m.skills[s.PlayerID] = make(map[string]engine.Skill)
	}
	m.skills[s.PlayerID][s.Name] = s
	return nil
}

func (m *memStore) GetInventory(_ context.Context, playerID int64) ([]engine.InventoryEntry, error) {
	var out []engine.InventoryEntry
	for itemID, qty := range m.inventory[playerID] {
		out = append(out, engine.InventoryEntry{PlayerID: playerID, ItemID: itemID, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

func (m *memStore) GetInventoryItem(_ context.Context, playerID int64, itemID string) (*engine.InventoryEntry, error) {
	qty, ok := m.inventory[playerID][itemID]
	if !ok {
		return nil, fmt.Errorf("item %q: %w", itemID, engine.ErrNotFound)
	}
	return &engine.InventoryEntry{PlayerID: playerID, ItemID: itemID, Quantity: qty}, nil
}

func (m *memStore) UpsertInventoryItem(_ context.Context, e engine.InventoryEntry) error {
	if err := m.failUpsertInventory; err != nil {
		m.failUpsertInventory = nil
		return err
	}
	if m.inventory[e.PlayerID] == nil {
		m.inventory[e.PlayerID] = make(map[string]int)
	}
	m.inventory[e.PlayerID][e.ItemID] = e.Quantity
	return nil
}

func (m *memStore) DeleteInventoryItem(_ context.Context, playerID int64, itemID string) error {
	delete(m.inventory[playerID], itemID)
	return nil
}

func (m *memStore) GetActiveBattle(_ context.Context, playerID int64) (*engine.Battle, error) {
	b, ok := m.battles[playerID]
	if !ok {
		return nil, fmt.Errorf("battle for player %d: %w", playerID, engine.ErrNotFound)
	}
	return &b, nil
}

func (m *memStore) CreateBattle(_ context.Context, b *engine.Battle) error {
	if _, ok := m.battles[b.PlayerID]; ok {
		return fmt.Errorf("player %d already has a battle: %w", b.PlayerID, engine.ErrInvalidState)
	}
	m.battles[b.PlayerID] = *b
	return nil
}

func (m *memStore) UpdateBattle(_ context.Context, b *engine.Battle) error {
	if _, ok := m.battles[b.PlayerID]; !ok {
		return fmt.Errorf("battle for player %d: %w", b.PlayerID, engine.ErrNotFound)
	}
	m.battles[b.PlayerID] = *b
	return nil
}

func (m *memStore) DeleteBattle(_ context.Context, playerID int64) error {
	delete(m.battles, playerID)
	return nil
}

func (m *memStore) WithTx(_ context.Context, fn func(tx engine.Store) error) error {
	snapshot := m.clone()
	if err := fn(m); err != nil {
		m.players = snapshot.players
		m.skills = snapshot.skills
		m.inventory = snapshot.inventory
		m.battles = snapshot.battles
		m.nextID = snapshot.nextID
		return err
	}
	return nil
}

func (m *memStore) clone() *memStore {
	c := newMemStore()
	c.nextID = m.nextID
	for id, p := range m.players {
		c.players[id] = p
	}
	for id, skills := range m.skills {
		c.skills[id] = make(map[string]engine.Skill, len(skills))
		for name, sk := range skills {
			c.skills[id][name] = sk
		}
	}
	for id, inv := range m.inventory {
		c.inventory[id] = make(map[string]int, len(inv))
		for item, qty := range inv {
			c.inventory[id][item] = qty
		}
	}
	for id, b := range m.battles {
		c.battles[id] = b
	}
	return c
}
