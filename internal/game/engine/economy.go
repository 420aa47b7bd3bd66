package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/idlerpg/internal/game/catalog"
	"github.com/cory-johannsen/idlerpg/internal/game/rng"
)

// RestCost is the flat gold price of a full heal.
const RestCost = 10

// GatherResult reports one gathering attempt.
type GatherResult struct {
	Node     catalog.GatheringNode
	Gathered []ItemGrant

	SkillName      string
	SkillExpGained int
	Skill          Skill
	SkillLeveledUp bool
}

// ItemGrant is one item stack credited to the player.
type ItemGrant struct {
	ItemID   string
	Quantity int
}

// Gather collects from a gathering node, rolling each drop's quantity range
// and granting the node's skill experience once, all atomically.
//
// Postcondition: Returns ErrInsufficientResource when the required skill
// level is not met; on success every drop was credited.
func (e *Engine) Gather(ctx context.Context, playerID int64, nodeID string) (*GatherResult, error) {
	release := e.locks.acquire(playerID)
	defer release()

	node, ok := e.catalog.Node(nodeID)
	if !ok {
		return nil, fmt.Errorf("gathering node %q: %w", nodeID, ErrNotFound)
	}

	p, err := e.loadPlayer(ctx, e.store, playerID)
	if err != nil {
		return nil, err
	}
	sk, err := e.store.GetSkill(ctx, playerID, node.RequiredSkill)
	if err != nil {
		return nil, fmt.Errorf("failed to load skill %q: %w", node.RequiredSkill, err)
	}
	if sk.Level < node.RequiredLevel {
		return nil, fmt.Errorf("%s requires %s level %d, have %d: %w",
			node.Name, node.RequiredSkill, node.RequiredLevel, sk.Level, ErrInsufficientResource)
	}

	result := &GatherResult{
		Node:           node,
		SkillName:      node.RequiredSkill,
		SkillExpGained: node.ExperienceReward,
	}
	for _, d := range node.Drops {
		result.Gathered = append(result.Gathered, ItemGrant{
			ItemID:   d.ItemID,
			Quantity: rng.IntBetween(e.src, d.Min, d.Max),
		})
	}

	err = e.store.WithTx(ctx, func(tx Store) error {
		for _, g := range result.Gathered {
			if err := addItem(ctx, tx, playerID, g.ItemID, g.Quantity); err != nil {
				return err
			}
		}
		updated, leveledUp, err := e.addSkillExperience(ctx, tx, playerID, node.RequiredSkill, node.ExperienceReward)
		if err != nil {
			return err
		}
		result.Skill = updated
		result.SkillLeveledUp = leveledUp

		p.LastActivity = e.clock.Now()
		if err := tx.UpdatePlayer(ctx, p); err != nil {
			return fmt.Errorf("failed to save player: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("node gathered",
		zap.Int64("player_id", playerID),
		zap.String("node_id", nodeID),
		zap.String("skill", node.RequiredSkill))
	return result, nil
}

// CraftResult reports one successful craft.
type CraftResult struct {
	Recipe   catalog.Recipe
	Crafted  ItemGrant
	Consumed []catalog.Ingredient

	SkillExpGained int
	Skill          Skill
	SkillLeveledUp bool
}

// Craft executes a recipe: every ingredient is verified before any is
// consumed, then all ingredients are consumed, the result granted, and skill
// experience credited in one transaction.
//
// Postcondition: On ErrInsufficientResource (gate unmet or an ingredient
// short, naming the first missing one) the inventory is unchanged.
func (e *Engine) Craft(ctx context.Context, playerID int64, recipeID string) (*CraftResult, error) {
	release := e.locks.acquire(playerID)
	defer release()

	opID := uuid.New()
	recipe, ok := e.catalog.Recipe(recipeID)
	if !ok {
		return nil, fmt.Errorf("recipe %q: %w", recipeID, ErrNotFound)
	}

	p, err := e.loadPlayer(ctx, e.store, playerID)
	if err != nil {
		return nil, err
	}
	if recipe.RequiredSkill != "" {
		sk, err := e.store.GetSkill(ctx, playerID, recipe.RequiredSkill)
		if err != nil {
			return nil, fmt.Errorf("failed to load skill %q: %w", recipe.RequiredSkill, err)
		}
		if sk.Level < recipe.RequiredLevel {
			return nil, fmt.Errorf("%s requires %s level %d, have %d: %w",
				recipe.Name, recipe.RequiredSkill, recipe.RequiredLevel, sk.Level, ErrInsufficientResource)
		}
	}

	result := &CraftResult{
		Recipe:   recipe,
		Crafted:  ItemGrant{ItemID: recipe.ResultItemID, Quantity: recipe.ResultQuantity},
		Consumed: recipe.Ingredients,
	}
	err = e.store.WithTx(ctx, func(tx Store) error {
		// Verify the full ingredient list before consuming anything so a
		// shortfall reports cleanly with nothing spent.
		for _, ing := range recipe.Ingredients {
			entry, err := tx.GetInventoryItem(ctx, playerID, ing.ItemID)
			if err != nil {
				if isNotFound(err) {
					return fmt.Errorf("missing ingredient %q: %w", ing.ItemID, ErrInsufficientResource)
				}
				return fmt.Errorf("failed to load ingredient %q: %w", ing.ItemID, err)
			}
			if entry.Quantity < ing.Quantity {
				return fmt.Errorf("missing ingredient %q: have %d, need %d: %w",
					ing.ItemID, entry.Quantity, ing.Quantity, ErrInsufficientResource)
			}
		}
		for _, ing := range recipe.Ingredients {
			if err := removeItem(ctx, tx, playerID, ing.ItemID, ing.Quantity); err != nil {
				return err
			}
		}
		if err := addItem(ctx, tx, playerID, recipe.ResultItemID, recipe.ResultQuantity); err != nil {
			return err
		}

		if recipe.RequiredSkill != "" && recipe.ExperienceReward > 0 {
			updated, leveledUp, err := e.addSkillExperience(ctx, tx, playerID, recipe.RequiredSkill, recipe.ExperienceReward)
			if err != nil {
				return err
			}
			result.Skill = updated
			result.SkillLeveledUp = leveledUp
			result.SkillExpGained = recipe.ExperienceReward
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

	e.logger.Debug("recipe crafted",
		zap.String("op_id", opID.String()),
		zap.Int64("player_id", playerID),
		zap.String("recipe_id", recipeID))
	return result, nil
}

// RestResult reports a completed rest.
type RestResult struct {
	GoldSpent int
	Health    int
	Gold      int // remaining gold
}

// Rest restores the player to full health for a flat gold cost.
//
// Postcondition: Returns ErrInvalidState at full health and
// ErrInsufficientResource when gold < RestCost; otherwise health == maxHealth.
func (e *Engine) Rest(ctx context.Context, playerID int64) (*RestResult, error) {
	release := e.locks.acquire(playerID)
	defer release()

	p, err := e.loadPlayer(ctx, e.store, playerID)
	if err != nil {
		return nil, err
	}
	if p.Health >= p.MaxHealth {
		return nil, fmt.Errorf("player %d is already at full health: %w", playerID, ErrInvalidState)
	}
	if p.Gold < RestCost {
		return nil, fmt.Errorf("rest costs %d gold, have %d: %w", RestCost, p.Gold, ErrInsufficientResource)
	}

	err = e.store.WithTx(ctx, func(tx Store) error {
		p.Gold -= RestCost
		p.Health = p.MaxHealth
		p.LastActivity = e.clock.Now()
		if err := tx.UpdatePlayer(ctx, p); err != nil {
			return fmt.Errorf("failed to save player: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("player rested", zap.Int64("player_id", playerID), zap.Int("gold", p.Gold))
	return &RestResult{GoldSpent: RestCost, Health: p.Health, Gold: p.Gold}, nil
}

// UseItemResult reports a consumed item.
type UseItemResult struct {
	Item   catalog.Item
	Healed int // effective healing after the max-health clamp
	Health int // player health after use
}

// UseItem consumes one unit of a held consumable and applies its heal stat,
// clamped to max health.
//
// Postcondition: Returns ErrInvalidState for non-consumable items and
// ErrNotFound when the item is not held; on success exactly one unit was
// consumed.
func (e *Engine) UseItem(ctx context.Context, playerID int64, itemID string) (*UseItemResult, error) {
	release := e.locks.acquire(playerID)
	defer release()

	item, ok := e.catalog.Item(itemID)
	if !ok {
		return nil, fmt.Errorf("item %q: %w", itemID, ErrNotFound)
	}
	if item.Type != catalog.TypeConsumable {
		return nil, fmt.Errorf("item %q is not consumable: %w", itemID, ErrInvalidState)
	}

	p, err := e.loadPlayer(ctx, e.store, playerID)
	if err != nil {
		return nil, err
	}
	if _, err := e.store.GetInventoryItem(ctx, playerID, itemID); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("item %q is not in inventory: %w", itemID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load inventory item %q: %w", itemID, err)
	}

	healed := item.Stats.Heal
	if p.Health+healed > p.MaxHealth {
		healed = p.MaxHealth - p.Health
	}

	err = e.store.WithTx(ctx, func(tx Store) error {
		if err := removeItem(ctx, tx, playerID, itemID, 1); err != nil {
			return err
		}
		p.Health += healed
		p.LastActivity = e.clock.Now()
		if err := tx.UpdatePlayer(ctx, p); err != nil {
			return fmt.Errorf("failed to save player: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("item used",
		zap.Int64("player_id", playerID),
		zap.String("item_id", itemID),
		zap.Int("healed", healed))
	return &UseItemResult{Item: item, Healed: healed, Health: p.Health}, nil
}
