package catalog

import "fmt"

// Validate checks an item definition's invariants.
//
// Postcondition: Returns nil iff the item is well-formed.
func (it Item) Validate() error {
	if it.ID == "" {
		return fmt.Errorf("item: id must not be empty")
	}
	if it.Name == "" {
		return fmt.Errorf("item %s: name must not be empty", it.ID)
	}
	switch it.Type {
	case TypeMaterial, TypeWeapon, TypeArmor, TypeConsumable:
	default:
		return fmt.Errorf("item %s: unknown type %q", it.ID, it.Type)
	}
	switch it.Rarity {
	case RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary:
	default:
		return fmt.Errorf("item %s: unknown rarity %q", it.ID, it.Rarity)
	}
	if it.Value < 0 {
		return fmt.Errorf("item %s: value must be >= 0, got %d", it.ID, it.Value)
	}
	return nil
}

// Validate checks an enemy definition's invariants.
//
// Postcondition: Returns nil iff all stat and drop constraints hold; an enemy
// with no drops is valid.
func (e Enemy) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("enemy: id must not be empty")
	}
	if e.Name == "" {
		return fmt.Errorf("enemy %s: name must not be empty", e.ID)
	}
	if e.Level < 1 {
		return fmt.Errorf("enemy %s: level must be >= 1, got %d", e.ID, e.Level)
	}
	if e.Health < 1 {
		return fmt.Errorf("enemy %s: health must be >= 1, got %d", e.ID, e.Health)
	}
	if e.ExperienceReward < 0 || e.GoldReward < 0 {
		return fmt.Errorf("enemy %s: rewards must be >= 0", e.ID)
	}
	for i, d := range e.Drops {
		if d.ItemID == "" {
			return fmt.Errorf("enemy %s: drop[%d] must have a non-empty item id", e.ID, i)
		}
		if d.Chance <= 0 || d.Chance > 1.0 {
			return fmt.Errorf("enemy %s: drop[%d] chance must be in (0, 1.0], got %f", e.ID, i, d.Chance)
		}
		if d.MinQty < 1 {
			return fmt.Errorf("enemy %s: drop[%d] min_qty must be >= 1, got %d", e.ID, i, d.MinQty)
		}
		if d.MinQty > d.MaxQty {
			return fmt.Errorf("enemy %s: drop[%d] min_qty (%d) must be <= max_qty (%d)", e.ID, i, d.MinQty, d.MaxQty)
		}
	}
	return nil
}

// Validate checks a recipe definition's invariants.
//
// Postcondition: Returns nil iff the recipe is well-formed. A recipe without
// a required skill is ungated.
func (r Recipe) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("recipe: id must not be empty")
	}
	if r.Name == "" {
		return fmt.Errorf("recipe %s: name must not be empty", r.ID)
	}
	if r.ResultItemID == "" {
		return fmt.Errorf("recipe %s: result_item must not be empty", r.ID)
	}
	if r.ResultQuantity < 1 {
		return fmt.Errorf("recipe %s: result_quantity must be >= 1, got %d", r.ID, r.ResultQuantity)
	}
	if r.RequiredSkill != "" {
		if !ValidSkill(r.RequiredSkill) {
			return fmt.Errorf("recipe %s: unknown required_skill %q", r.ID, r.RequiredSkill)
		}
		if r.RequiredLevel < 1 {
			return fmt.Errorf("recipe %s: required_level must be >= 1, got %d", r.ID, r.RequiredLevel)
		}
	}
	if len(r.Ingredients) == 0 {
		return fmt.Errorf("recipe %s: must have at least one ingredient", r.ID)
	}
	for i, ing := range r.Ingredients {
		if ing.ItemID == "" {
			return fmt.Errorf("recipe %s: ingredient[%d] must have a non-empty item id", r.ID, i)
		}
		if ing.Quantity < 1 {
			return fmt.Errorf("recipe %s: ingredient[%d] quantity must be >= 1, got %d", r.ID, i, ing.Quantity)
		}
	}
	return nil
}

// Validate checks a gathering node definition's invariants.
//
// Postcondition: Returns nil iff the node is well-formed. Node drops are
// guaranteed, so every entry needs a sane quantity range.
func (n GatheringNode) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("node: id must not be empty")
	}
	if n.Name == "" {
		return fmt.Errorf("node %s: name must not be empty", n.ID)
	}
	if !ValidSkill(n.RequiredSkill) {
		return fmt.Errorf("node %s: unknown required_skill %q", n.ID, n.RequiredSkill)
	}
	if n.RequiredLevel < 1 {
		return fmt.Errorf("node %s: required_level must be >= 1, got %d", n.ID, n.RequiredLevel)
	}
	if len(n.Drops) == 0 {
		return fmt.Errorf("node %s: must have at least one drop", n.ID)
	}
	for i, d := range n.Drops {
		if d.ItemID == "" {
			return fmt.Errorf("node %s: drop[%d] must have a non-empty item id", n.ID, i)
		}
		if d.Min < 1 {
			return fmt.Errorf("node %s: drop[%d] min must be >= 1, got %d", n.ID, i, d.Min)
		}
		if d.Min > d.Max {
			return fmt.Errorf("node %s: drop[%d] min (%d) must be <= max (%d)", n.ID, i, d.Min, d.Max)
		}
	}
	if n.ExperienceReward < 0 {
		return fmt.Errorf("node %s: experience_reward must be >= 0, got %d", n.ID, n.ExperienceReward)
	}
	return nil
}
