package catalog

import (
	"fmt"
	"sort"
)

// Registry is the in-memory catalog index. It is immutable after
// construction and safe for concurrent reads.
type Registry struct {
	items   map[string]Item
	enemies map[string]Enemy
	recipes map[string]Recipe
	nodes   map[string]GatheringNode
}

// NewRegistry builds a Registry from validated definitions and checks
// cross-references: every drop, ingredient, and result must name a known item.
//
// Postcondition: Returns a fully indexed Registry or a non-nil error; a
// returned Registry never contains a dangling item reference.
func NewRegistry(items []Item, enemies []Enemy, recipes []Recipe, nodes []GatheringNode) (*Registry, error) {
	r := &Registry{
		items:   make(map[string]Item, len(items)),
		enemies: make(map[string]Enemy, len(enemies)),
		recipes: make(map[string]Recipe, len(recipes)),
		nodes:   make(map[string]GatheringNode, len(nodes)),
	}

	for _, it := range items {
		if err := it.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.items[it.ID]; dup {
			return nil, fmt.Errorf("duplicate item id %q", it.ID)
		}
		r.items[it.ID] = it
	}

	for _, e := range enemies {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.enemies[e.ID]; dup {
			return nil, fmt.Errorf("duplicate enemy id %q", e.ID)
		}
		for _, d := range e.Drops {
			if _, ok := r.items[d.ItemID]; !ok {
				return nil, fmt.Errorf("enemy %s: drop references unknown item %q", e.ID, d.ItemID)
			}
		}
		r.enemies[e.ID] = e
	}

	for _, rc := range recipes {
		if err := rc.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.recipes[rc.ID]; dup {
			return nil, fmt.Errorf("duplicate recipe id %q", rc.ID)
		}
		if _, ok := r.items[rc.ResultItemID]; !ok {
			return nil, fmt.Errorf("recipe %s: result references unknown item %q", rc.ID, rc.ResultItemID)
		}
		for _, ing := range rc.Ingredients {
			if _, ok := r.items[ing.ItemID]; !ok {
				return nil, fmt.Errorf("recipe %s: ingredient references unknown item %q", rc.ID, ing.ItemID)
			}
		}
		r.recipes[rc.ID] = rc
	}

	for _, n := range nodes {
		if err := n.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.nodes[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %q", n.ID)
		}
		for _, d := range n.Drops {
			if _, ok := r.items[d.ItemID]; !ok {
				return nil, fmt.Errorf("node %s: drop references unknown item %q", n.ID, d.ItemID)
			}
		}
		r.nodes[n.ID] = n
	}

	return r, nil
}

// Item returns the item definition for id.
//
// Postcondition: Returns (item, true) if found, or (zero, false) otherwise.
func (r *Registry) Item(id string) (Item, bool) {
	it, ok := r.items[id]
	return it, ok
}

// Enemy returns the enemy definition for id.
func (r *Registry) Enemy(id string) (Enemy, bool) {
	e, ok := r.enemies[id]
	return e, ok
}

// Recipe returns the recipe definition for id.
func (r *Registry) Recipe(id string) (Recipe, bool) {
	rc, ok := r.recipes[id]
	return rc, ok
}

// Node returns the gathering node definition for id.
func (r *Registry) Node(id string) (GatheringNode, bool) {
	n, ok := r.nodes[id]
	return n, ok
}

// ListItems returns all item definitions sorted by ID.
func (r *Registry) ListItems() []Item {
	out := make([]Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListEnemies returns all enemy definitions sorted by level, then ID.
func (r *Registry) ListEnemies() []Enemy {
	out := make([]Enemy, 0, len(r.enemies))
	for _, e := range r.enemies {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level < out[j].Level
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ListRecipes returns all recipe definitions sorted by ID.
func (r *Registry) ListRecipes() []Recipe {
	out := make([]Recipe, 0, len(r.recipes))
	for _, rc := range r.recipes {
		out = append(out, rc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListNodes returns all gathering node definitions sorted by ID.
func (r *Registry) ListNodes() []GatheringNode {
	out := make([]GatheringNode, 0, len(r.nodes))
	for _, n := range r.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
