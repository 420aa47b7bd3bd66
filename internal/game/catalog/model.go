// Package catalog holds the immutable reference data for the game: items,
// enemies, crafting recipes, and gathering nodes. Definitions are loaded from
// YAML content files and validated once at startup; the engine only reads
// them by identifier.
package catalog

// Item type constants.
const (
	TypeMaterial   = "material"
	TypeWeapon     = "weapon"
	TypeArmor      = "armor"
	TypeConsumable = "consumable"
)

// Rarity constants in ascending order of scarcity.
const (
	RarityCommon    = "common"
	RarityUncommon  = "uncommon"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// ItemStats holds the optional stat payload of an item definition.
type ItemStats struct {
	Attack  int `yaml:"attack"`
	Defense int `yaml:"defense"`
	Heal    int `yaml:"heal"`
}

// Item is an immutable item definition.
type Item struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Type        string    `yaml:"type"`
	Rarity      string    `yaml:"rarity"`
	Value       int       `yaml:"value"`
	Stats       ItemStats `yaml:"stats"`
}

// DropSpec is a single chance-gated loot entry on an enemy.
type DropSpec struct {
	ItemID string  `yaml:"item"`
	Chance float64 `yaml:"chance"`
	MinQty int     `yaml:"min_qty"`
	MaxQty int     `yaml:"max_qty"`
}

// Enemy is an immutable enemy definition.
type Enemy struct {
	ID               string     `yaml:"id"`
	Name             string     `yaml:"name"`
	Level            int        `yaml:"level"`
	Health           int        `yaml:"health"`
	Attack           int        `yaml:"attack"`
	Defense          int        `yaml:"defense"`
	ExperienceReward int        `yaml:"experience_reward"`
	GoldReward       int        `yaml:"gold_reward"`
	Drops            []DropSpec `yaml:"drops"`
}

// Ingredient is a single input of a recipe.
type Ingredient struct {
	ItemID   string `yaml:"item"`
	Quantity int    `yaml:"quantity"`
}

// Recipe is an immutable crafting recipe definition.
// RequiredSkill may be empty, in which case the recipe is ungated and grants
// no skill experience.
type Recipe struct {
	ID               string       `yaml:"id"`
	Name             string       `yaml:"name"`
	ResultItemID     string       `yaml:"result_item"`
	ResultQuantity   int          `yaml:"result_quantity"`
	RequiredSkill    string       `yaml:"required_skill"`
	RequiredLevel    int          `yaml:"required_level"`
	Ingredients      []Ingredient `yaml:"ingredients"`
	ExperienceReward int          `yaml:"experience_reward"`
}

// NodeDrop is a guaranteed quantity-range drop of a gathering node.
type NodeDrop struct {
	ItemID string `yaml:"item"`
	Min    int    `yaml:"min"`
	Max    int    `yaml:"max"`
}

// GatheringNode is an immutable gathering node definition.
type GatheringNode struct {
	ID               string     `yaml:"id"`
	Name             string     `yaml:"name"`
	Type             string     `yaml:"type"`
	RequiredSkill    string     `yaml:"required_skill"`
	RequiredLevel    int        `yaml:"required_level"`
	Drops            []NodeDrop `yaml:"drops"`
	ExperienceReward int        `yaml:"experience_reward"`
}

// SkillCombat is the combat skill credited with experience on victory.
const SkillCombat = "combat"

// SkillNames lists every skill a character holds, created alongside the
// player. Gathering and crafting gates reference entries in this list.
var SkillNames = []string{
	"mining", "blacksmithing", "crafting", "woodcutting", "woodworking",
	"fishing", "cooking", "exploring", "summoning", "construction",
	"foraging", SkillCombat,
}

// ValidSkill reports whether name is part of the fixed skill catalog.
func ValidSkill(name string) bool {
	for _, s := range SkillNames {
		if s == name {
			return true
		}
	}
	return false
}
