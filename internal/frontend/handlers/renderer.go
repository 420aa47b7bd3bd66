package handlers

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/idlerpg/internal/frontend/telnet"
	"github.com/cory-johannsen/idlerpg/internal/game/catalog"
	"github.com/cory-johannsen/idlerpg/internal/game/combat"
	"github.com/cory-johannsen/idlerpg/internal/game/engine"
	"github.com/cory-johannsen/idlerpg/internal/game/namegen"
)

const barWidth = 20

// capitalize upper-cases the first byte of an ASCII identifier for display.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// renderBar draws a fixed-width progress bar for experience displays.
func renderBar(current, needed int) string {
	filled := 0
	if needed > 0 {
		filled = current * barWidth / needed
	}
	if filled > barWidth {
		filled = barWidth
	}
	return telnet.Colorize(telnet.BrightGreen, strings.Repeat("=", filled)) +
		telnet.Colorize(telnet.Dim, strings.Repeat("-", barWidth-filled))
}

// rarityColor maps an item rarity to its display color.
func rarityColor(rarity string) string {
	switch rarity {
	case catalog.RarityUncommon:
		return telnet.Green
	case catalog.RarityRare:
		return telnet.BrightBlue
	case catalog.RarityEpic:
		return telnet.BrightMagenta
	case catalog.RarityLegendary:
		return telnet.BrightYellow
	default:
		return telnet.White
	}
}

// itemName resolves an item ID to its display name, falling back to the ID
// when content no longer defines it.
func itemName(cat engine.Catalog, id string) string {
	if item, ok := cat.Item(id); ok {
		return telnet.Colorize(rarityColor(item.Rarity), item.Name)
	}
	return id
}

// RenderCard renders the full character sheet.
func RenderCard(card *engine.Card, cat engine.Catalog) string {
	var sb strings.Builder
	p := card.Player

	sb.WriteString("\r\n")
	sb.WriteString(telnet.Colorf(telnet.Bold+telnet.BrightCyan, "=== %s ===", p.Name))
	sb.WriteString("\r\n")
	sb.WriteString(fmt.Sprintf("  %s level %d\r\n",
		telnet.Colorize(telnet.BrightWhite, capitalize(p.Race)), p.Level))
	sb.WriteString(fmt.Sprintf("  Exp   [%s] %d/%d\r\n",
		renderBar(card.Progress.Current, card.Progress.Needed),
		card.Progress.Current, card.Progress.Needed))
	sb.WriteString(fmt.Sprintf("  %s %d/%d   %s %d\r\n",
		telnet.Colorize(telnet.BrightRed, "Health"), p.Health, p.MaxHealth,
		telnet.Colorize(telnet.BrightYellow, "Gold"), p.Gold))
	sb.WriteString(fmt.Sprintf("  Attack %d  Strength %d  Defense %d  Range %d\r\n",
		p.Attack, p.Strength, p.Defense, p.Range))
	sb.WriteString(fmt.Sprintf("  Magic %d  Prayer %d  Stamina %d  Luck %d\r\n",
		p.Magic, p.Prayer, p.Stamina, p.Luck))

	if len(card.Skills) > 0 {
		sb.WriteString("\r\n")
		sb.WriteString(telnet.Colorize(telnet.BrightWhite, "  Skills:"))
		sb.WriteString("\r\n")
		for _, sv := range card.Skills {
			sb.WriteString(fmt.Sprintf("    %-14s lvl %-3d [%s] %d/%d\r\n",
				sv.Skill.Name, sv.Skill.Level,
				renderBar(sv.Progress.Current, sv.Progress.Needed),
				sv.Progress.Current, sv.Progress.Needed))
		}
	}

	sb.WriteString("\r\n")
	sb.WriteString(telnet.Colorize(telnet.BrightWhite, "  Inventory:"))
	sb.WriteString("\r\n")
	if len(card.Inventory) == 0 {
		sb.WriteString(telnet.Colorize(telnet.Dim, "    (empty)"))
		sb.WriteString("\r\n")
	}
	for _, entry := range card.Inventory {
		sb.WriteString(fmt.Sprintf("    %s x%d\r\n", itemName(cat, entry.ItemID), entry.Quantity))
	}

	if card.Settled.Hours > 0 {
		sb.WriteString("\r\n")
		sb.WriteString(telnet.Colorf(telnet.BrightYellow,
			"  While you were away (%dh): +%d gold, +%d exp",
			card.Settled.Hours, card.Settled.Gold, card.Settled.Exp))
		sb.WriteString("\r\n")
	}
	return sb.String()
}

// RenderHunt renders the start of a battle.
func RenderHunt(res *engine.HuntResult) string {
	var sb strings.Builder
	sb.WriteString(telnet.Colorf(telnet.BrightRed, "A %s (level %d) appears!", res.Enemy.Name, res.Enemy.Level))
	sb.WriteString("\r\n")
	sb.WriteString(fmt.Sprintf("  Enemy health %d. Type %s to fight or %s to run.\r\n",
		res.Enemy.Health,
		telnet.Colorize(telnet.Green, "attack"),
		telnet.Colorize(telnet.Green, "flee")))
	return sb.String()
}

// RenderTurn renders one resolved combat turn with any victory rewards.
func RenderTurn(res *engine.TurnResult, cat engine.Catalog) string {
	var sb strings.Builder
	t := res.Turn

	sb.WriteString(telnet.Colorf(telnet.BrightWhite, "You hit the %s for %d damage.", res.Enemy.Name, t.PlayerDamage))
	sb.WriteString("\r\n")

	switch t.Outcome {
	case combat.OutcomeVictory:
		sb.WriteString(telnet.Colorf(telnet.BrightGreen, "The %s is slain!", res.Enemy.Name))
		sb.WriteString("\r\n")
		sb.WriteString(fmt.Sprintf("  +%d exp, +%d gold, +%d combat exp\r\n",
			res.ExpGained, res.GoldGained, res.SkillExpGained))
		for _, loot := range res.Loot {
			sb.WriteString(fmt.Sprintf("  Loot: %s x%d\r\n", itemName(cat, loot.ItemID), loot.Quantity))
		}
		if res.LeveledUp {
			sb.WriteString(telnet.Colorf(telnet.Bold+telnet.BrightYellow, "  You are now level %d!", res.Level))
			sb.WriteString("\r\n")
		}
	case combat.OutcomeDefeat:
		sb.WriteString(telnet.Colorf(telnet.Red, "The %s hits you for %d damage.", res.Enemy.Name, t.EnemyDamage))
		sb.WriteString("\r\n")
		sb.WriteString(telnet.Colorize(telnet.BrightRed, "You have been defeated. Rest to recover."))
		sb.WriteString("\r\n")
	default:
		sb.WriteString(telnet.Colorf(telnet.Red, "The %s hits you for %d damage.", res.Enemy.Name, t.EnemyDamage))
		sb.WriteString("\r\n")
		sb.WriteString(fmt.Sprintf("  Enemy health %d, your health %d.\r\n", t.EnemyHealth, t.PlayerHealth))
	}
	return sb.String()
}

// RenderFlee renders an abandoned battle.
func RenderFlee(res *engine.FleeResult) string {
	name := res.Enemy.Name
	if name == "" {
		name = "enemy"
	}
	return telnet.Colorf(telnet.Yellow, "You flee from the %s.", name) + "\r\n"
}

// RenderGather renders a gathering attempt.
func RenderGather(res *engine.GatherResult, cat engine.Catalog) string {
	var sb strings.Builder
	sb.WriteString(telnet.Colorf(telnet.BrightGreen, "You gather from the %s.", res.Node.Name))
	sb.WriteString("\r\n")
	for _, g := range res.Gathered {
		sb.WriteString(fmt.Sprintf("  %s x%d\r\n", itemName(cat, g.ItemID), g.Quantity))
	}
	sb.WriteString(fmt.Sprintf("  +%d %s exp\r\n", res.SkillExpGained, res.SkillName))
	if res.SkillLeveledUp {
		sb.WriteString(telnet.Colorf(telnet.Bold+telnet.BrightYellow,
			"  Your %s skill is now level %d!", res.SkillName, res.Skill.Level))
		sb.WriteString("\r\n")
	}
	return sb.String()
}

// RenderCraft renders a completed craft.
func RenderCraft(res *engine.CraftResult, cat engine.Catalog) string {
	var sb strings.Builder
	sb.WriteString(telnet.Colorf(telnet.BrightGreen, "You craft %s.", res.Recipe.Name))
	sb.WriteString("\r\n")
	sb.WriteString(fmt.Sprintf("  Made: %s x%d\r\n", itemName(cat, res.Crafted.ItemID), res.Crafted.Quantity))
	for _, ing := range res.Consumed {
		sb.WriteString(fmt.Sprintf("  Used: %s x%d\r\n", itemName(cat, ing.ItemID), ing.Quantity))
	}
	if res.SkillExpGained > 0 {
		sb.WriteString(fmt.Sprintf("  +%d %s exp\r\n", res.SkillExpGained, res.Recipe.RequiredSkill))
	}
	if res.SkillLeveledUp {
		sb.WriteString(telnet.Colorf(telnet.Bold+telnet.BrightYellow,
			"  Your %s skill is now level %d!", res.Recipe.RequiredSkill, res.Skill.Level))
		sb.WriteString("\r\n")
	}
	return sb.String()
}

// RenderRest renders a completed rest.
func RenderRest(res *engine.RestResult) string {
	return telnet.Colorf(telnet.BrightGreen,
		"You rest at the inn for %d gold and wake fully healed (%d health, %d gold left).",
		res.GoldSpent, res.Health, res.Gold) + "\r\n"
}

// RenderUse renders a consumed item.
func RenderUse(res *engine.UseItemResult) string {
	if res.Healed == 0 {
		return telnet.Colorf(telnet.Yellow, "You use the %s but feel no different.", res.Item.Name) + "\r\n"
	}
	return telnet.Colorf(telnet.BrightGreen,
		"You use the %s and recover %d health (%d now).",
		res.Item.Name, res.Healed, res.Health) + "\r\n"
}

// RenderIdle renders an idle settlement summary.
func RenderIdle(res engine.IdleResult) string {
	if res.Accrual.Hours == 0 {
		return telnet.Colorize(telnet.Dim, "Nothing has accrued yet; idle rewards settle by the hour.") + "\r\n"
	}
	var sb strings.Builder
	sb.WriteString(telnet.Colorf(telnet.BrightYellow,
		"Idle rewards for %dh: +%d gold, +%d exp.",
		res.Accrual.Hours, res.Accrual.Gold, res.Accrual.Exp))
	sb.WriteString("\r\n")
	if res.LeveledUp {
		sb.WriteString(telnet.Colorf(telnet.Bold+telnet.BrightYellow, "You are now level %d!", res.Level))
		sb.WriteString("\r\n")
	}
	return sb.String()
}

// RenderEnemies renders the enemy bestiary.
func RenderEnemies(cat engine.Catalog) string {
	var sb strings.Builder
	sb.WriteString(telnet.Colorize(telnet.BrightWhite, "Known enemies:"))
	sb.WriteString("\r\n")
	for _, e := range cat.ListEnemies() {
		sb.WriteString(fmt.Sprintf("  %-20s lvl %-3d hp %-4d exp %-4d gold %d  (%s)\r\n",
			e.Name, e.Level, e.Health, e.ExperienceReward, e.GoldReward,
			telnet.Colorize(telnet.Dim, e.ID)))
	}
	return sb.String()
}

// RenderRecipes renders the recipe book with gates and ingredients.
func RenderRecipes(cat engine.Catalog) string {
	var sb strings.Builder
	sb.WriteString(telnet.Colorize(telnet.BrightWhite, "Recipes:"))
	sb.WriteString("\r\n")
	for _, r := range cat.ListRecipes() {
		gate := "ungated"
		if r.RequiredSkill != "" {
			gate = fmt.Sprintf("%s lvl %d", r.RequiredSkill, r.RequiredLevel)
		}
		var ings []string
		for _, ing := range r.Ingredients {
			ings = append(ings, fmt.Sprintf("%s x%d", ing.ItemID, ing.Quantity))
		}
		sb.WriteString(fmt.Sprintf("  %-22s %-18s %s -> %s x%d  (%s)\r\n",
			r.Name, gate, strings.Join(ings, ", "),
			r.ResultItemID, r.ResultQuantity,
			telnet.Colorize(telnet.Dim, r.ID)))
	}
	return sb.String()
}

// RenderNodes renders the gathering node list with skill gates.
func RenderNodes(cat engine.Catalog) string {
	var sb strings.Builder
	sb.WriteString(telnet.Colorize(telnet.BrightWhite, "Gathering spots:"))
	sb.WriteString("\r\n")
	for _, n := range cat.ListNodes() {
		sb.WriteString(fmt.Sprintf("  %-22s %s lvl %-3d exp %-4d (%s)\r\n",
			n.Name, n.RequiredSkill, n.RequiredLevel, n.ExperienceReward,
			telnet.Colorize(telnet.Dim, n.ID)))
	}
	return sb.String()
}

// RenderRaces renders the playable race list with flavor text.
func RenderRaces() string {
	var sb strings.Builder
	for _, race := range namegen.Races {
		sb.WriteString(fmt.Sprintf("  %-8s %s\r\n",
			telnet.Colorize(telnet.BrightCyan, string(race)),
			telnet.Colorize(telnet.Dim, namegen.Descriptions[race])))
	}
	return sb.String()
}

// RenderSkillProgress renders a single skill line. Kept for the skills
// command, which reuses card data.
func RenderSkillProgress(sv engine.SkillView) string {
	return fmt.Sprintf("  %-14s lvl %-3d [%s] %d/%d",
		sv.Skill.Name, sv.Skill.Level,
		renderBar(sv.Progress.Current, sv.Progress.Needed),
		sv.Progress.Current, sv.Progress.Needed)
}
