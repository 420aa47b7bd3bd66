// Package namegen generates character names from syllable pools with
// race-flavored affixes, filtered through an offensive-pattern denylist.
package namegen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cory-johannsen/idlerpg/internal/game/rng"
)

// Race identifies a playable race.
type Race string

// Playable races.
const (
	RaceHuman  Race = "human"
	RaceUndead Race = "undead"
	RaceOrk    Race = "ork"
	RaceDwarf  Race = "dwarf"
	RaceDruid  Race = "druid"
	RaceSpirit Race = "spirit"
)

// Races lists all playable races in presentation order.
var Races = []Race{RaceHuman, RaceUndead, RaceOrk, RaceDwarf, RaceDruid, RaceSpirit}

// Descriptions holds the flavor text for each race.
var Descriptions = map[Race]string{
	RaceHuman:  "Versatile and adaptable, humans excel in all pursuits.",
	RaceUndead: "Risen from death, the undead possess dark resilience.",
	RaceOrk:    "Fierce warriors with unmatched strength and brutality.",
	RaceDwarf:  "Stout and hardy, masters of mining and craftsmanship.",
	RaceDruid:  "One with nature, wielding the power of the wild.",
	RaceSpirit: "Ethereal beings with mystical magical abilities.",
}

// ValidRace reports whether race is a recognised playable race.
func ValidRace(race Race) bool {
	_, ok := Descriptions[race]
	return ok
}

// MaxAttempts bounds the retry loop before falling back to a numeric name.
const MaxAttempts = 100

// FallbackLimit is the exclusive upper bound of the numeric suffix used by
// fallback names ("Adventurer0".."Adventurer9999").
const FallbackLimit = 10000

var prefixes = []string{
	"Aer", "Bel", "Cad", "Dor", "Eld", "Fae", "Gor", "Hal", "Ith", "Jor",
	"Kel", "Lor", "Mal", "Nor", "Orn", "Pel", "Qar", "Ral", "Sar", "Tal",
	"Uth", "Val", "Wor", "Xan", "Yar", "Zor", "Ash", "Bor", "Cor", "Dun",
	"Fen", "Grim", "Hel", "Ir", "Jar", "Kra", "Lun", "Mor", "Nex", "Orl",
	"Pyr", "Rav", "Syl", "Thr", "Uro", "Vex", "Wyl", "Xyr", "Yor", "Zal",
	"Arn", "Bry", "Cyn", "Dra", "Eth", "Fyn", "Gal", "Hyr", "Isk", "Jyn",
	"Kar", "Lyn", "Myr", "Nyl", "Oph", "Pax", "Ryn", "Sev", "Tor", "Ulf",
}

var middles = []string{
	"an", "en", "in", "on", "ar", "er", "ir", "or", "al", "el", "il", "ol",
	"as", "es", "is", "os", "ath", "eth", "ith", "oth", "ax", "ex", "ix", "ox",
	"ad", "ed", "id", "od", "ak", "ek", "ik", "ok", "am", "em", "im", "om",
	"av", "ev", "iv", "ov", "az", "ez", "iz", "oz", "aer", "eer", "ier", "oer",
	"", "", "", "",
}

var suffixes = []string{
	"thor", "mir", "win", "dor", "ric", "dan", "gor", "wyn", "mund", "vald",
	"sten", "gard", "helm", "rik", "born", "heim", "dal", "gar", "nir", "ros",
	"ius", "ael", "ian", "eon", "ion", "ius", "ael", "ias", "ous", "orn",
	"ak", "uk", "ik", "ok", "ash", "ush", "esh", "osh", "ax", "ux", "ex", "ox",
	"ra", "re", "ri", "ro", "la", "le", "li", "lo", "na", "ne", "ni", "no",
	"wyn", "wen", "wyr", "war", "thas", "this", "thus", "thon", "drak", "drek",
}

var racePrefixes = map[Race][]string{
	RaceHuman:  {"Sir", "Lord", "Lady", "Baron", ""},
	RaceUndead: {"Grave", "Bone", "Death", "Shadow", "Rot", ""},
	RaceOrk:    {"Grom", "Throk", "Mok", "Gul", "Zug", ""},
	RaceDwarf:  {"Stone", "Iron", "Gold", "Hammer", "Forge", ""},
	RaceDruid:  {"Oak", "Thorn", "Moss", "Fern", "Root", ""},
	RaceSpirit: {"Mist", "Echo", "Wisp", "Shade", "Aura", ""},
}

var raceSuffixes = map[Race][]string{
	RaceHuman:  {"the Brave", "the Just", "the Bold", ""},
	RaceUndead: {"bane", "wraith", "shade", "hollow", ""},
	RaceOrk:    {"skull", "fang", "claw", "maw", ""},
	RaceDwarf:  {"beard", "hammer", "anvil", "pick", ""},
	RaceDruid:  {"leaf", "branch", "grove", "bloom", ""},
	RaceSpirit: {"essence", "void", "ether", "veil", ""},
}

var offensivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)nig`), regexp.MustCompile(`(?i)fag`),
	regexp.MustCompile(`(?i)cunt`), regexp.MustCompile(`(?i)shit`),
	regexp.MustCompile(`(?i)fuck`), regexp.MustCompile(`(?i)cock`),
	regexp.MustCompile(`(?i)dick`), regexp.MustCompile(`(?i)pussy`),
	regexp.MustCompile(`(?i)ass[^h]`), regexp.MustCompile(`(?i)ass$`),
	regexp.MustCompile(`(?i)bitch`), regexp.MustCompile(`(?i)whore`),
	regexp.MustCompile(`(?i)slut`), regexp.MustCompile(`(?i)rape`),
	regexp.MustCompile(`(?i)nazi`), regexp.MustCompile(`(?i)kike`),
	regexp.MustCompile(`(?i)spic`), regexp.MustCompile(`(?i)chink`),
	regexp.MustCompile(`(?i)gook`), regexp.MustCompile(`(?i)wetback`),
	regexp.MustCompile(`(?i)beaner`), regexp.MustCompile(`(?i)cracker`),
	regexp.MustCompile(`(?i)honky`), regexp.MustCompile(`(?i)jap[^a]`),
	regexp.MustCompile(`(?i)jap$`), regexp.MustCompile(`(?i)retard`),
	regexp.MustCompile(`(?i)tard`), regexp.MustCompile(`(?i)sperg`),
	regexp.MustCompile(`(?i)autis`), regexp.MustCompile(`(?i)mongo`),
	regexp.MustCompile(`(?i)pedo`), regexp.MustCompile(`(?i)molest`),
	regexp.MustCompile(`(?i)incest`), regexp.MustCompile(`(?i)bestiality`),
	regexp.MustCompile(`(?i)necro`),
}

var nonLetters = regexp.MustCompile(`[^a-z]`)

// IsOffensive reports whether a candidate name matches the denylist.
// Matching is performed against the lowercased name with non-letters stripped,
// so separators cannot be used to evade the patterns.
func IsOffensive(name string) bool {
	flat := nonLetters.ReplaceAllString(strings.ToLower(name), "")
	for _, p := range offensivePatterns {
		if p.MatchString(flat) {
			return true
		}
	}
	return false
}

// Generator produces character names using the given randomness source.
type Generator struct {
	src rng.Source
}

// NewGenerator creates a Generator.
//
// Precondition: src must be non-nil.
func NewGenerator(src rng.Source) *Generator {
	return &Generator{src: src}
}

// Generate builds a race-flavored character name. It retries up to
// MaxAttempts times when a candidate trips the denylist, then falls back to
// "Adventurer<n>" with n in [0, FallbackLimit).
//
// Precondition: race must satisfy ValidRace.
// Postcondition: The returned name never satisfies IsOffensive.
func (g *Generator) Generate(race Race) string {
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		name := g.candidate(race)
		if !IsOffensive(name) {
			return name
		}
	}
	return fmt.Sprintf("Adventurer%d", g.src.Intn(FallbackLimit))
}

func (g *Generator) candidate(race Race) string {
	base := g.pick(prefixes) + g.pick(middles) + g.pick(suffixes)
	base = strings.ToUpper(base[:1]) + base[1:]

	name := base
	if p := g.pick(racePrefixes[race]); p != "" {
		name = p + " " + base
	}
	switch s := g.pick(raceSuffixes[race]); {
	case s == "":
	case strings.HasPrefix(s, "the"):
		name = name + " " + s
	default:
		name = name + s
	}
	return name
}

func (g *Generator) pick(pool []string) string {
	return pool[g.src.Intn(len(pool))]
}
