package scoring

import (
	"fmt"
	"hash/fnv"
	"sort"
)

// Stat names used as ruleset keys. They match the JSON field names on
// stats.PlayerStats so a ruleset reads like the stat line it prices.
const (
	StatPassTD     = "pass_td"
	StatPassInt    = "pass_int"
	StatPassYards  = "pass_yards"
	StatRushTD     = "rush_td"
	StatRushYards  = "rush_yards"
	StatRecTD      = "rec_td"
	StatRecYards   = "rec_yards"
	StatReception  = "reception"
	StatFumbleLost = "fumble_lost"
)

// Ruleset maps a stat name to points per unit. A missing entry scores
// the stat at zero, so partial rulesets are valid.
type Ruleset map[string]float64

// DefaultRuleset is standard PPR scoring.
func DefaultRuleset() Ruleset {
	return Ruleset{
		StatPassTD:     6,
		StatPassInt:    -2,
		StatPassYards:  0.04,
		StatRushTD:     6,
		StatRushYards:  0.1,
		StatRecTD:      6,
		StatRecYards:   0.1,
		StatReception:  1,
		StatFumbleLost: -2,
	}
}

// Hash returns a short stable fingerprint of the ruleset, used in cache
// keys so that different rule sets never share a memoized leaderboard.
func (r Ruleset) Hash() string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := fnv.New64a()
	for _, k := range keys {
		fmt.Fprintf(h, "%s=%v;", k, r[k])
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
