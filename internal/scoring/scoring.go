package scoring

import (
	"math"
	"sort"
	"strings"

	"gridboard/internal/stats"
)

// Entry is one leaderboard row: a player's stat line plus the fantasy
// point total and a dense 1-based rank.
type Entry struct {
	stats.PlayerStats
	FantasyPoints float64 `json:"fantasy_points"`
	Rank          int     `json:"rank"`
}

// PlayerPoints computes a player's fantasy points under the given rules,
// rounded to two decimal places (half away from zero). Stats without a
// rule entry, and rule entries the stat line doesn't carry, contribute
// zero.
func PlayerPoints(s stats.PlayerStats, rules Ruleset) float64 {
	points := 0.0
	points += float64(s.PassTD) * rules[StatPassTD]
	points += float64(s.PassInt) * rules[StatPassInt]
	points += s.PassYards * rules[StatPassYards]
	points += float64(s.RushTD) * rules[StatRushTD]
	points += s.RushYards * rules[StatRushYards]
	points += float64(s.RecTD) * rules[StatRecTD]
	points += s.RecYards * rules[StatRecYards]
	points += float64(s.Receptions) * rules[StatReception]
	points += float64(s.FumbleLost) * rules[StatFumbleLost]
	return round2(points)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Calculate scores every player and returns the leaderboard sorted
// descending by points, ties broken by input order, with dense ranks.
func Calculate(players []stats.PlayerStats, rules Ruleset) []Entry {
	entries := make([]Entry, 0, len(players))
	for _, p := range players {
		entries = append(entries, Entry{
			PlayerStats:   p,
			FantasyPoints: PlayerPoints(p, rules),
		})
	}
	sortAndRank(entries)
	return entries
}

func sortAndRank(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].FantasyPoints > entries[j].FantasyPoints
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

// FilterByPositions keeps entries whose position exactly equals one of
// the trimmed filter strings, then re-sorts and re-ranks the union. An
// empty positions list returns the board unchanged; no matches is a
// valid empty result.
func FilterByPositions(entries []Entry, positions []string) []Entry {
	if len(positions) == 0 {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, pos := range positions {
		want := strings.TrimSpace(pos)
		if want == "" {
			continue
		}
		for _, e := range entries {
			if e.Position == want {
				out = append(out, e)
			}
		}
	}
	sortAndRank(out)
	return out
}

// Top returns the first n entries of an already-sorted leaderboard.
// n larger than the board returns the whole board; n <= 0 means no
// truncation.
func Top(entries []Entry, n int) []Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}
