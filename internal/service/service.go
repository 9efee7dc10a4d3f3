// Package service runs one leaderboard computation end to end:
// fetch plays, validate the season, aggregate, score, filter, truncate.
// Each invocation is stateless and idempotent; identical plays and rules
// always produce an identical board.
package service

import (
	"context"
	"fmt"
	"time"

	"gridboard/internal/cache"
	"gridboard/internal/provider"
	"gridboard/internal/scoring"
	"gridboard/internal/stats"
)

// Cache memoizes full, unfiltered leaderboards. Implementations must be
// safe for concurrent use. A nil Cache on the Service disables
// memoization without affecting results.
type Cache interface {
	Get(ctx context.Context, key string) ([]scoring.Entry, bool)
	Set(ctx context.Context, key string, entries []scoring.Entry)
}

// Request selects one leaderboard computation. Week 0 means the whole
// season; TopN <= 0 means no truncation; empty Positions means no filter.
type Request struct {
	Season    int
	Week      int
	TopN      int
	Positions []string
}

// Result is one computed leaderboard. Entries is the ranked board after
// filtering and truncation; TotalPlayers counts the filtered board before
// top-N truncation; AllPlayers counts the board before filtering, so the
// no-data case (zero) is distinguishable from an empty filter result.
type Result struct {
	Season       int             `json:"season"`
	Week         int             `json:"week"`
	Entries      []scoring.Entry `json:"leaderboard"`
	TotalPlayers int             `json:"total_players"`
	AllPlayers   int             `json:"all_players"`
	TopScore     float64         `json:"top_score"`
	AverageScore float64         `json:"average_score"`
	GeneratedAt  time.Time       `json:"generated_at"`
}

type Service struct {
	Provider provider.PlayProvider
	Cache    Cache           // nil disables memoization
	Rules    scoring.Ruleset // nil means scoring.DefaultRuleset
}

func New(p provider.PlayProvider, c Cache, rules scoring.Ruleset) *Service {
	return &Service{Provider: p, Cache: c, Rules: rules}
}

func (s *Service) rules() scoring.Ruleset {
	if s.Rules != nil {
		return s.Rules
	}
	return scoring.DefaultRuleset()
}

// Leaderboard computes the ranked board for a request. Empty play data is
// a normal empty result; plays tagged with the wrong season surface as a
// *stats.SeasonMismatchError.
func (s *Service) Leaderboard(ctx context.Context, req Request) (*Result, error) {
	board, err := s.fullBoard(ctx, req.Season, req.Week)
	if err != nil {
		return nil, err
	}

	filtered := scoring.FilterByPositions(board, req.Positions)
	top := scoring.Top(filtered, req.TopN)

	res := &Result{
		Season:       req.Season,
		Week:         req.Week,
		Entries:      top,
		TotalPlayers: len(filtered),
		AllPlayers:   len(board),
		GeneratedAt:  time.Now().UTC(),
	}
	if len(filtered) > 0 {
		res.TopScore = filtered[0].FantasyPoints
		var sum float64
		for _, e := range filtered {
			sum += e.FantasyPoints
		}
		res.AverageScore = sum / float64(len(filtered))
	}
	return res, nil
}

// fullBoard returns the unfiltered board for (season, week), memoized
// when a cache is configured.
func (s *Service) fullBoard(ctx context.Context, season, week int) ([]scoring.Entry, error) {
	rules := s.rules()
	key := cache.Key(season, week, rules)

	if s.Cache != nil {
		if entries, ok := s.Cache.Get(ctx, key); ok {
			return entries, nil
		}
	}

	plays, err := s.Provider.Plays(ctx, season, week)
	if err != nil {
		return nil, fmt.Errorf("fetching plays: %w", err)
	}
	if err := stats.ValidateSeason(plays, season); err != nil {
		return nil, err
	}

	players := stats.Aggregate(plays)
	entries := scoring.Calculate(players, rules)

	if s.Cache != nil && len(entries) > 0 {
		s.Cache.Set(ctx, key, entries)
	}
	return entries, nil
}

// PlayerStats aggregates and scores without filtering or truncation, for
// callers that want the raw ranked stat lines.
func (s *Service) PlayerStats(ctx context.Context, season, week int) ([]scoring.Entry, error) {
	return s.fullBoard(ctx, season, week)
}
