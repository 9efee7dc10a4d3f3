package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"gridboard/internal/scoring"
	"gridboard/internal/stats"
)

// stubProvider returns canned plays for every request.
type stubProvider struct {
	plays []stats.Play
	err   error
	calls int
}

func (s *stubProvider) Plays(ctx context.Context, season, week int) ([]stats.Play, error) {
	s.calls++
	return s.plays, s.err
}

func (s *stubProvider) Seasons(ctx context.Context) ([]int, error) {
	return []int{2023, 2024}, nil
}

// memoryCache is a map-backed Cache for tests.
type memoryCache struct {
	boards map[string][]scoring.Entry
	hits   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{boards: make(map[string][]scoring.Entry)}
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]scoring.Entry, bool) {
	entries, ok := m.boards[key]
	if ok {
		m.hits++
	}
	return entries, ok
}

func (m *memoryCache) Set(ctx context.Context, key string, entries []scoring.Entry) {
	m.boards[key] = entries
}

func seasonPlays() []stats.Play {
	return []stats.Play{
		{Season: 2024, Week: 1, PlayType: "pass", Passer: "QB1", PassingYards: 300, PassTouchdown: 3},
		{Season: 2024, Week: 1, PlayType: "run", Rusher: "RB1", RushingYards: 120, RushTouchdown: 1},
		{Season: 2024, Week: 2, Receiver: "WR1", CompletePass: 5, ReceivingYards: 80, Touchdown: 1},
	}
}

func TestLeaderboard_EndToEnd(t *testing.T) {
	svc := New(&stubProvider{plays: seasonPlays()}, nil, nil)

	res, err := svc.Leaderboard(context.Background(), Request{Season: 2024})
	if err != nil {
		t.Fatalf("Leaderboard() error: %v", err)
	}

	if res.AllPlayers != 3 || res.TotalPlayers != 3 {
		t.Errorf("counts = (%d all, %d total), want (3, 3)", res.AllPlayers, res.TotalPlayers)
	}
	// QB1: 18 + 12 = 30; WR1: 5 + 8 + 6 = 19; RB1: 6 + 12 = 18.
	wantOrder := []string{"QB1", "WR1", "RB1"}
	for i, name := range wantOrder {
		if res.Entries[i].PlayerName != name {
			t.Errorf("entry[%d] = %q, want %q", i, res.Entries[i].PlayerName, name)
		}
		if res.Entries[i].Rank != i+1 {
			t.Errorf("rank[%d] = %d, want %d", i, res.Entries[i].Rank, i+1)
		}
	}
	if res.TopScore != 30.00 {
		t.Errorf("TopScore = %v, want 30.00", res.TopScore)
	}
}

func TestLeaderboard_Idempotent(t *testing.T) {
	svc := New(&stubProvider{plays: seasonPlays()}, nil, nil)

	first, err := svc.Leaderboard(context.Background(), Request{Season: 2024})
	if err != nil {
		t.Fatalf("first Leaderboard() error: %v", err)
	}
	second, err := svc.Leaderboard(context.Background(), Request{Season: 2024})
	if err != nil {
		t.Fatalf("second Leaderboard() error: %v", err)
	}
	if !reflect.DeepEqual(first.Entries, second.Entries) {
		t.Error("identical input must produce identical leaderboards")
	}
}

func TestLeaderboard_EmptyPlaysIsNotError(t *testing.T) {
	svc := New(&stubProvider{}, nil, nil)

	res, err := svc.Leaderboard(context.Background(), Request{Season: 2024})
	if err != nil {
		t.Fatalf("empty plays should not error: %v", err)
	}
	if res.AllPlayers != 0 || len(res.Entries) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestLeaderboard_SeasonMismatchSurfaces(t *testing.T) {
	plays := seasonPlays()
	plays = append(plays, stats.Play{Season: 2019, Week: 1, PlayType: "run", Rusher: "RB9", RushingYards: 4})
	svc := New(&stubProvider{plays: plays}, nil, nil)

	_, err := svc.Leaderboard(context.Background(), Request{Season: 2024})
	if err == nil {
		t.Fatal("foreign-season plays must fail the computation")
	}
	var mismatch *stats.SeasonMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("error type = %T, want *stats.SeasonMismatchError", err)
	}
}

func TestLeaderboard_ProviderErrorWrapped(t *testing.T) {
	svc := New(&stubProvider{err: errors.New("feed down")}, nil, nil)
	if _, err := svc.Leaderboard(context.Background(), Request{Season: 2024}); err == nil {
		t.Error("provider errors must propagate")
	}
}

func TestLeaderboard_PositionFilterAndTopN(t *testing.T) {
	svc := New(&stubProvider{plays: seasonPlays()}, nil, nil)

	res, err := svc.Leaderboard(context.Background(), Request{
		Season:    2024,
		Positions: []string{"QB", "RB"},
		TopN:      1,
	})
	if err != nil {
		t.Fatalf("Leaderboard() error: %v", err)
	}
	if res.AllPlayers != 3 {
		t.Errorf("AllPlayers = %d, want 3 (pre-filter)", res.AllPlayers)
	}
	if res.TotalPlayers != 2 {
		t.Errorf("TotalPlayers = %d, want 2 (filtered, pre-truncation)", res.TotalPlayers)
	}
	if len(res.Entries) != 1 || res.Entries[0].PlayerName != "QB1" {
		t.Errorf("entries = %+v, want just QB1", res.Entries)
	}
}

func TestLeaderboard_FilterMissIsEmptyNotError(t *testing.T) {
	svc := New(&stubProvider{plays: seasonPlays()}, nil, nil)

	res, err := svc.Leaderboard(context.Background(), Request{Season: 2024, Positions: []string{"K"}})
	if err != nil {
		t.Fatalf("empty filter result should not error: %v", err)
	}
	if res.TotalPlayers != 0 || len(res.Entries) != 0 {
		t.Errorf("expected empty filtered board, got %+v", res)
	}
	if res.AllPlayers != 3 {
		t.Errorf("AllPlayers = %d, want 3", res.AllPlayers)
	}
}

func TestLeaderboard_Memoizes(t *testing.T) {
	prov := &stubProvider{plays: seasonPlays()}
	mem := newMemoryCache()
	svc := New(prov, mem, nil)

	ctx := context.Background()
	if _, err := svc.Leaderboard(ctx, Request{Season: 2024}); err != nil {
		t.Fatalf("first call error: %v", err)
	}
	if _, err := svc.Leaderboard(ctx, Request{Season: 2024, Positions: []string{"QB"}}); err != nil {
		t.Fatalf("second call error: %v", err)
	}

	if prov.calls != 1 {
		t.Errorf("provider called %d times, want 1 (second call memoized)", prov.calls)
	}
	if mem.hits != 1 {
		t.Errorf("cache hits = %d, want 1", mem.hits)
	}
}

func TestLeaderboard_DifferentRulesDifferentCacheKeys(t *testing.T) {
	prov := &stubProvider{plays: seasonPlays()}
	mem := newMemoryCache()

	standard := New(prov, mem, nil)
	halfPPR := New(prov, mem, func() scoring.Ruleset {
		r := scoring.DefaultRuleset()
		r[scoring.StatReception] = 0.5
		return r
	}())

	ctx := context.Background()
	if _, err := standard.Leaderboard(ctx, Request{Season: 2024}); err != nil {
		t.Fatalf("standard rules error: %v", err)
	}
	if _, err := halfPPR.Leaderboard(ctx, Request{Season: 2024}); err != nil {
		t.Fatalf("half-PPR rules error: %v", err)
	}

	if prov.calls != 2 {
		t.Errorf("provider called %d times, want 2 (rulesets must not share keys)", prov.calls)
	}
	if len(mem.boards) != 2 {
		t.Errorf("cached boards = %d, want 2", len(mem.boards))
	}
}
