package scoring

import (
	"reflect"
	"testing"

	"gridboard/internal/stats"
)

func TestPlayerPoints_PassingLine(t *testing.T) {
	// 3 pass TD (18) + 1 INT (-2) + 300 pass yards (12) = 28.00
	s := stats.PlayerStats{
		PlayerName: "QB1", Position: stats.PositionQB,
		PassTD: 3, PassInt: 1, PassYards: 300,
	}
	if got := PlayerPoints(s, DefaultRuleset()); got != 28.00 {
		t.Errorf("PlayerPoints() = %v, want 28.00", got)
	}
}

func TestPlayerPoints_ReceivingLine(t *testing.T) {
	// 5 receptions (5) + 80 rec yards (8) + 1 rec TD (6) = 19.00
	s := stats.PlayerStats{
		PlayerName: "WR1", Position: stats.PositionWRTE,
		Receptions: 5, RecYards: 80, RecTD: 1,
	}
	if got := PlayerPoints(s, DefaultRuleset()); got != 19.00 {
		t.Errorf("PlayerPoints() = %v, want 19.00", got)
	}
}

func TestPlayerPoints_DualThreatQB(t *testing.T) {
	// 2 pass TD (12) + 50 rush yards (5) = 17.00, position stays QB
	s := stats.PlayerStats{
		PlayerName: "QB2", Position: stats.PositionQB,
		PassTD: 2, RushYards: 50,
	}
	if got := PlayerPoints(s, DefaultRuleset()); got != 17.00 {
		t.Errorf("PlayerPoints() = %v, want 17.00", got)
	}
	if s.Position != stats.PositionQB {
		t.Errorf("position = %q, want QB", s.Position)
	}
}

func TestPlayerPoints_ZeroDefaults(t *testing.T) {
	if got := PlayerPoints(stats.PlayerStats{PlayerName: "Empty"}, DefaultRuleset()); got != 0 {
		t.Errorf("empty stat line scored %v, want 0", got)
	}
}

func TestPlayerPoints_FumblesNegative(t *testing.T) {
	s := stats.PlayerStats{PlayerName: "RB1", RushYards: 100, FumbleLost: 2}
	// 10 - 4 = 6.00
	if got := PlayerPoints(s, DefaultRuleset()); got != 6.00 {
		t.Errorf("PlayerPoints() = %v, want 6.00", got)
	}
}

func TestPlayerPoints_Rounding(t *testing.T) {
	// 123 pass yards * 0.04 = 4.92; 7 pass yards * 0.04 = 0.28
	s := stats.PlayerStats{PassYards: 123}
	if got := PlayerPoints(s, DefaultRuleset()); got != 4.92 {
		t.Errorf("PlayerPoints() = %v, want 4.92", got)
	}
	// Half rounds away from zero: 0.125 * 100 = 12.5 -> 13 -> 0.13
	custom := Ruleset{StatReception: 0.125}
	if got := PlayerPoints(stats.PlayerStats{Receptions: 1}, custom); got != 0.13 {
		t.Errorf("PlayerPoints() = %v, want 0.13", got)
	}
}

func TestPlayerPoints_PartialRuleset(t *testing.T) {
	// Entries absent from the ruleset score the stat at zero.
	rules := Ruleset{StatPassTD: 4}
	s := stats.PlayerStats{PassTD: 2, PassYards: 300, Receptions: 10}
	if got := PlayerPoints(s, rules); got != 8.00 {
		t.Errorf("PlayerPoints() = %v, want 8.00", got)
	}
}

func testBoard() []Entry {
	players := []stats.PlayerStats{
		{PlayerName: "QB1", Position: stats.PositionQB, PassTD: 3, PassYards: 300},     // 30
		{PlayerName: "RB1", Position: stats.PositionRB, RushTD: 1, RushYards: 120},     // 18
		{PlayerName: "WR1", Position: stats.PositionWRTE, Receptions: 6, RecYards: 90}, // 15
		{PlayerName: "RB2", Position: stats.PositionRB, RushYards: 180},                // 18, ties RB1
		{PlayerName: "QB2", Position: stats.PositionQB, PassYards: 250},                // 10
	}
	return Calculate(players, DefaultRuleset())
}

func TestCalculate_SortAndDenseRanks(t *testing.T) {
	board := testBoard()

	wantOrder := []string{"QB1", "RB1", "RB2", "WR1", "QB2"}
	for i, name := range wantOrder {
		if board[i].PlayerName != name {
			t.Errorf("board[%d] = %q, want %q", i, board[i].PlayerName, name)
		}
	}
	for i, e := range board {
		if e.Rank != i+1 {
			t.Errorf("rank[%d] = %d, want %d (dense, no gaps)", i, e.Rank, i+1)
		}
	}
	// RB1 before RB2: equal scores keep input order.
	if board[1].FantasyPoints != board[2].FantasyPoints {
		t.Fatalf("test expects a tie, got %v vs %v", board[1].FantasyPoints, board[2].FantasyPoints)
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	first := testBoard()
	second := testBoard()
	if !reflect.DeepEqual(first, second) {
		t.Error("Calculate not deterministic for identical input")
	}
}

func TestCalculate_Empty(t *testing.T) {
	if got := Calculate(nil, DefaultRuleset()); len(got) != 0 {
		t.Errorf("Calculate(nil) returned %d entries, want 0", len(got))
	}
}

func TestFilterByPositions_SinglePosition(t *testing.T) {
	board := testBoard()
	qbs := FilterByPositions(board, []string{"QB"})

	if len(qbs) != 2 {
		t.Fatalf("got %d QBs, want 2", len(qbs))
	}
	for _, e := range qbs {
		if e.Position != stats.PositionQB {
			t.Errorf("filter leaked position %q", e.Position)
		}
	}
	// Ranks recomputed after filtering.
	if qbs[0].Rank != 1 || qbs[1].Rank != 2 {
		t.Errorf("ranks = (%d, %d), want (1, 2)", qbs[0].Rank, qbs[1].Rank)
	}
}

func TestFilterByPositions_TrimsAndExactMatch(t *testing.T) {
	board := testBoard()

	if got := FilterByPositions(board, []string{" QB "}); len(got) != 2 {
		t.Errorf("trimmed filter matched %d entries, want 2", len(got))
	}
	// No prefix or fuzzy matching: "WR" does not match "WR/TE".
	if got := FilterByPositions(board, []string{"WR"}); len(got) != 0 {
		t.Errorf("prefix filter matched %d entries, want 0", len(got))
	}
	if got := FilterByPositions(board, []string{"qb"}); len(got) != 0 {
		t.Errorf("case-insensitive match leaked %d entries, want 0", len(got))
	}
}

func TestFilterByPositions_NonexistentIsEmptyNotError(t *testing.T) {
	if got := FilterByPositions(testBoard(), []string{"K"}); len(got) != 0 {
		t.Errorf("nonexistent position matched %d entries, want 0", len(got))
	}
}

func TestFilterByPositions_UnionReranked(t *testing.T) {
	board := testBoard()
	union := FilterByPositions(board, []string{"QB", "RB"})

	if len(union) != 4 {
		t.Fatalf("union has %d entries, want 4", len(union))
	}
	// Re-sorted descending across the union, ranks dense from 1.
	wantOrder := []string{"QB1", "RB1", "RB2", "QB2"}
	for i, name := range wantOrder {
		if union[i].PlayerName != name {
			t.Errorf("union[%d] = %q, want %q", i, union[i].PlayerName, name)
		}
		if union[i].Rank != i+1 {
			t.Errorf("union rank[%d] = %d, want %d", i, union[i].Rank, i+1)
		}
	}
}

func TestFilterByPositions_NoFilter(t *testing.T) {
	board := testBoard()
	if got := FilterByPositions(board, nil); len(got) != len(board) {
		t.Errorf("nil filter changed board size: %d, want %d", len(got), len(board))
	}
}

func TestTop(t *testing.T) {
	board := testBoard()

	if got := Top(board, 3); len(got) != 3 {
		t.Errorf("Top(3) returned %d entries", len(got))
	}
	if got := Top(board, 100); len(got) != len(board) {
		t.Errorf("Top(100) returned %d entries, want full board %d", len(got), len(board))
	}
	if got := Top(board, 0); len(got) != len(board) {
		t.Errorf("Top(0) returned %d entries, want full board %d", len(got), len(board))
	}
}

func TestRulesetHash_Stable(t *testing.T) {
	a := DefaultRuleset()
	b := DefaultRuleset()
	if a.Hash() != b.Hash() {
		t.Error("identical rulesets must hash identically")
	}

	b[StatReception] = 0.5
	if a.Hash() == b.Hash() {
		t.Error("different rulesets must hash differently")
	}
}
