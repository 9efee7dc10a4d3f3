package stats

import "log"

// Play types that may carry passing stats. Guards against mis-tagged rows
// leaking rushing or scramble yardage into passing totals.
var passPlayTypes = map[string]bool{
	"pass":     true,
	"qb_kneel": true,
	"qb_spike": true,
}

// Play types that may carry rushing stats.
var rushPlayTypes = map[string]bool{
	"run":      true,
	"qb_kneel": true,
}

// accumulator collects one PlayerStats per name, preserving first-seen
// order so that repeated aggregation of the same plays yields identical
// output.
type accumulator struct {
	byName map[string]*PlayerStats
	order  []string
}

func newAccumulator() *accumulator {
	return &accumulator{byName: make(map[string]*PlayerStats)}
}

// get returns the record for name, creating it with the given default
// position on first sight.
func (a *accumulator) get(name, defaultPos string) *PlayerStats {
	if ps, ok := a.byName[name]; ok {
		return ps
	}
	ps := &PlayerStats{PlayerName: name, Position: defaultPos}
	a.byName[name] = ps
	a.order = append(a.order, name)
	return ps
}

func (a *accumulator) players() []PlayerStats {
	out := make([]PlayerStats, 0, len(a.order))
	for _, name := range a.order {
		out = append(out, *a.byName[name])
	}
	return out
}

// Aggregate folds a season's plays (optionally pre-filtered to one week)
// into one stat line per player. Three independent passes, one per role;
// each pass overwrites its own fields on the player record, so a player
// appearing in several roles keeps the union of all three. Zero plays, or
// plays with no recognizable role fields, yield an empty slice.
func Aggregate(plays []Play) []PlayerStats {
	acc := newAccumulator()
	aggregatePassing(plays, acc)
	aggregateRushing(plays, acc)
	aggregateReceiving(plays, acc)
	return acc.players()
}

func aggregatePassing(plays []Play, acc *accumulator) {
	type totals struct {
		td    int
		ints  int
		yards float64
	}
	sums := make(map[string]*totals)
	var order []string

	for _, p := range plays {
		if p.Passer == "" {
			continue
		}
		// A tagged play that isn't a pass attempt must not contribute
		// passing yards, even if the row has a passer name on it.
		if p.PlayType != "" && !passPlayTypes[p.PlayType] {
			continue
		}
		t, ok := sums[p.Passer]
		if !ok {
			t = &totals{}
			sums[p.Passer] = t
			order = append(order, p.Passer)
		}
		t.td += p.PassTouchdown
		t.ints += p.Interception
		t.yards += p.PassingYards
	}

	for _, name := range order {
		t := sums[name]
		ps := acc.get(name, PositionQB)
		// Overwrite, not accumulate: each player is grouped once per call.
		ps.PassTD = t.td
		ps.PassInt = t.ints
		ps.PassYards = t.yards
		ps.Position = PositionQB
	}
	if len(order) > 0 {
		log.Printf("[Stats] %d players with passing stats\n", len(order))
	}
}

func aggregateRushing(plays []Play, acc *accumulator) {
	type totals struct {
		td    int
		yards float64
	}
	sums := make(map[string]*totals)
	var order []string

	for _, p := range plays {
		if p.Rusher == "" {
			continue
		}
		if p.PlayType != "" && !rushPlayTypes[p.PlayType] {
			continue
		}
		t, ok := sums[p.Rusher]
		if !ok {
			t = &totals{}
			sums[p.Rusher] = t
			order = append(order, p.Rusher)
		}
		t.td += p.RushTouchdown
		t.yards += p.RushingYards
	}

	for _, name := range order {
		t := sums[name]
		ps := acc.get(name, PositionRB)
		ps.RushTD = t.td
		ps.RushYards = t.yards
		// A passer who also rushes stays QB. RB is only assigned to
		// players with no passing stats at all.
		if ps.PassTD == 0 && ps.PassYards == 0 && ps.Position != PositionQB {
			ps.Position = PositionRB
		}
	}
	if len(order) > 0 {
		log.Printf("[Stats] %d players with rushing stats\n", len(order))
	}
}

func aggregateReceiving(plays []Play, acc *accumulator) {
	type totals struct {
		recs  int
		td    int
		yards float64
	}
	sums := make(map[string]*totals)
	var order []string

	for _, p := range plays {
		if p.Receiver == "" {
			continue
		}
		t, ok := sums[p.Receiver]
		if !ok {
			t = &totals{}
			sums[p.Receiver] = t
			order = append(order, p.Receiver)
		}
		// Each complete pass to this receiver is exactly one reception.
		t.recs += p.CompletePass
		t.td += p.Touchdown
		t.yards += p.ReceivingYards
	}

	for _, name := range order {
		t := sums[name]
		ps := acc.get(name, PositionWRTE)
		ps.Receptions = t.recs
		ps.RecTD = t.td
		ps.RecYards = t.yards
		if ps.Position != PositionQB && ps.Position != PositionRB {
			ps.Position = PositionWRTE
		}
	}
	if len(order) > 0 {
		log.Printf("[Stats] %d players with receiving stats\n", len(order))
	}
}
