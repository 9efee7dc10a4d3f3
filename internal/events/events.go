package events

import "time"

// LeaderboardUpdated is published whenever a board has been recomputed
// from fresh upstream data.
type LeaderboardUpdated struct {
	Season      int       `json:"season"`
	Week        int       `json:"week"`
	Players     int       `json:"players"`
	TopScore    float64   `json:"top_score"`
	GeneratedAt time.Time `json:"generated_at"`
}

type Bus struct {
	Updates chan LeaderboardUpdated
}

func NewBus() *Bus {
	return &Bus{
		Updates: make(chan LeaderboardUpdated, 10),
	}
}

// Publish sends an update without blocking; when nobody drains the bus
// the event is dropped, since a newer one supersedes it anyway.
func (b *Bus) Publish(ev LeaderboardUpdated) {
	select {
	case b.Updates <- ev:
	default:
	}
}
