package live

import (
	"context"
	"log"
	"time"

	"gridboard/internal/events"
	"gridboard/internal/service"
)

// Refresher periodically recomputes the current season's full-season
// board and publishes a summary to the bus. Freshness of the underlying
// data is bounded by the provider and cache TTL, not by the refresher.
type Refresher struct {
	Service  *service.Service
	Bus      *events.Bus
	Season   int
	Interval time.Duration
}

// Run blocks until ctx is cancelled, refreshing on every tick.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	res, err := r.Service.Leaderboard(ctx, service.Request{Season: r.Season})
	if err != nil {
		log.Printf("[Live] refresh season %d: %v\n", r.Season, err)
		return
	}
	if res.AllPlayers == 0 {
		return
	}
	r.Bus.Publish(events.LeaderboardUpdated{
		Season:      res.Season,
		Week:        res.Week,
		Players:     res.AllPlayers,
		TopScore:    res.TopScore,
		GeneratedAt: res.GeneratedAt,
	})
}
