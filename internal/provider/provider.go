// Package provider defines the upstream play-by-play contract and its
// nflverse-backed implementation. Providers own their own retry and
// caching behavior; the computation core treats them as pure sources.
package provider

import (
	"context"

	"gridboard/internal/stats"
)

// PlayProvider supplies raw play records. Plays returns the plays for a
// season, pre-filtered to one week when week > 0, or an empty slice if
// no data exists for the parameters. Seasons lists the seasons for which
// data might exist.
type PlayProvider interface {
	Plays(ctx context.Context, season, week int) ([]stats.Play, error)
	Seasons(ctx context.Context) ([]int, error)
}
