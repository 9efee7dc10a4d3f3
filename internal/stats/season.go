package stats

import (
	"fmt"
	"sort"
)

// SeasonMismatchError reports play data tagged with a season other than
// the one requested. This indicates an upstream provider defect, not a
// recoverable input problem, so it is surfaced rather than filtered away.
type SeasonMismatchError struct {
	Expected int
	Found    []int
}

func (e *SeasonMismatchError) Error() string {
	return fmt.Sprintf("play data not from season %d: found seasons %v", e.Expected, e.Found)
}

// ValidateSeason checks that every tagged play belongs to the expected
// season. Plays with a zero season (column absent upstream) are skipped,
// mirroring feeds that omit the column entirely.
func ValidateSeason(plays []Play, season int) error {
	seen := make(map[int]bool)
	var found []int
	for _, p := range plays {
		if p.Season == 0 || p.Season == season {
			continue
		}
		if !seen[p.Season] {
			seen[p.Season] = true
			found = append(found, p.Season)
		}
	}
	if len(found) > 0 {
		sort.Ints(found)
		return &SeasonMismatchError{Expected: season, Found: found}
	}
	return nil
}
