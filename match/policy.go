package match

import "github.com/happy6team/ooh-marketing-sales/core"

// RankPolicy picks the medium to propose from a ranked hit list.
// It reports false when none of the hits is acceptable.
type RankPolicy func(hits []core.ScoredMedia) (core.ScoredMedia, bool)

// TopRank takes the closest hit.
func TopRank(hits []core.ScoredMedia) (core.ScoredMedia, bool) {
	if len(hits) == 0 {
		return core.ScoredMedia{}, false
	}
	return hits[0], true
}

// WithinDistance returns a policy that takes the closest hit only when its
// distance is at most maxDistance.
func WithinDistance(maxDistance float32) RankPolicy {
	return func(hits []core.ScoredMedia) (core.ScoredMedia, bool) {
		top, ok := TopRank(hits)
		if !ok || top.Distance > maxDistance {
			return core.ScoredMedia{}, false
		}
		return top, true
	}
}
