package event

import (
	"sort"

	"github.com/emborough/localpages/internal/content"
)

// SelectFeatured picks up to n highlight events from the upcoming partition.
//
// Candidates carry the premium tier or an explicit featured flag and are
// ordered by (start date, start time), earliest first. When no candidate
// exists and the visitor has not filtered, the first n upcoming events stand
// in, in their existing order. An active filter suppresses that fallback so an
// explicit filter never silently reverts to an unrelated default set.
func SelectFeatured(upcoming []content.EventRecord, n int, filtersActive bool) []content.EventRecord {
	if n <= 0 {
		return nil
	}

	var candidates []content.EventRecord
	for _, record := range upcoming {
		if record.Tier == content.TierPremium || record.IsFeatured {
			candidates = append(candidates, record)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if cmp := candidates[i].StartDate.Compare(candidates[j].StartDate); cmp != 0 {
			return cmp < 0
		}
		return candidates[i].SortTime() < candidates[j].SortTime()
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	if len(candidates) > 0 {
		return candidates
	}
	if filtersActive {
		return nil
	}
	if len(upcoming) > n {
		upcoming = upcoming[:n]
	}
	return append([]content.EventRecord(nil), upcoming...)
}
