package resolve

import "github.com/emborough/localpages/internal/content"

// Seen is the request-scoped accumulator of item ids already committed to an
// earlier page section. It is created empty at the start of one page
// resolution, grown as each section commits its final item list, and discarded
// with the request. It is never shared across requests.
type Seen map[string]struct{}

// NewSeen returns an empty accumulator.
func NewSeen() Seen {
	return make(Seen)
}

// Has reports whether an id was committed by an earlier section.
func (s Seen) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Commit records ids as shown. Empty ids are ignored.
func (s Seen) Commit(ids ...string) {
	for _, id := range ids {
		if id == "" {
			continue
		}
		s[id] = struct{}{}
	}
}

// FilterAndCommit returns candidates minus any item already in seen, then
// commits the ids of the returned items before the next section runs.
//
// Sections must run in a fixed order (stories, businesses, events, media):
// earlier sections have priority, so an item eligible for two categories is
// awarded to whichever section resolves first.
func FilterAndCommit[T content.Item](seen Seen, candidates []T) []T {
	if len(candidates) == 0 {
		return nil
	}
	kept := make([]T, 0, len(candidates))
	for _, candidate := range candidates {
		id := candidate.ItemID()
		if seen.Has(id) {
			continue
		}
		kept = append(kept, candidate)
		seen.Commit(id)
	}
	return kept
}
