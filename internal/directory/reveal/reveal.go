// Package reveal slices an already-resolved list for progressive "load more"
// display. It performs no fetching; the caller resets state whenever a new
// resolved list replaces the current one.
package reveal

// State tracks how many items of the full list are visible.
type State struct {
	Count int
}

// NewState returns the initial state showing one page.
func NewState(pageSize int) State {
	if pageSize < 0 {
		pageSize = 0
	}
	return State{Count: pageSize}
}

// Advance returns the state after one "load more", revealing pageSize more items.
func (s State) Advance(pageSize int) State {
	if pageSize < 0 {
		pageSize = 0
	}
	return State{Count: s.Count + pageSize}
}

// Reveal returns the visible prefix of the full list and whether more items
// remain beyond it.
func Reveal[T any](fullList []T, state State) (visible []T, hasMore bool) {
	count := state.Count
	if count < 0 {
		count = 0
	}
	if count > len(fullList) {
		count = len(fullList)
	}
	return fullList[:count], count < len(fullList)
}
