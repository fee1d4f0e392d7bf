// Package event classifies time-bound directory records into temporal
// partitions and selects the featured highlight set.
package event

import (
	"sort"

	"github.com/emborough/localpages/internal/content"
)

// Partitions holds the three mutually exclusive temporal buckets relative to
// one "today" snapshot.
type Partitions struct {
	Upcoming []content.EventRecord
	Current  []content.EventRecord
	Past     []content.EventRecord
}

// Partition classifies events against a single snapshot of today. The snapshot
// is taken once per page resolution so a pass that straddles midnight cannot
// classify inconsistently.
//
// With an end date: current when startDate <= today <= endDate, past when
// endDate < today, upcoming otherwise. Without one: current when
// startDate == today, past when startDate < today, upcoming otherwise.
// Records with no start date are invalid input and dropped.
//
// Past is sorted most recent first. Upcoming and current keep fetch order.
func Partition(events []content.EventRecord, today content.Date) Partitions {
	var parts Partitions
	for _, record := range events {
		if record.StartDate.IsZero() {
			continue
		}
		switch classify(record, today) {
		case stateCurrent:
			parts.Current = append(parts.Current, record)
		case statePast:
			parts.Past = append(parts.Past, record)
		default:
			parts.Upcoming = append(parts.Upcoming, record)
		}
	}

	sort.SliceStable(parts.Past, func(i, j int) bool {
		return parts.Past[i].StartDate.After(parts.Past[j].StartDate)
	})
	return parts
}

type state int

const (
	stateUpcoming state = iota
	stateCurrent
	statePast
)

func classify(record content.EventRecord, today content.Date) state {
	if !record.EndDate.IsZero() {
		switch {
		case !record.StartDate.After(today) && !record.EndDate.Before(today):
			return stateCurrent
		case record.EndDate.Before(today):
			return statePast
		default:
			return stateUpcoming
		}
	}
	switch {
	case record.StartDate.Equal(today):
		return stateCurrent
	case record.StartDate.Before(today):
		return statePast
	default:
		return stateUpcoming
	}
}

// Filters are the secondary exact-match attribute filters applied after
// classification. They narrow partition membership without reclassifying.
type Filters struct {
	EventType  string
	CategoryID string
}

// Active reports whether any attribute filter is set.
func (f Filters) Active() bool {
	return f.EventType != "" || f.CategoryID != ""
}

// Matches reports whether a record passes every set filter.
func (f Filters) Matches(record content.EventRecord) bool {
	if f.EventType != "" && record.EventType != f.EventType {
		return false
	}
	if f.CategoryID != "" && record.CategoryID != f.CategoryID {
		return false
	}
	return true
}

// Filter applies the secondary filters independently to each partition.
func (p Partitions) Filter(filters Filters) Partitions {
	if !filters.Active() {
		return p
	}
	return Partitions{
		Upcoming: filterRecords(p.Upcoming, filters),
		Current:  filterRecords(p.Current, filters),
		Past:     filterRecords(p.Past, filters),
	}
}

func filterRecords(records []content.EventRecord, filters Filters) []content.EventRecord {
	var kept []content.EventRecord
	for _, record := range records {
		if filters.Matches(record) {
			kept = append(kept, record)
		}
	}
	return kept
}
