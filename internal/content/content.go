// Package content defines the directory content model shared by storage,
// the resolution engine and the web layer.
package content

import "time"

// TierPremium is the listing tier that qualifies an event for featured selection.
const TierPremium = "Premium"

// Item is any directory content record with a stable identifier.
type Item interface {
	ItemID() string
}

// Location is one node in the city hierarchy. Neighborhoods carry the id of
// their parent area; areas have an empty ParentID.
type Location struct {
	ID       string
	Name     string
	Slug     string
	ParentID string
}

// IsArea reports whether the location is a top-level area.
func (l Location) IsArea() bool {
	return l.ParentID == ""
}

// Story is one editorial story record.
type Story struct {
	ID          string
	Title       string
	Summary     string
	Body        string
	ImageURL    string
	LocationIDs []string
	PublishedAt time.Time
}

// ItemID returns the stable story identifier.
func (s Story) ItemID() string { return s.ID }

// Business is one business listing record.
type Business struct {
	ID          string
	Name        string
	Summary     string
	Category    string
	Website     string
	ImageURL    string
	LocationIDs []string
	CreatedAt   time.Time
}

// ItemID returns the stable business identifier.
func (b Business) ItemID() string { return b.ID }

// EventRecord is one time-bound event record. StartDate is required for
// classification; records without it are dropped before partitioning.
type EventRecord struct {
	ID          string
	Title       string
	Summary     string
	Venue       string
	LocationIDs []string
	StartDate   Date
	EndDate     Date
	StartTime   string
	EventType   string
	CategoryID  string
	Tier        string
	IsFeatured  bool
	CreatedAt   time.Time
}

// ItemID returns the stable event identifier.
func (e EventRecord) ItemID() string { return e.ID }

// SortTime returns the event's time-of-day used for chronological ordering,
// defaulting to midnight when the record carries no start time.
func (e EventRecord) SortTime() string {
	if e.StartTime == "" {
		return "00:00"
	}
	return e.StartTime
}

// MediaItem is one photo or video record.
type MediaItem struct {
	ID          string
	Title       string
	Kind        string
	URL         string
	LocationIDs []string
	CapturedAt  time.Time
}

// ItemID returns the stable media identifier.
func (m MediaItem) ItemID() string { return m.ID }
