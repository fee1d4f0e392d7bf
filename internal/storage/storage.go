// Package storage defines persistence contracts for directory content.
package storage

import (
	"context"
	"errors"

	"github.com/emborough/localpages/internal/content"
)

// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
var ErrAlreadyExists = errors.New("record already exists")

// ContentQuery describes one fetch from a source collection.
type ContentQuery struct {
	// LocationIDs scopes results to records linked to any of the ids; nil
	// means unscoped (citywide).
	LocationIDs []string
	// Limit caps the number of returned records and must be positive.
	Limit int
	// SearchTerm narrows results to records matching the free-text term.
	SearchTerm string
	// EventType narrows event results to one exact type when set.
	EventType string
	// CategoryID narrows event results to one exact category when set.
	CategoryID string
}

// LocationStore persists the location hierarchy.
type LocationStore interface {
	CreateLocation(ctx context.Context, loc content.Location) error
	ListLocations(ctx context.Context) ([]content.Location, error)
}

// ContentStore fetches content records per source collection. List methods
// never return partial results with an error; a failed fetch fails whole and
// is degraded at the resolver boundary.
type ContentStore interface {
	ListStories(ctx context.Context, query ContentQuery) ([]content.Story, error)
	ListBusinesses(ctx context.Context, query ContentQuery) ([]content.Business, error)
	ListEvents(ctx context.Context, query ContentQuery) ([]content.EventRecord, error)
	ListMedia(ctx context.Context, query ContentQuery) ([]content.MediaItem, error)
}

// WriteStore creates content records; used by seeding and admin tooling.
type WriteStore interface {
	CreateStory(ctx context.Context, story content.Story) error
	CreateBusiness(ctx context.Context, business content.Business) error
	CreateEvent(ctx context.Context, record content.EventRecord) error
	CreateMedia(ctx context.Context, item content.MediaItem) error
}

// Store combines every persistence contract backed by one database.
type Store interface {
	LocationStore
	ContentStore
	WriteStore
}
