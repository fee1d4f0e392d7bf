// Package directory assembles composed directory pages: it resolves each
// content section through the tiered fallback chain, threads the cross-section
// dedup accumulator between sections in a fixed order, and partitions events
// against a single snapshot of today.
package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/emborough/localpages/internal/content"
	"github.com/emborough/localpages/internal/directory/event"
	"github.com/emborough/localpages/internal/directory/geo"
	"github.com/emborough/localpages/internal/directory/resolve"
	"github.com/emborough/localpages/internal/storage"
)

// ErrUnknownLocation indicates the requested slug resolves to no location.
var ErrUnknownLocation = errors.New("unknown location")

// ScopeLabelCitywide names the unscoped fallback tier.
const ScopeLabelCitywide = "citywide"

// Section limits requested per fallback tier.
const (
	storyLimit    = 4
	businessLimit = 6
	eventLimit    = 12
	mediaLimit    = 6
	featuredLimit = 3
)

// homeTeaserLimit caps each independent home page strip.
const homeTeaserLimit = 6

// Clock returns the calendar date used as "today". It is called exactly once
// per page resolution.
type Clock func() content.Date

// Assembler composes directory pages from one content store.
type Assembler struct {
	store storage.Store
	today Clock
}

// NewAssembler builds an assembler. A nil clock falls back to the local
// calendar date at resolution time.
func NewAssembler(store storage.Store, clock Clock) *Assembler {
	if clock == nil {
		clock = func() content.Date { return content.DateOf(time.Now()) }
	}
	return &Assembler{store: store, today: clock}
}

// PageInput carries the request inputs for a neighborhood page.
type PageInput struct {
	// Slug identifies the location being viewed.
	Slug string
	// SearchTerm, when set, disables tier fallback: the query searches the
	// viewed location only.
	SearchTerm string
	// Filters narrow event partitions after classification.
	Filters event.Filters
}

// SearchActive reports whether a free-text search is in effect.
func (in PageInput) SearchActive() bool {
	return in.SearchTerm != ""
}

// FiltersActive reports whether the visitor has actively narrowed results.
func (in PageInput) FiltersActive() bool {
	return in.SearchActive() || in.Filters.Active()
}

// Section pairs one resolved content list with the label of the tier that
// supplied it.
type Section[T content.Item] struct {
	Items      []T
	ScopeLabel string
}

// NeighborhoodPage is one fully resolved location page.
type NeighborhoodPage struct {
	Location content.Location
	Area     content.Location
	HasArea  bool
	Siblings []content.Location
	Today    content.Date

	Stories    Section[content.Story]
	Businesses Section[content.Business]
	Media      Section[content.MediaItem]

	// Events carries the non-featured upcoming grid; Partitions and Featured
	// expose the full temporal classification and the highlight subset.
	Events     Section[content.EventRecord]
	Partitions event.Partitions
	Featured   []content.EventRecord
}

// NeighborhoodPage resolves every section for one location.
//
// Sections run in a fixed order — stories, businesses, events, media — because
// earlier sections have priority: an item eligible for two categories is
// awarded to whichever section resolves first.
func (a *Assembler) NeighborhoodPage(ctx context.Context, input PageInput) (NeighborhoodPage, error) {
	if a == nil || a.store == nil {
		return NeighborhoodPage{}, errors.New("assembler is not configured")
	}

	today := a.today()

	locations, err := a.store.ListLocations(ctx)
	if err != nil {
		return NeighborhoodPage{}, fmt.Errorf("load locations: %w", err)
	}
	hierarchy := geo.NewHierarchy(locations)

	loc, ok := hierarchy.BySlug(input.Slug)
	if !ok {
		return NeighborhoodPage{}, fmt.Errorf("location %q: %w", input.Slug, ErrUnknownLocation)
	}
	area, hasArea := hierarchy.Parent(loc)
	siblings := hierarchy.Siblings(loc)

	page := NeighborhoodPage{
		Location: loc,
		Area:     area,
		HasArea:  hasArea,
		Siblings: siblings,
		Today:    today,
	}

	scope := tierScope{
		location: loc,
		area:     area,
		hasArea:  hasArea,
		siblings: siblings,
	}
	searchActive := input.SearchActive()
	seen := resolve.NewSeen()

	storyResult := resolve.Resolve(ctx, buildTiers(scope, storyLimit, a.fetchStories(input.SearchTerm)), searchActive)
	page.Stories = Section[content.Story]{
		Items:      resolve.FilterAndCommit(seen, storyResult.Items),
		ScopeLabel: storyResult.ScopeLabel,
	}

	businessResult := resolve.Resolve(ctx, buildTiers(scope, businessLimit, a.fetchBusinesses(input.SearchTerm)), searchActive)
	page.Businesses = Section[content.Business]{
		Items:      resolve.FilterAndCommit(seen, businessResult.Items),
		ScopeLabel: businessResult.ScopeLabel,
	}

	eventResult := resolve.Resolve(ctx, buildTiers(scope, eventLimit, a.fetchEvents(input.SearchTerm)), searchActive)
	candidates := resolve.FilterAndCommit(seen, eventResult.Items)
	page.Partitions = event.Partition(candidates, today).Filter(input.Filters)
	page.Featured = event.SelectFeatured(page.Partitions.Upcoming, featuredLimit, input.FiltersActive())
	for _, featured := range page.Featured {
		seen.Commit(featured.ItemID())
	}
	grid := make([]content.EventRecord, 0, len(page.Partitions.Upcoming))
	for _, record := range page.Partitions.Upcoming {
		if seenFeatured(page.Featured, record.ID) {
			continue
		}
		grid = append(grid, record)
	}
	page.Events = Section[content.EventRecord]{Items: grid, ScopeLabel: eventResult.ScopeLabel}

	mediaResult := resolve.Resolve(ctx, buildTiers(scope, mediaLimit, a.fetchMedia(input.SearchTerm)), searchActive)
	page.Media = Section[content.MediaItem]{
		Items:      resolve.FilterAndCommit(seen, mediaResult.Items),
		ScopeLabel: mediaResult.ScopeLabel,
	}

	return page, nil
}

// HomePage is the citywide landing page.
type HomePage struct {
	Today    content.Date
	Areas    []AreaSummary
	Stories  []content.Story
	Upcoming []content.EventRecord
}

// AreaSummary pairs an area with its neighborhoods for navigation.
type AreaSummary struct {
	Area          content.Location
	Neighborhoods []content.Location
}

// HomePage fetches the independent landing page inputs concurrently; they are
// mutually independent so a fan-out/fan-in costs one round trip.
func (a *Assembler) HomePage(ctx context.Context) (HomePage, error) {
	if a == nil || a.store == nil {
		return HomePage{}, errors.New("assembler is not configured")
	}

	today := a.today()
	page := HomePage{Today: today}

	var locations []content.Location
	var stories []content.Story
	var events []content.EventRecord

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		locations, err = a.store.ListLocations(groupCtx)
		if err != nil {
			return fmt.Errorf("load locations: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		stories, err = a.store.ListStories(groupCtx, storage.ContentQuery{Limit: homeTeaserLimit})
		if err != nil {
			return fmt.Errorf("load stories: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		events, err = a.store.ListEvents(groupCtx, storage.ContentQuery{Limit: eventLimit})
		if err != nil {
			return fmt.Errorf("load events: %w", err)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return HomePage{}, err
	}

	hierarchy := geo.NewHierarchy(locations)
	for _, area := range hierarchy.Areas() {
		page.Areas = append(page.Areas, AreaSummary{
			Area:          area,
			Neighborhoods: hierarchy.Neighborhoods(area.ID),
		})
	}
	page.Stories = stories
	parts := event.Partition(events, today)
	upcoming := append(parts.Current, parts.Upcoming...)
	if len(upcoming) > homeTeaserLimit {
		upcoming = upcoming[:homeTeaserLimit]
	}
	page.Upcoming = upcoming

	return page, nil
}

type tierScope struct {
	location content.Location
	area     content.Location
	hasArea  bool
	siblings []content.Location
}

// buildTiers assembles the standard fallback chain: the viewed location, then
// sibling neighborhoods in the same area, then citywide.
func buildTiers[T content.Item](scope tierScope, limit int, fetch resolve.Fetch[T]) []resolve.Tier[T] {
	tiers := []resolve.Tier[T]{{
		ScopeLabel:  scope.location.Name,
		LocationIDs: []string{scope.location.ID},
		Limit:       limit,
		Fetch:       fetch,
	}}
	if scope.hasArea && len(scope.siblings) > 0 {
		siblingIDs := make([]string, 0, len(scope.siblings))
		for _, sibling := range scope.siblings {
			siblingIDs = append(siblingIDs, sibling.ID)
		}
		tiers = append(tiers, resolve.Tier[T]{
			ScopeLabel:  scope.area.Name,
			LocationIDs: siblingIDs,
			Limit:       limit,
			Fetch:       fetch,
		})
	}
	tiers = append(tiers, resolve.Tier[T]{
		ScopeLabel: ScopeLabelCitywide,
		Limit:      limit,
		Fetch:      fetch,
	})
	return tiers
}

func (a *Assembler) fetchStories(searchTerm string) resolve.Fetch[content.Story] {
	return func(ctx context.Context, locationIDs []string, limit int) ([]content.Story, error) {
		return a.store.ListStories(ctx, storage.ContentQuery{
			LocationIDs: locationIDs,
			Limit:       limit,
			SearchTerm:  searchTerm,
		})
	}
}

func (a *Assembler) fetchBusinesses(searchTerm string) resolve.Fetch[content.Business] {
	return func(ctx context.Context, locationIDs []string, limit int) ([]content.Business, error) {
		return a.store.ListBusinesses(ctx, storage.ContentQuery{
			LocationIDs: locationIDs,
			Limit:       limit,
			SearchTerm:  searchTerm,
		})
	}
}

// fetchEvents intentionally omits the type/category filters: they narrow
// partition membership after classification, not fetch scope.
func (a *Assembler) fetchEvents(searchTerm string) resolve.Fetch[content.EventRecord] {
	return func(ctx context.Context, locationIDs []string, limit int) ([]content.EventRecord, error) {
		return a.store.ListEvents(ctx, storage.ContentQuery{
			LocationIDs: locationIDs,
			Limit:       limit,
			SearchTerm:  searchTerm,
		})
	}
}

func (a *Assembler) fetchMedia(searchTerm string) resolve.Fetch[content.MediaItem] {
	return func(ctx context.Context, locationIDs []string, limit int) ([]content.MediaItem, error) {
		return a.store.ListMedia(ctx, storage.ContentQuery{
			LocationIDs: locationIDs,
			Limit:       limit,
			SearchTerm:  searchTerm,
		})
	}
}

func seenFeatured(featured []content.EventRecord, id string) bool {
	for _, record := range featured {
		if record.ID == id {
			return true
		}
	}
	return false
}
