package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/emborough/localpages/internal/content"
	"github.com/emborough/localpages/internal/directory/event"
	"github.com/emborough/localpages/internal/storage"
)

type fakeStore struct {
	locations  []content.Location
	stories    map[string][]content.Story
	businesses map[string][]content.Business
	events     map[string][]content.EventRecord
	media      map[string][]content.MediaItem

	eventQueries []storage.ContentQuery
	storyErr     error
}

func scopeKey(locationIDs []string) string {
	if locationIDs == nil {
		return "citywide"
	}
	key := ""
	for _, id := range locationIDs {
		key += id + ","
	}
	return key
}

func (f *fakeStore) CreateLocation(ctx context.Context, loc content.Location) error { return nil }

func (f *fakeStore) ListLocations(ctx context.Context) ([]content.Location, error) {
	return f.locations, nil
}

func (f *fakeStore) ListStories(ctx context.Context, query storage.ContentQuery) ([]content.Story, error) {
	if f.storyErr != nil {
		return nil, f.storyErr
	}
	return f.stories[scopeKey(query.LocationIDs)], nil
}

func (f *fakeStore) ListBusinesses(ctx context.Context, query storage.ContentQuery) ([]content.Business, error) {
	return f.businesses[scopeKey(query.LocationIDs)], nil
}

func (f *fakeStore) ListEvents(ctx context.Context, query storage.ContentQuery) ([]content.EventRecord, error) {
	f.eventQueries = append(f.eventQueries, query)
	return f.events[scopeKey(query.LocationIDs)], nil
}

func (f *fakeStore) ListMedia(ctx context.Context, query storage.ContentQuery) ([]content.MediaItem, error) {
	return f.media[scopeKey(query.LocationIDs)], nil
}

func (f *fakeStore) CreateStory(ctx context.Context, story content.Story) error          { return nil }
func (f *fakeStore) CreateBusiness(ctx context.Context, business content.Business) error { return nil }
func (f *fakeStore) CreateEvent(ctx context.Context, record content.EventRecord) error   { return nil }
func (f *fakeStore) CreateMedia(ctx context.Context, item content.MediaItem) error       { return nil }

var _ storage.Store = (*fakeStore)(nil)

func fixedToday() content.Date {
	return content.NewDate(2025, time.June, 15)
}

func cityLocations() []content.Location {
	return []content.Location{
		{ID: "area-north", Name: "North End", Slug: "north-end"},
		{ID: "n-riverside", Name: "Riverside", Slug: "riverside", ParentID: "area-north"},
		{ID: "n-millbrook", Name: "Millbrook", Slug: "millbrook", ParentID: "area-north"},
	}
}

func TestNeighborhoodPageFallsBackToSiblingScope(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		locations: cityLocations(),
		stories: map[string][]content.Story{
			"n-millbrook,": {{ID: "s1", Title: "Millbrook Market Reopens"}},
		},
	}

	page, err := NewAssembler(store, fixedToday).NeighborhoodPage(context.Background(), PageInput{Slug: "riverside"})
	if err != nil {
		t.Fatalf("neighborhood page: %v", err)
	}

	if page.Stories.ScopeLabel != "North End" {
		t.Fatalf("story scope = %q, want %q", page.Stories.ScopeLabel, "North End")
	}
	if len(page.Stories.Items) != 1 || page.Stories.Items[0].ID != "s1" {
		t.Fatalf("stories = %+v, want s1", page.Stories.Items)
	}
	// Sections with no content anywhere keep the most specific label.
	if page.Businesses.ScopeLabel != "Riverside" {
		t.Fatalf("business scope = %q, want %q", page.Businesses.ScopeLabel, "Riverside")
	}
}

func TestNeighborhoodPageSearchStaysInLocation(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		locations: cityLocations(),
		events: map[string][]content.EventRecord{
			"citywide": {{ID: "e-city", StartDate: content.NewDate(2025, time.July, 1)}},
		},
	}

	page, err := NewAssembler(store, fixedToday).NeighborhoodPage(context.Background(), PageInput{
		Slug:       "riverside",
		SearchTerm: "jazz",
	})
	if err != nil {
		t.Fatalf("neighborhood page: %v", err)
	}

	for _, query := range store.eventQueries {
		if query.LocationIDs == nil {
			t.Fatal("search widened event fetch to citywide")
		}
	}
	if len(page.Events.Items) != 0 {
		t.Fatalf("events = %+v, want none", page.Events.Items)
	}
	if page.Events.ScopeLabel != "Riverside" {
		t.Fatalf("event scope = %q, want %q", page.Events.ScopeLabel, "Riverside")
	}
}

func TestNeighborhoodPageDedupAcrossSections(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		locations: cityLocations(),
		stories: map[string][]content.Story{
			"n-riverside,": {{ID: "shared-1", Title: "Riverside Pool Story"}},
		},
		media: map[string][]content.MediaItem{
			"n-riverside,": {
				{ID: "shared-1", Title: "Riverside Pool Photo"},
				{ID: "m2", Title: "Harbor Sunset"},
			},
		},
	}

	page, err := NewAssembler(store, fixedToday).NeighborhoodPage(context.Background(), PageInput{Slug: "riverside"})
	if err != nil {
		t.Fatalf("neighborhood page: %v", err)
	}

	if len(page.Stories.Items) != 1 {
		t.Fatalf("stories = %d, want 1", len(page.Stories.Items))
	}
	var mediaIDs []string
	for _, item := range page.Media.Items {
		mediaIDs = append(mediaIDs, item.ID)
	}
	if diff := cmp.Diff([]string{"m2"}, mediaIDs); diff != "" {
		t.Fatalf("media mismatch (-want +got):\n%s", diff)
	}
}

func TestNeighborhoodPageFeaturedExcludedFromGrid(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		locations: cityLocations(),
		events: map[string][]content.EventRecord{
			"n-riverside,": {
				{ID: "e-premium", StartDate: content.NewDate(2025, time.July, 1), Tier: content.TierPremium},
				{ID: "e-plain", StartDate: content.NewDate(2025, time.July, 2)},
				{ID: "e-past", StartDate: content.NewDate(2025, time.June, 1)},
			},
		},
	}

	page, err := NewAssembler(store, fixedToday).NeighborhoodPage(context.Background(), PageInput{Slug: "riverside"})
	if err != nil {
		t.Fatalf("neighborhood page: %v", err)
	}

	if len(page.Featured) != 1 || page.Featured[0].ID != "e-premium" {
		t.Fatalf("featured = %+v, want e-premium", page.Featured)
	}
	if len(page.Events.Items) != 1 || page.Events.Items[0].ID != "e-plain" {
		t.Fatalf("grid = %+v, want e-plain only", page.Events.Items)
	}
	if len(page.Partitions.Past) != 1 || page.Partitions.Past[0].ID != "e-past" {
		t.Fatalf("past = %+v, want e-past", page.Partitions.Past)
	}
}

func TestNeighborhoodPageEventFiltersNarrowPartitions(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		locations: cityLocations(),
		events: map[string][]content.EventRecord{
			"n-riverside,": {
				{ID: "e-music", StartDate: content.NewDate(2025, time.July, 1), EventType: "music", Tier: content.TierPremium},
				{ID: "e-food", StartDate: content.NewDate(2025, time.July, 2), EventType: "food", Tier: content.TierPremium},
			},
		},
	}

	page, err := NewAssembler(store, fixedToday).NeighborhoodPage(context.Background(), PageInput{
		Slug:    "riverside",
		Filters: event.Filters{EventType: "food"},
	})
	if err != nil {
		t.Fatalf("neighborhood page: %v", err)
	}

	if len(page.Partitions.Upcoming) != 1 || page.Partitions.Upcoming[0].ID != "e-food" {
		t.Fatalf("upcoming = %+v, want e-food", page.Partitions.Upcoming)
	}
	if len(page.Featured) != 1 || page.Featured[0].ID != "e-food" {
		t.Fatalf("featured = %+v, want e-food", page.Featured)
	}
}

func TestNeighborhoodPageStoryFetchFailureDegrades(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		locations: cityLocations(),
		storyErr:  errors.New("store unavailable"),
		businesses: map[string][]content.Business{
			"n-riverside,": {{ID: "b1", Name: "Corner Bakery"}},
		},
	}

	page, err := NewAssembler(store, fixedToday).NeighborhoodPage(context.Background(), PageInput{Slug: "riverside"})
	if err != nil {
		t.Fatalf("neighborhood page: %v", err)
	}
	if len(page.Stories.Items) != 0 {
		t.Fatalf("stories = %+v, want none", page.Stories.Items)
	}
	if len(page.Businesses.Items) != 1 {
		t.Fatalf("businesses = %+v, want b1", page.Businesses.Items)
	}
}

func TestNeighborhoodPageUnknownSlug(t *testing.T) {
	t.Parallel()

	store := &fakeStore{locations: cityLocations()}
	_, err := NewAssembler(store, fixedToday).NeighborhoodPage(context.Background(), PageInput{Slug: "nowhere"})
	if !errors.Is(err, ErrUnknownLocation) {
		t.Fatalf("err = %v, want ErrUnknownLocation", err)
	}
}

func TestHomePageGroupsAreas(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		locations: cityLocations(),
		stories: map[string][]content.Story{
			"citywide": {{ID: "s1", Title: "City Budget Passes"}},
		},
		events: map[string][]content.EventRecord{
			"citywide": {
				{ID: "e-up", StartDate: content.NewDate(2025, time.July, 1)},
				{ID: "e-now", StartDate: content.NewDate(2025, time.June, 10), EndDate: content.NewDate(2025, time.June, 20)},
				{ID: "e-past", StartDate: content.NewDate(2025, time.May, 1)},
			},
		},
	}

	page, err := NewAssembler(store, fixedToday).HomePage(context.Background())
	if err != nil {
		t.Fatalf("home page: %v", err)
	}

	if len(page.Areas) != 1 || page.Areas[0].Area.ID != "area-north" {
		t.Fatalf("areas = %+v, want area-north", page.Areas)
	}
	if len(page.Areas[0].Neighborhoods) != 2 {
		t.Fatalf("neighborhoods = %d, want 2", len(page.Areas[0].Neighborhoods))
	}
	var upcomingIDs []string
	for _, record := range page.Upcoming {
		upcomingIDs = append(upcomingIDs, record.ID)
	}
	if diff := cmp.Diff([]string{"e-now", "e-up"}, upcomingIDs); diff != "" {
		t.Fatalf("upcoming mismatch (-want +got):\n%s", diff)
	}
}
