// Package seed populates a directory database with a sample city.
package seed

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/emborough/localpages/internal/content"
	"github.com/emborough/localpages/internal/platform/config"
	"github.com/emborough/localpages/internal/platform/id"
	"github.com/emborough/localpages/internal/storage"
	"github.com/emborough/localpages/internal/storage/sqlite"
)

const defaultDBPath = "localpages.db"

// Config holds the seed command configuration.
type Config struct {
	DBPath string
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup config.EnvLookup) (Config, error) {
	cfg := Config{
		DBPath: config.EnvOrDefault(lookup, []string{"LOCALPAGES_DB_PATH"}, defaultDBPath),
	}

	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Run seeds the sample city into the configured database. Records that
// already exist are skipped so reruns are safe.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	return Populate(ctx, store, out)
}

// Populate writes the sample city into the supplied store.
func Populate(ctx context.Context, store storage.Store, out io.Writer) error {
	today := time.Now()
	created, skipped := 0, 0
	count := func(err error) error {
		if errors.Is(err, storage.ErrAlreadyExists) {
			skipped++
			return nil
		}
		if err != nil {
			return err
		}
		created++
		return nil
	}

	locations := []content.Location{
		{ID: "area-downtown", Name: "Downtown", Slug: "downtown"},
		{ID: "area-harbor", Name: "Harborfront", Slug: "harborfront"},
		{ID: "hood-arts", Name: "Arts District", Slug: "arts-district", ParentID: "area-downtown"},
		{ID: "hood-market", Name: "Market Square", Slug: "market-square", ParentID: "area-downtown"},
		{ID: "hood-pier", Name: "Old Pier", Slug: "old-pier", ParentID: "area-harbor"},
		{ID: "hood-marina", Name: "Marina Walk", Slug: "marina-walk", ParentID: "area-harbor"},
	}
	for _, loc := range locations {
		if err := count(store.CreateLocation(ctx, loc)); err != nil {
			return fmt.Errorf("seed location %s: %w", loc.Slug, err)
		}
	}
	if created == 0 {
		// Content ids are generated, so reseeding an already-populated
		// database would duplicate every record.
		fmt.Fprintln(out, "sample city already present; nothing to do")
		return nil
	}

	stories := []struct {
		title, summary string
		locationIDs    []string
		daysAgo        int
	}{
		{"Mural festival returns to the Arts District", "Twelve new walls get painted this month.", []string{"hood-arts"}, 2},
		{"Market Square farmers expand weekend hours", "Saturday stalls now open until sunset.", []string{"hood-market"}, 5},
		{"Ferry line adds late-night harbor crossings", "Service now runs past midnight on weekends.", []string{"hood-pier", "hood-marina"}, 1},
		{"City approves new bike lanes downtown", "Construction starts next quarter.", nil, 9},
	}
	for _, story := range stories {
		storyID, err := id.NewID()
		if err != nil {
			return fmt.Errorf("seed story id: %w", err)
		}
		err = store.CreateStory(ctx, content.Story{
			ID:          "story-" + storyID,
			Title:       story.title,
			Summary:     story.summary,
			LocationIDs: story.locationIDs,
			PublishedAt: today.AddDate(0, 0, -story.daysAgo),
		})
		if err := count(err); err != nil {
			return fmt.Errorf("seed story: %w", err)
		}
	}

	businesses := []struct {
		name, category string
		locationIDs    []string
	}{
		{"Gallery Ten", "arts", []string{"hood-arts"}},
		{"Square Roast Coffee", "food", []string{"hood-market"}},
		{"Pier Bait & Tackle", "outdoors", []string{"hood-pier"}},
		{"Marina Bistro", "food", []string{"hood-marina"}},
		{"Downtown Print Shop", "services", []string{"hood-arts", "hood-market"}},
	}
	for _, business := range businesses {
		businessID, err := id.NewID()
		if err != nil {
			return fmt.Errorf("seed business id: %w", err)
		}
		err = store.CreateBusiness(ctx, content.Business{
			ID:          "biz-" + businessID,
			Name:        business.name,
			Category:    business.category,
			LocationIDs: business.locationIDs,
		})
		if err := count(err); err != nil {
			return fmt.Errorf("seed business: %w", err)
		}
	}

	events := []struct {
		title, venue, startTime, eventType, tier string
		featured                                 bool
		startIn, runsFor                         int
		locationIDs                              []string
	}{
		{"Open studios night", "Gallery Ten", "18:00", "arts", content.TierPremium, false, 3, 0, []string{"hood-arts"}},
		{"Harbor jazz series", "Pier Stage", "19:30", "music", "", true, 5, 0, []string{"hood-pier"}},
		{"Night market", "Market Square", "17:00", "market", "", false, 1, 2, []string{"hood-market"}},
		{"Boat parade", "Marina Walk", "10:00", "outdoors", "", false, 12, 0, []string{"hood-marina"}},
		{"Street food week", "Downtown", "", "food", "", false, -2, 6, []string{"hood-market", "hood-arts"}},
		{"Spring regatta", "Marina Walk", "09:00", "outdoors", "", false, -20, 1, []string{"hood-marina"}},
	}
	for _, record := range events {
		eventID, err := id.NewID()
		if err != nil {
			return fmt.Errorf("seed event id: %w", err)
		}
		start := content.DateOf(today.AddDate(0, 0, record.startIn))
		end := content.Date{}
		if record.runsFor > 0 {
			end = content.DateOf(today.AddDate(0, 0, record.startIn+record.runsFor))
		}
		err = store.CreateEvent(ctx, content.EventRecord{
			ID:          "ev-" + eventID,
			Title:       record.title,
			Venue:       record.venue,
			StartDate:   start,
			EndDate:     end,
			StartTime:   record.startTime,
			EventType:   record.eventType,
			Tier:        record.tier,
			IsFeatured:  record.featured,
			LocationIDs: record.locationIDs,
		})
		if err := count(err); err != nil {
			return fmt.Errorf("seed event: %w", err)
		}
	}

	media := []struct {
		title, kind string
		locationIDs []string
	}{
		{"Mural walk photo set", "gallery", []string{"hood-arts"}},
		{"Harbor sunrise timelapse", "video", []string{"hood-pier", "hood-marina"}},
		{"Market day snapshots", "gallery", []string{"hood-market"}},
	}
	for _, item := range media {
		mediaID, err := id.NewID()
		if err != nil {
			return fmt.Errorf("seed media id: %w", err)
		}
		err = store.CreateMedia(ctx, content.MediaItem{
			ID:          "media-" + mediaID,
			Title:       item.title,
			Kind:        item.kind,
			LocationIDs: item.locationIDs,
		})
		if err := count(err); err != nil {
			return fmt.Errorf("seed media: %w", err)
		}
	}

	fmt.Fprintf(out, "seeded %d records (%d already present)\n", created, skipped)
	return nil
}
