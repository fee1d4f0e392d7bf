// Package sqlite provides the SQLite-backed directory content store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/emborough/localpages/internal/content"
	"github.com/emborough/localpages/internal/platform/storage/sqlitemigrate"
	"github.com/emborough/localpages/internal/storage"
	"github.com/emborough/localpages/internal/storage/sqlite/migrations"
)

// Store persists directory content in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite directory store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateLocation inserts one location record.
func (s *Store) CreateLocation(ctx context.Context, loc content.Location) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id := strings.TrimSpace(loc.ID)
	name := strings.TrimSpace(loc.Name)
	slug := strings.TrimSpace(loc.Slug)
	if id == "" {
		return fmt.Errorf("location id is required")
	}
	if name == "" {
		return fmt.Errorf("location name is required")
	}
	if slug == "" {
		return fmt.Errorf("location slug is required")
	}

	var parentID any
	if trimmed := strings.TrimSpace(loc.ParentID); trimmed != "" {
		parentID = trimmed
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO locations (id, name, slug, parent_id) VALUES (?, ?, ?, ?)`,
		id, name, slug, parentID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// ListLocations returns every location record.
func (s *Store) ListLocations(ctx context.Context) ([]content.Location, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, slug, COALESCE(parent_id, '') FROM locations ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var locations []content.Location
	for rows.Next() {
		var loc content.Location
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Slug, &loc.ParentID); err != nil {
			return nil, fmt.Errorf("list locations: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}

// CreateStory inserts one story and its location links.
func (s *Store) CreateStory(ctx context.Context, story content.Story) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id := strings.TrimSpace(story.ID)
	title := strings.TrimSpace(story.Title)
	if id == "" {
		return fmt.Errorf("story id is required")
	}
	if title == "" {
		return fmt.Errorf("story title is required")
	}
	publishedAt := story.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = time.Now().UTC()
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO stories (id, title, summary, body, image_url, published_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, title, story.Summary, story.Body, story.ImageURL, toMillis(publishedAt),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return storage.ErrAlreadyExists
			}
			return fmt.Errorf("create story: %w", err)
		}
		return insertLinks(ctx, tx, "story_locations", "story_id", id, story.LocationIDs)
	})
}

// ListStories returns stories matching the query, newest first.
func (s *Store) ListStories(ctx context.Context, query storage.ContentQuery) ([]content.Story, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if query.Limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	sqlText := `SELECT id, title, summary, body, image_url, published_at FROM stories`
	clauses, args := scopeClause("story_locations", "story_id", query.LocationIDs)
	if term := strings.TrimSpace(query.SearchTerm); term != "" {
		clauses = append(clauses, `(title LIKE ? OR summary LIKE ?)`)
		pattern := "%" + term + "%"
		args = append(args, pattern, pattern)
	}
	if len(clauses) > 0 {
		sqlText += " WHERE " + strings.Join(clauses, " AND ")
	}
	sqlText += ` ORDER BY published_at DESC LIMIT ?`
	args = append(args, query.Limit)

	rows, err := s.sqlDB.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	defer rows.Close()

	var stories []content.Story
	var ids []string
	for rows.Next() {
		var story content.Story
		var publishedAt int64
		if err := rows.Scan(&story.ID, &story.Title, &story.Summary, &story.Body, &story.ImageURL, &publishedAt); err != nil {
			return nil, fmt.Errorf("list stories: %w", err)
		}
		story.PublishedAt = fromMillis(publishedAt)
		stories = append(stories, story)
		ids = append(ids, story.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}

	links, err := s.loadLinks(ctx, "story_locations", "story_id", ids)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	for i := range stories {
		stories[i].LocationIDs = links[stories[i].ID]
	}
	return stories, nil
}

// CreateBusiness inserts one business listing and its location links.
func (s *Store) CreateBusiness(ctx context.Context, business content.Business) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id := strings.TrimSpace(business.ID)
	name := strings.TrimSpace(business.Name)
	if id == "" {
		return fmt.Errorf("business id is required")
	}
	if name == "" {
		return fmt.Errorf("business name is required")
	}
	createdAt := business.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO businesses (id, name, summary, category, website, image_url, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, name, business.Summary, business.Category, business.Website, business.ImageURL, toMillis(createdAt),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return storage.ErrAlreadyExists
			}
			return fmt.Errorf("create business: %w", err)
		}
		return insertLinks(ctx, tx, "business_locations", "business_id", id, business.LocationIDs)
	})
}

// ListBusinesses returns business listings matching the query, by name.
func (s *Store) ListBusinesses(ctx context.Context, query storage.ContentQuery) ([]content.Business, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if query.Limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	sqlText := `SELECT id, name, summary, category, website, image_url, created_at FROM businesses`
	clauses, args := scopeClause("business_locations", "business_id", query.LocationIDs)
	if term := strings.TrimSpace(query.SearchTerm); term != "" {
		clauses = append(clauses, `(name LIKE ? OR summary LIKE ? OR category LIKE ?)`)
		pattern := "%" + term + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if len(clauses) > 0 {
		sqlText += " WHERE " + strings.Join(clauses, " AND ")
	}
	sqlText += ` ORDER BY name ASC LIMIT ?`
	args = append(args, query.Limit)

	rows, err := s.sqlDB.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	defer rows.Close()

	var businesses []content.Business
	var ids []string
	for rows.Next() {
		var business content.Business
		var createdAt int64
		if err := rows.Scan(&business.ID, &business.Name, &business.Summary, &business.Category, &business.Website, &business.ImageURL, &createdAt); err != nil {
			return nil, fmt.Errorf("list businesses: %w", err)
		}
		business.CreatedAt = fromMillis(createdAt)
		businesses = append(businesses, business)
		ids = append(ids, business.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}

	links, err := s.loadLinks(ctx, "business_locations", "business_id", ids)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	for i := range businesses {
		businesses[i].LocationIDs = links[businesses[i].ID]
	}
	return businesses, nil
}

// CreateEvent inserts one event record and its location links.
func (s *Store) CreateEvent(ctx context.Context, record content.EventRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id := strings.TrimSpace(record.ID)
	title := strings.TrimSpace(record.Title)
	if id == "" {
		return fmt.Errorf("event id is required")
	}
	if title == "" {
		return fmt.Errorf("event title is required")
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	startDate := ""
	if !record.StartDate.IsZero() {
		startDate = record.StartDate.String()
	}
	endDate := ""
	if !record.EndDate.IsZero() {
		endDate = record.EndDate.String()
	}
	featured := 0
	if record.IsFeatured {
		featured = 1
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO events (id, title, summary, venue, start_date, end_date, start_time,
			                     event_type, category_id, tier, is_featured, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, title, record.Summary, record.Venue, startDate, endDate, record.StartTime,
			record.EventType, record.CategoryID, record.Tier, featured, toMillis(createdAt),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return storage.ErrAlreadyExists
			}
			return fmt.Errorf("create event: %w", err)
		}
		return insertLinks(ctx, tx, "event_locations", "event_id", id, record.LocationIDs)
	})
}

// ListEvents returns event records matching the query in chronological order.
func (s *Store) ListEvents(ctx context.Context, query storage.ContentQuery) ([]content.EventRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if query.Limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	sqlText := `SELECT id, title, summary, venue, start_date, end_date, start_time,
	                   event_type, category_id, tier, is_featured, created_at
	              FROM events`
	clauses, args := scopeClause("event_locations", "event_id", query.LocationIDs)
	if term := strings.TrimSpace(query.SearchTerm); term != "" {
		clauses = append(clauses, `(title LIKE ? OR summary LIKE ? OR venue LIKE ?)`)
		pattern := "%" + term + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if eventType := strings.TrimSpace(query.EventType); eventType != "" {
		clauses = append(clauses, `event_type = ?`)
		args = append(args, eventType)
	}
	if categoryID := strings.TrimSpace(query.CategoryID); categoryID != "" {
		clauses = append(clauses, `category_id = ?`)
		args = append(args, categoryID)
	}
	if len(clauses) > 0 {
		sqlText += " WHERE " + strings.Join(clauses, " AND ")
	}
	sqlText += ` ORDER BY start_date ASC, start_time ASC, created_at ASC LIMIT ?`
	args = append(args, query.Limit)

	rows, err := s.sqlDB.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var records []content.EventRecord
	var ids []string
	for rows.Next() {
		var record content.EventRecord
		var startDate, endDate string
		var featured int
		var createdAt int64
		if err := rows.Scan(&record.ID, &record.Title, &record.Summary, &record.Venue,
			&startDate, &endDate, &record.StartTime,
			&record.EventType, &record.CategoryID, &record.Tier, &featured, &createdAt); err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		record.StartDate = parseStoredDate(record.ID, "start_date", startDate)
		record.EndDate = parseStoredDate(record.ID, "end_date", endDate)
		record.IsFeatured = featured != 0
		record.CreatedAt = fromMillis(createdAt)
		records = append(records, record)
		ids = append(ids, record.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	links, err := s.loadLinks(ctx, "event_locations", "event_id", ids)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	for i := range records {
		records[i].LocationIDs = links[records[i].ID]
	}
	return records, nil
}

// CreateMedia inserts one media item and its location links.
func (s *Store) CreateMedia(ctx context.Context, item content.MediaItem) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id := strings.TrimSpace(item.ID)
	title := strings.TrimSpace(item.Title)
	if id == "" {
		return fmt.Errorf("media id is required")
	}
	if title == "" {
		return fmt.Errorf("media title is required")
	}
	capturedAt := item.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = time.Now().UTC()
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO media (id, title, kind, url, captured_at) VALUES (?, ?, ?, ?, ?)`,
			id, title, item.Kind, item.URL, toMillis(capturedAt),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return storage.ErrAlreadyExists
			}
			return fmt.Errorf("create media: %w", err)
		}
		return insertLinks(ctx, tx, "media_locations", "media_id", id, item.LocationIDs)
	})
}

// ListMedia returns media items matching the query, newest first.
func (s *Store) ListMedia(ctx context.Context, query storage.ContentQuery) ([]content.MediaItem, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if query.Limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	sqlText := `SELECT id, title, kind, url, captured_at FROM media`
	clauses, args := scopeClause("media_locations", "media_id", query.LocationIDs)
	if term := strings.TrimSpace(query.SearchTerm); term != "" {
		clauses = append(clauses, `title LIKE ?`)
		args = append(args, "%"+term+"%")
	}
	if len(clauses) > 0 {
		sqlText += " WHERE " + strings.Join(clauses, " AND ")
	}
	sqlText += ` ORDER BY captured_at DESC LIMIT ?`
	args = append(args, query.Limit)

	rows, err := s.sqlDB.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var items []content.MediaItem
	var ids []string
	for rows.Next() {
		var item content.MediaItem
		var capturedAt int64
		if err := rows.Scan(&item.ID, &item.Title, &item.Kind, &item.URL, &capturedAt); err != nil {
			return nil, fmt.Errorf("list media: %w", err)
		}
		item.CapturedAt = fromMillis(capturedAt)
		items = append(items, item)
		ids = append(ids, item.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}

	links, err := s.loadLinks(ctx, "media_locations", "media_id", ids)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	for i := range items {
		items[i].LocationIDs = links[items[i].ID]
	}
	return items, nil
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// scopeClause builds an EXISTS filter restricting records to those linked to
// any of the location ids. A nil slice means unscoped.
func scopeClause(linkTable, idColumn string, locationIDs []string) ([]string, []any) {
	if locationIDs == nil {
		return nil, nil
	}
	if len(locationIDs) == 0 {
		// Scoped to nothing matches nothing.
		return []string{"1 = 0"}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(locationIDs)), ", ")
	clause := fmt.Sprintf(
		`EXISTS (SELECT 1 FROM %s link WHERE link.%s = id AND link.location_id IN (%s))`,
		linkTable, idColumn, placeholders,
	)
	args := make([]any, 0, len(locationIDs))
	for _, locationID := range locationIDs {
		args = append(args, locationID)
	}
	return []string{clause}, args
}

func insertLinks(ctx context.Context, tx *sql.Tx, linkTable, idColumn, recordID string, locationIDs []string) error {
	for _, locationID := range locationIDs {
		locationID = strings.TrimSpace(locationID)
		if locationID == "" {
			continue
		}
		_, err := tx.ExecContext(
			ctx,
			fmt.Sprintf(`INSERT OR IGNORE INTO %s (%s, location_id) VALUES (?, ?)`, linkTable, idColumn),
			recordID, locationID,
		)
		if err != nil {
			return fmt.Errorf("link %s to location %s: %w", recordID, locationID, err)
		}
	}
	return nil
}

func (s *Store) loadLinks(ctx context.Context, linkTable, idColumn string, recordIDs []string) (map[string][]string, error) {
	if len(recordIDs) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(recordIDs)), ", ")
	args := make([]any, 0, len(recordIDs))
	for _, recordID := range recordIDs {
		args = append(args, recordID)
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		fmt.Sprintf(`SELECT %s, location_id FROM %s WHERE %s IN (%s) ORDER BY location_id ASC`,
			idColumn, linkTable, idColumn, placeholders),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("load location links: %w", err)
	}
	defer rows.Close()

	links := make(map[string][]string)
	for rows.Next() {
		var recordID, locationID string
		if err := rows.Scan(&recordID, &locationID); err != nil {
			return nil, fmt.Errorf("load location links: %w", err)
		}
		links[recordID] = append(links[recordID], locationID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load location links: %w", err)
	}
	return links, nil
}

// parseStoredDate tolerates malformed stored dates: a record with a bad date
// is returned with a zero date and excluded later by the partitioner.
func parseStoredDate(recordID, column, value string) content.Date {
	if value == "" {
		return content.Date{}
	}
	parsed, err := content.ParseDate(value)
	if err != nil {
		log.Printf("event %s has malformed %s %q: %v", recordID, column, value, err)
		return content.Date{}
	}
	return parsed
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ storage.Store = (*Store)(nil)
