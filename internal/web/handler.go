// Package web serves the public directory pages over HTTP.
package web

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/emborough/localpages/internal/content"
	"github.com/emborough/localpages/internal/directory"
	"github.com/emborough/localpages/internal/directory/event"
	"github.com/emborough/localpages/internal/directory/reveal"
	"github.com/emborough/localpages/internal/web/templates"
)

// eventPageSize controls how many grid events each "load more" step reveals.
const eventPageSize = 12

// Handler resolves directory pages for HTTP requests.
type Handler struct {
	assembler *directory.Assembler
}

// NewHandler builds the HTTP handler for the directory web server.
func NewHandler(assembler *directory.Assembler) http.Handler {
	h := &Handler{assembler: assembler}
	mux := http.NewServeMux()
	mux.Handle("/healthz", http.HandlerFunc(handleHealthz))
	mux.Handle("/n/", http.HandlerFunc(h.handleNeighborhood))
	mux.Handle("/", http.HandlerFunc(h.handleHome))
	return mux
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page, err := h.assembler.HomePage(r.Context())
	if err != nil {
		log.Printf("resolve home page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	tag := resolveLanguage(r)
	loc := newPrinter(tag)
	view := templates.HomeView{Lang: tag.String()}
	for _, area := range page.Areas {
		group := templates.AreaGroup{Name: area.Area.Name}
		for _, hood := range area.Neighborhoods {
			group.Neighborhoods = append(group.Neighborhoods, templates.LocationLink{
				Name: hood.Name,
				URL:  neighborhoodPath(hood.Slug),
			})
		}
		view.Areas = append(view.Areas, group)
	}
	for _, story := range page.Stories {
		view.Stories = append(view.Stories, storyCard(story))
	}
	for _, record := range page.Upcoming {
		view.Upcoming = append(view.Upcoming, eventCard(record))
	}

	templ.Handler(templates.Home(view, loc)).ServeHTTP(w, r)
}

func (h *Handler) handleNeighborhood(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	slug := strings.Trim(strings.TrimPrefix(r.URL.Path, "/n/"), "/")
	if slug == "" || strings.Contains(slug, "/") {
		http.NotFound(w, r)
		return
	}

	query := r.URL.Query()
	input := directory.PageInput{
		Slug:       slug,
		SearchTerm: strings.TrimSpace(query.Get("q")),
		Filters: event.Filters{
			EventType:  strings.TrimSpace(query.Get("type")),
			CategoryID: strings.TrimSpace(query.Get("category")),
		},
	}

	page, err := h.assembler.NeighborhoodPage(r.Context(), input)
	if errors.Is(err, directory.ErrUnknownLocation) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Printf("resolve neighborhood %s: %v", slug, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	shown := eventPageSize
	if raw := query.Get("count"); raw != "" {
		if parsed, parseErr := strconv.Atoi(raw); parseErr == nil && parsed > 0 {
			shown = parsed
		}
	}
	state := reveal.State{Count: shown}
	visible, hasMore := reveal.Reveal(page.Events.Items, state)

	tag := resolveLanguage(r)
	loc := newPrinter(tag)
	view := h.neighborhoodView(page, input, visible, tag.String())
	view.HasMoreEvents = hasMore
	if hasMore {
		view.LoadMoreURL = loadMoreURL(r.URL, state.Advance(eventPageSize).Count)
	}

	templ.Handler(templates.Neighborhood(view, loc)).ServeHTTP(w, r)
}

func (h *Handler) neighborhoodView(page directory.NeighborhoodPage, input directory.PageInput, visible []content.EventRecord, lang string) templates.NeighborhoodView {
	view := templates.NeighborhoodView{
		Lang:          lang,
		Name:          page.Location.Name,
		SearchTerm:    input.SearchTerm,
		SearchAction:  neighborhoodPath(page.Location.Slug),
		StoriesScope:  sectionScope(page.Stories.ScopeLabel, page.Location.Name),
		BusinessScope: sectionScope(page.Businesses.ScopeLabel, page.Location.Name),
		MediaScope:    sectionScope(page.Media.ScopeLabel, page.Location.Name),
		EventsScope:   sectionScope(page.Events.ScopeLabel, page.Location.Name),
	}
	if page.HasArea {
		view.AreaName = page.Area.Name
		view.AreaURL = neighborhoodPath(page.Area.Slug)
	}
	for _, sibling := range page.Siblings {
		view.Siblings = append(view.Siblings, templates.LocationLink{
			Name: sibling.Name,
			URL:  neighborhoodPath(sibling.Slug),
		})
	}
	for _, story := range page.Stories.Items {
		view.Stories = append(view.Stories, storyCard(story))
	}
	for _, business := range page.Businesses.Items {
		view.Businesses = append(view.Businesses, templates.BusinessCard{
			Name:     business.Name,
			Summary:  business.Summary,
			Category: business.Category,
			Website:  business.Website,
			ImageURL: business.ImageURL,
		})
	}
	for _, item := range page.Media.Items {
		view.Media = append(view.Media, templates.MediaCard{
			Title: item.Title,
			Kind:  item.Kind,
			URL:   item.URL,
		})
	}
	for _, record := range page.Featured {
		view.Featured = append(view.Featured, eventCard(record))
	}
	for _, record := range page.Partitions.Current {
		view.Current = append(view.Current, eventCard(record))
	}
	for _, record := range visible {
		view.Upcoming = append(view.Upcoming, eventCard(record))
	}
	for _, record := range page.Partitions.Past {
		view.Past = append(view.Past, eventCard(record))
	}
	return view
}

func neighborhoodPath(slug string) string {
	return "/n/" + url.PathEscape(slug)
}

// loadMoreURL rebuilds the current page URL with the next reveal count while
// preserving the active search and filter params.
func loadMoreURL(current *url.URL, nextCount int) string {
	query := current.Query()
	query.Set("count", strconv.Itoa(nextCount))
	return (&url.URL{Path: current.Path, RawQuery: query.Encode()}).String()
}

// sectionScope marks a section as widened when its content came from a tier
// other than the viewed location.
func sectionScope(label, locationName string) templates.SectionScope {
	return templates.SectionScope{
		Label:   label,
		Widened: label != "" && label != locationName,
	}
}

func storyCard(story content.Story) templates.StoryCard {
	published := ""
	if !story.PublishedAt.IsZero() {
		published = story.PublishedAt.Format("Jan 2, 2006")
	}
	return templates.StoryCard{
		Title:     story.Title,
		Summary:   story.Summary,
		ImageURL:  story.ImageURL,
		Published: published,
	}
}

func eventCard(record content.EventRecord) templates.EventCard {
	date := ""
	if !record.StartDate.IsZero() {
		date = time.Date(record.StartDate.Year, record.StartDate.Month, record.StartDate.Day, 0, 0, 0, 0, time.UTC).
			Format("Mon, Jan 2")
	}
	return templates.EventCard{
		Title:    record.Title,
		Venue:    record.Venue,
		Date:     date,
		Time:     record.StartTime,
		Featured: record.Tier == content.TierPremium || record.IsFeatured,
	}
}
