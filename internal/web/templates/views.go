// Package templates renders the directory's HTML pages.
package templates

// StoryCard holds formatted story data for display.
type StoryCard struct {
	Title     string
	Summary   string
	ImageURL  string
	Published string
}

// BusinessCard holds formatted business listing data for display.
type BusinessCard struct {
	Name     string
	Summary  string
	Category string
	Website  string
	ImageURL string
}

// EventCard holds formatted event data for display.
type EventCard struct {
	Title    string
	Venue    string
	Date     string
	Time     string
	Featured bool
}

// MediaCard holds formatted media data for display.
type MediaCard struct {
	Title string
	Kind  string
	URL   string
}

// LocationLink is one navigable location reference.
type LocationLink struct {
	Name string
	URL  string
}

// SectionScope describes where a section's content came from. Widened is set
// when the content was pulled from a broader tier than the viewed location.
type SectionScope struct {
	Label   string
	Widened bool
}

// NeighborhoodView is the full view model for one neighborhood page.
type NeighborhoodView struct {
	Lang         string
	Name         string
	AreaName     string
	AreaURL      string
	Siblings     []LocationLink
	SearchTerm   string
	SearchAction string

	Stories       []StoryCard
	StoriesScope  SectionScope
	Businesses    []BusinessCard
	BusinessScope SectionScope
	Media         []MediaCard
	MediaScope    SectionScope

	Featured    []EventCard
	Current     []EventCard
	Upcoming    []EventCard
	Past        []EventCard
	EventsScope SectionScope

	HasMoreEvents bool
	LoadMoreURL   string
}

// AreaGroup pairs an area heading with its neighborhood links.
type AreaGroup struct {
	Name          string
	Neighborhoods []LocationLink
}

// HomeView is the view model for the citywide landing page.
type HomeView struct {
	Lang     string
	Areas    []AreaGroup
	Stories  []StoryCard
	Upcoming []EventCard
}
