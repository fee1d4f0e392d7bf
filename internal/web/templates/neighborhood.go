package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/text/message"
)

// Neighborhood renders one neighborhood directory page.
func Neighborhood(view NeighborhoodView, loc *message.Printer) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<header class="location-header"><h1>%s</h1>`,
			templ.EscapeString(view.Name)); err != nil {
			return err
		}
		if view.AreaName != "" {
			if _, err := fmt.Fprintf(w, `<a class="area-link" href="%s">%s</a>`,
				templ.EscapeString(view.AreaURL),
				templ.EscapeString(loc.Sprintf("Back to %s", view.AreaName))); err != nil {
				return err
			}
		}
		if len(view.Siblings) > 0 {
			if _, err := fmt.Fprintf(w, `<nav class="siblings"><span>%s</span>`,
				templ.EscapeString(loc.Sprintf("Nearby"))); err != nil {
				return err
			}
			for _, sibling := range view.Siblings {
				if _, err := fmt.Fprintf(w, `<a href="%s">%s</a>`,
					templ.EscapeString(sibling.URL), templ.EscapeString(sibling.Name)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</nav>`); err != nil {
				return err
			}
		}
		if err := writeSearchForm(w, view, loc); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</header>`); err != nil {
			return err
		}

		if err := writeStorySection(w, view, loc); err != nil {
			return err
		}
		if err := writeBusinessSection(w, view, loc); err != nil {
			return err
		}
		if err := writeEventSections(w, view, loc); err != nil {
			return err
		}
		return writeMediaSection(w, view, loc)
	})
	return Layout(view.Name, view.Lang, body)
}

func writeSearchForm(w io.Writer, view NeighborhoodView, loc *message.Printer) error {
	_, err := fmt.Fprintf(w,
		`<form class="search" method="get" action="%s">`+
			`<input type="search" name="q" value="%s" placeholder="%s">`+
			`<button type="submit">%s</button></form>`,
		templ.EscapeString(view.SearchAction),
		templ.EscapeString(view.SearchTerm),
		templ.EscapeString(loc.Sprintf("Search this neighborhood")),
		templ.EscapeString(loc.Sprintf("Search")))
	return err
}

func writeStorySection(w io.Writer, view NeighborhoodView, loc *message.Printer) error {
	if _, err := io.WriteString(w, `<section class="stories">`); err != nil {
		return err
	}
	scopeNote := loc.Sprintf("Showing results from %s", view.StoriesScope.Label)
	if err := writeSectionHeading(w, loc.Sprintf("Local stories"), view.StoriesScope, scopeNote); err != nil {
		return err
	}
	if len(view.Stories) == 0 {
		if err := EmptyState(loc.Sprintf("No results found")).Render(context.Background(), w); err != nil {
			return err
		}
	}
	for _, story := range view.Stories {
		if _, err := fmt.Fprintf(w,
			`<article class="story-card"><h3>%s</h3><time>%s</time><p>%s</p></article>`,
			templ.EscapeString(story.Title), templ.EscapeString(story.Published),
			templ.EscapeString(story.Summary)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</section>`)
	return err
}

func writeBusinessSection(w io.Writer, view NeighborhoodView, loc *message.Printer) error {
	if _, err := io.WriteString(w, `<section class="businesses">`); err != nil {
		return err
	}
	scopeNote := loc.Sprintf("Showing results from %s", view.BusinessScope.Label)
	if err := writeSectionHeading(w, loc.Sprintf("Businesses"), view.BusinessScope, scopeNote); err != nil {
		return err
	}
	if len(view.Businesses) == 0 {
		if err := EmptyState(loc.Sprintf("No results found")).Render(context.Background(), w); err != nil {
			return err
		}
	}
	for _, business := range view.Businesses {
		if _, err := fmt.Fprintf(w,
			`<article class="business-card"><h3>%s</h3><span class="category">%s</span><p>%s</p></article>`,
			templ.EscapeString(business.Name), templ.EscapeString(business.Category),
			templ.EscapeString(business.Summary)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</section>`)
	return err
}

func writeEventSections(w io.Writer, view NeighborhoodView, loc *message.Printer) error {
	if _, err := io.WriteString(w, `<section class="events">`); err != nil {
		return err
	}
	scopeNote := loc.Sprintf("Showing results from %s", view.EventsScope.Label)
	if err := writeSectionHeading(w, loc.Sprintf("Events"), view.EventsScope, scopeNote); err != nil {
		return err
	}

	if len(view.Featured) > 0 {
		if err := writeEventGroup(w, "featured", loc.Sprintf("Featured events"), view.Featured); err != nil {
			return err
		}
	}
	if len(view.Current) > 0 {
		if err := writeEventGroup(w, "current", loc.Sprintf("Happening now"), view.Current); err != nil {
			return err
		}
	}
	if len(view.Upcoming) > 0 {
		if err := writeEventGroup(w, "upcoming", loc.Sprintf("Upcoming events"), view.Upcoming); err != nil {
			return err
		}
	} else if len(view.Featured) == 0 && len(view.Current) == 0 {
		if err := EmptyState(loc.Sprintf("No results found")).Render(context.Background(), w); err != nil {
			return err
		}
	}
	if view.HasMoreEvents {
		if _, err := fmt.Fprintf(w, `<a class="load-more" href="%s">%s</a>`,
			templ.EscapeString(view.LoadMoreURL), templ.EscapeString(loc.Sprintf("Load more"))); err != nil {
			return err
		}
	}
	if len(view.Past) > 0 {
		if err := writeEventGroup(w, "past", loc.Sprintf("Past events"), view.Past); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</section>`)
	return err
}

func writeEventGroup(w io.Writer, class, heading string, cards []EventCard) error {
	if _, err := fmt.Fprintf(w, `<div class="event-group %s"><h3>%s</h3>`,
		templ.EscapeString(class), templ.EscapeString(heading)); err != nil {
		return err
	}
	for _, card := range cards {
		badge := ""
		if card.Featured {
			badge = `<span class="badge">★</span>`
		}
		if _, err := fmt.Fprintf(w,
			`<article class="event-card">%s<h4>%s</h4><time>%s %s</time><span class="venue">%s</span></article>`,
			badge, templ.EscapeString(card.Title), templ.EscapeString(card.Date),
			templ.EscapeString(card.Time), templ.EscapeString(card.Venue)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</div>`)
	return err
}

func writeMediaSection(w io.Writer, view NeighborhoodView, loc *message.Printer) error {
	if _, err := io.WriteString(w, `<section class="media">`); err != nil {
		return err
	}
	scopeNote := loc.Sprintf("Showing results from %s", view.MediaScope.Label)
	if err := writeSectionHeading(w, loc.Sprintf("Photos & video"), view.MediaScope, scopeNote); err != nil {
		return err
	}
	if len(view.Media) == 0 {
		if err := EmptyState(loc.Sprintf("No results found")).Render(context.Background(), w); err != nil {
			return err
		}
	}
	for _, item := range view.Media {
		if _, err := fmt.Fprintf(w,
			`<figure class="media-card %s"><a href="%s">%s</a></figure>`,
			templ.EscapeString(item.Kind), templ.EscapeString(item.URL),
			templ.EscapeString(item.Title)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</section>`)
	return err
}
