package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/text/message"
)

// Home renders the citywide landing page.
func Home(view HomeView, loc *message.Printer) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="areas"><h2>%s</h2>`,
			templ.EscapeString(loc.Sprintf("Neighborhoods"))); err != nil {
			return err
		}
		if len(view.Areas) == 0 {
			if err := EmptyState(loc.Sprintf("Nothing here yet")).Render(context.Background(), w); err != nil {
				return err
			}
		}
		for _, area := range view.Areas {
			if _, err := fmt.Fprintf(w, `<div class="area"><h3>%s</h3><nav>`,
				templ.EscapeString(area.Name)); err != nil {
				return err
			}
			for _, hood := range area.Neighborhoods {
				if _, err := fmt.Fprintf(w, `<a href="%s">%s</a>`,
					templ.EscapeString(hood.URL), templ.EscapeString(hood.Name)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</nav></div>`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</section>`); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, `<section class="stories"><h2>%s</h2>`,
			templ.EscapeString(loc.Sprintf("Local stories"))); err != nil {
			return err
		}
		for _, story := range view.Stories {
			if _, err := fmt.Fprintf(w,
				`<article class="story-card"><h3>%s</h3><time>%s</time><p>%s</p></article>`,
				templ.EscapeString(story.Title), templ.EscapeString(story.Published),
				templ.EscapeString(story.Summary)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</section>`); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, `<section class="events"><h2>%s</h2>`,
			templ.EscapeString(loc.Sprintf("Around the city"))); err != nil {
			return err
		}
		if err := writeEventGroup(w, "upcoming", loc.Sprintf("Upcoming events"), view.Upcoming); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
	return Layout(loc.Sprintf("Neighborhoods"), view.Lang, body)
}
