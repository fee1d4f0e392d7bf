package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps a page body in the shared HTML shell.
func Layout(title, lang string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if lang == "" {
			lang = "en"
		}
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="%s"><head><meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>%s</title></head><body><main class="page">`,
			templ.EscapeString(lang), templ.EscapeString(title)); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// EmptyState renders the shared placeholder for sections with no content.
func EmptyState(text string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<p class="empty-state">%s</p>`, templ.EscapeString(text))
		return err
	})
}

func writeSectionHeading(w io.Writer, heading string, scope SectionScope, scopeNote string) error {
	if _, err := fmt.Fprintf(w, `<h2>%s</h2>`, templ.EscapeString(heading)); err != nil {
		return err
	}
	if scope.Widened && scope.Label != "" {
		if _, err := fmt.Fprintf(w, `<p class="scope-note">%s</p>`, templ.EscapeString(scopeNote)); err != nil {
			return err
		}
	}
	return nil
}
