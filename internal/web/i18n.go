package web

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// langParam is the query parameter used to select a language.
const langParam = "lang"

var supportedLanguages = []language.Tag{
	language.English,
	language.Spanish,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

// resolveLanguage determines the best display language for the request,
// preferring an explicit lang param over the Accept-Language header.
func resolveLanguage(r *http.Request) language.Tag {
	if r == nil {
		return supportedLanguages[0]
	}
	if value := strings.TrimSpace(r.URL.Query().Get(langParam)); value != "" {
		if tag, err := language.Parse(value); err == nil {
			matched, _, _ := languageMatcher.Match(tag)
			return matched
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			matched, _, _ := languageMatcher.Match(tags...)
			return matched
		}
	}
	return supportedLanguages[0]
}

func newPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

func init() {
	for key, translation := range map[string]string{
		"Local stories":        "Historias locales",
		"Businesses":           "Negocios",
		"Events":               "Eventos",
		"Photos & video":       "Fotos y video",
		"Featured events":      "Eventos destacados",
		"Happening now":        "Sucediendo ahora",
		"Upcoming events":      "Próximos eventos",
		"Past events":          "Eventos pasados",
		"Showing results from %s": "Mostrando resultados de %s",
		"No results found":     "No se encontraron resultados",
		"Nothing here yet":     "Aún no hay nada aquí",
		"Load more":            "Cargar más",
		"Search":               "Buscar",
		"Search this neighborhood": "Buscar en este vecindario",
		"Neighborhoods":        "Vecindarios",
		"Around the city":      "Por la ciudad",
		"Back to %s":           "Volver a %s",
		"Nearby":               "Cerca",
	} {
		if err := message.SetString(language.Spanish, key, translation); err != nil {
			panic(err)
		}
	}
}
