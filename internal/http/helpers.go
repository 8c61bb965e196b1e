package http

import (
	"html/template"
	"net/http"
	"strings"

	"salesdash/internal/core"
)

// parseCategory extracts the category query parameter. An absent
// parameter falls back to the default selection; anything else is passed
// through verbatim so the view layer can flag unknown categories.
func parseCategory(r *http.Request) core.Category {
	raw := sanitizeInput(r.URL.Query().Get("category"))
	if raw == "" {
		return core.DefaultCategory
	}
	return core.Category(raw)
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func htmlEscape(s string) string {
	return template.HTMLEscapeString(s)
}
