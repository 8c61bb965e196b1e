// Package web embeds the dashboard's templates and static assets into
// the binary so the server ships as a single file.
package web

import "embed"

// TemplatesFS holds the dashboard page and its HTMX partials.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds the stylesheet and the chart-rendering script.
//
//go:embed static/*
var StaticFS embed.FS
