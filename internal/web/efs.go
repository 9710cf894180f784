// Package web embeds the HTML pages served by the certifier.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates holds the parsed page templates.
var Templates = template.Must(template.ParseFS(files, "templates/*.html"))
