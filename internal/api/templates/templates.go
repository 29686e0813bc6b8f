// Package templates embeds the server-rendered views.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Parse loads every view. Each file is addressable by its base name.
func Parse() (*template.Template, error) {
	return template.New("").ParseFS(files, "*.html")
}
