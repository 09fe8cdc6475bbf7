// Package web holds the embedded HTML templates and static assets of the
// dashboard.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/GTDGit/gtd_catalog/internal/models"
)

//go:embed templates/*.html static/*
var content embed.FS

// FuncMap returns the helpers available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"price": func(v float64) string {
			return fmt.Sprintf("$%.2f", v)
		},
		"rating": func(v float64) string {
			return fmt.Sprintf("%.1f", v)
		},
		"placeholder": func() string {
			return models.PlaceholderImage
		},
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"selected": func(a, b string) template.HTMLAttr {
			if a == b {
				return "selected"
			}
			return ""
		},
	}
}

// Templates parses every page template.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(content, "templates/*.html")
}

// Static serves the embedded static assets.
func Static() http.FileSystem {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
