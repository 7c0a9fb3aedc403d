// Package web holds the page templates for the registration form.
package web

import (
	"embed"
	"html/template"
	"time"
)

// Page template names
const (
	PageForm      = "form_page"
	PageSubmitted = "submitted_page"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates
func Templates() *template.Template {
	funcs := template.FuncMap{
		"currentYear": func() int { return time.Now().Year() },
		"skillLevels": func() []string { return []string{"0", "1", "2", "3", "4", "5"} },
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}
