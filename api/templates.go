package api

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

func (s *Server) setupTemplates() {
	s.router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))
}
