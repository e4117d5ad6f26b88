package server

import (
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// handleIndex serves the dashboard page. The page talks to the /api routes
// for everything else.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.sessions.get(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := dashboardTmpl.Execute(w, map[string]any{
		"AIEnabled": s.aiEnabled,
	})
	if err != nil {
		zap.L().Error("render dashboard", zap.Error(err))
	}
}
