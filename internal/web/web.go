// Package web serves the three dashboard views. The pages are thin shells:
// all data comes from the JSON API via page scripts, and the header badge
// polls the unread notification count on a fixed interval.
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

type Handler struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

type pageData struct {
	Title  string
	Active string
}

func NewHandler(logger *slog.Logger) *Handler {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"reports", "backups", "logs"} {
		pages[name] = template.Must(template.ParseFS(templateFS,
			"templates/layout.html", "templates/"+name+".html"))
	}
	return &Handler{pages: pages, logger: logger}
}

func (h *Handler) ReportsPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/reports" {
		http.NotFound(w, r)
		return
	}
	h.render(w, "reports", pageData{Title: "Reports", Active: "reports"})
}

func (h *Handler) BackupsPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "backups", pageData{Title: "Backups", Active: "backups"})
}

func (h *Handler) LogsPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "logs", pageData{Title: "Logs & Notifications", Active: "logs"})
}

func (h *Handler) render(w http.ResponseWriter, page string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.pages[page].ExecuteTemplate(w, "layout", data); err != nil {
		h.logger.Error("render page", "page", page, "error", err)
	}
}
