package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hollisk/backoffice/internal/export"
	"github.com/hollisk/backoffice/internal/model"
	"github.com/hollisk/backoffice/internal/store"
)

type ReportHandler struct {
	reports   *store.ReportStore
	exportDir string
	logger    *slog.Logger
}

func NewReportHandler(rs *store.ReportStore, exportDir string, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{reports: rs, exportDir: exportDir, logger: logger}
}

func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.listFiltered(w, r)
	if err != nil {
		return
	}
	if reports == nil {
		reports = []model.Report{}
	}
	writeJSON(w, http.StatusOK, reports)
}

func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title  string          `json:"title"`
		Type   string          `json:"type"`
		Data   json.RawMessage `json:"data"`
		UserID string          `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}
	if req.Type == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "type is required"})
		return
	}

	report, err := h.reports.Create(req.Title, req.Type, req.Data, req.UserID)
	if err != nil {
		h.logger.Error("create report", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create report"})
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// ExportPDF renders the filtered reports to a PDF file under the export dir
// and returns its filename and download URL.
func (h *ReportHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	reports, err := h.listFiltered(w, r)
	if err != nil {
		return
	}

	filename, err := export.WritePDF(reports, h.exportDir)
	if err != nil {
		h.logger.Error("export pdf", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"filename": filename,
		"url":      "/exports/" + filename,
	})
}

// ExportCSV serializes the filtered reports and returns the payload inline as
// an attachment; nothing is persisted.
func (h *ReportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	reports, err := h.listFiltered(w, r)
	if err != nil {
		return
	}

	payload, filename, err := export.WriteCSV(reports)
	if err != nil {
		h.logger.Error("export csv", "error", err)
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// listFiltered parses the shared query filter and fetches matching reports.
// On failure it writes the error response and returns a non-nil error.
func (h *ReportHandler) listFiltered(w http.ResponseWriter, r *http.Request) ([]model.Report, error) {
	q := r.URL.Query()
	filter, err := store.ParseReportFilter(q.Get("type"), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		writeError(w, err)
		return nil, err
	}

	reports, err := h.reports.List(filter)
	if err != nil {
		h.logger.Error("list reports", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list reports"})
		return nil, err
	}
	return reports, nil
}
