package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hollisk/backoffice/internal/model"
	"github.com/hollisk/backoffice/internal/store"
)

type LogHandler struct {
	logs *store.LogStore
}

func NewLogHandler(ls *store.LogStore) *LogHandler {
	return &LogHandler{logs: ls}
}

func (h *LogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := store.ParseLogFilter(q.Get("level"), q.Get("search"), q.Get("limit"))
	if err != nil {
		writeError(w, err)
		return
	}

	logs, err := h.logs.List(filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list logs"})
		return
	}
	if logs == nil {
		logs = []model.Log{}
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *LogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Level   model.LogLevel  `json:"level"`
		Message string          `json:"message"`
		Context json.RawMessage `json:"context"`
		UserID  string          `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if !model.ValidLogLevel(req.Level) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "level must be info, warning, or error"})
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message is required"})
		return
	}

	var userID *string
	if req.UserID != "" {
		userID = &req.UserID
	}

	entry, err := h.logs.Create(req.Level, req.Message, req.Context, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create log"})
		return
	}

	writeJSON(w, http.StatusOK, entry)
}
