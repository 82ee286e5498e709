package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hollisk/backoffice/internal/backup"
	"github.com/hollisk/backoffice/internal/model"
	"github.com/hollisk/backoffice/internal/store"
)

type BackupHandler struct {
	backups *store.BackupStore
	manager *backup.Manager
	logger  *slog.Logger
}

func NewBackupHandler(bs *store.BackupStore, m *backup.Manager, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{backups: bs, manager: m, logger: logger}
}

func (h *BackupHandler) List(w http.ResponseWriter, r *http.Request) {
	backups, err := h.backups.List()
	if err != nil {
		h.logger.Error("list backups", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list backups"})
		return
	}
	if backups == nil {
		backups = []model.Backup{}
	}
	writeJSON(w, http.StatusOK, backups)
}

func (h *BackupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	created, err := h.manager.Create(r.Context(), req.UserID)
	if err != nil {
		h.logger.Error("create backup", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BackupID int64  `json:"backupId"`
		UserID   string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	restored, err := h.manager.Restore(r.Context(), req.BackupID, req.UserID)
	if err != nil {
		h.logger.Error("restore backup", "id", req.BackupID, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, restored)
}
