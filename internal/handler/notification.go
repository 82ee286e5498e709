package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hollisk/backoffice/internal/model"
	"github.com/hollisk/backoffice/internal/store"
)

type NotificationHandler struct {
	notifications *store.NotificationStore
}

func NewNotificationHandler(ns *store.NotificationStore) *NotificationHandler {
	return &NotificationHandler{notifications: ns}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *NotificationHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *NotificationHandler) list(w http.ResponseWriter, r *http.Request, unreadOnly bool) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}

	notifications, err := h.notifications.ListForUser(userID, unreadOnly)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list notifications"})
		return
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	writeJSON(w, http.StatusOK, notifications)
}

// MarkRead sets is_read on a notification. The transition is one-way: a
// request carrying is_read=false is rejected rather than reverting.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req struct {
		IsRead *bool `json:"is_read"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.IsRead != nil && !*req.IsRead {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "notifications cannot be marked unread"})
		return
	}

	updated, err := h.notifications.MarkRead(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update notification"})
		return
	}
	if updated == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "notification not found"})
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
