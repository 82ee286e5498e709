package model

import "time"

type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// ValidNotificationType reports whether t is one of the accepted notification types.
func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationSuccess, NotificationInfo, NotificationWarning, NotificationError:
		return true
	}
	return false
}

type Notification struct {
	ID        int64            `json:"id"`
	UserID    string           `json:"user_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
