package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/hollisk/backoffice/internal/model"
)

type NotificationStore struct {
	db *sql.DB
}

func NewNotificationStore(db *sql.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

func (s *NotificationStore) Create(userID, title, message string, ntype model.NotificationType) (*model.Notification, error) {
	now := time.Now().UTC()
	result, err := s.db.Exec(
		`INSERT INTO notifications (user_id, title, message, type, is_read, created_at)
		 VALUES (?, ?, ?, ?, 0, ?)`,
		userID, title, message, ntype, now,
	)
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	id, _ := result.LastInsertId()
	return &model.Notification{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      ntype,
		IsRead:    false,
		CreatedAt: now,
	}, nil
}

// ListForUser returns all notifications for a user, newest first. When
// unreadOnly is set, read notifications are excluded.
func (s *NotificationStore) ListForUser(userID string, unreadOnly bool) ([]model.Notification, error) {
	query := `SELECT id, user_id, title, message, type, is_read, created_at
		 FROM notifications WHERE user_id = ?`
	if unreadOnly {
		query += " AND is_read = 0"
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead sets is_read for the notification and returns the updated row.
// Marking an already-read notification again is a no-op. Returns (nil, nil)
// if the id does not exist.
func (s *NotificationStore) MarkRead(id int64) (*model.Notification, error) {
	if _, err := s.db.Exec(`UPDATE notifications SET is_read = 1 WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}

	n := &model.Notification{}
	err := s.db.QueryRow(
		`SELECT id, user_id, title, message, type, is_read, created_at
		 FROM notifications WHERE id = ?`, id,
	).Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get notification %d: %w", id, err)
	}
	return n, nil
}
