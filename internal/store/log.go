package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hollisk/backoffice/internal/model"
)

type LogStore struct {
	db *sql.DB
}

func NewLogStore(db *sql.DB) *LogStore {
	return &LogStore{db: db}
}

func (s *LogStore) Create(level model.LogLevel, message string, context json.RawMessage, userID *string) (*model.Log, error) {
	now := time.Now().UTC()
	var ctxStr sql.NullString
	if len(context) > 0 {
		ctxStr = sql.NullString{String: string(context), Valid: true}
	}
	result, err := s.db.Exec(
		`INSERT INTO logs (level, message, context, user_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		level, message, ctxStr, userID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("create log: %w", err)
	}
	id, _ := result.LastInsertId()
	return &model.Log{
		ID:        id,
		Level:     level,
		Message:   message,
		Context:   context,
		UserID:    userID,
		CreatedAt: now,
	}, nil
}

// List returns logs matching the filter, newest first, capped at f.Limit.
// The level filter runs in SQL; the free-text search runs in memory over the
// retrieved page, so a search can return fewer than Limit rows even when
// older matches exist.
func (s *LogStore) List(f LogFilter) ([]model.Log, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLogLimit
	}

	query := `SELECT id, level, message, context, user_id, created_at FROM logs`
	var args []any
	if f.Level != "" {
		query += " WHERE level = ?"
		args = append(args, f.Level)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	var logs []model.Log
	for rows.Next() {
		var l model.Log
		var ctx sql.NullString
		var userID sql.NullString
		if err := rows.Scan(&l.ID, &l.Level, &l.Message, &ctx, &userID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		if ctx.Valid {
			l.Context = json.RawMessage(ctx.String)
		}
		if userID.Valid {
			l.UserID = &userID.String
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if f.Search == "" {
		return logs, nil
	}

	needle := strings.ToLower(f.Search)
	filtered := logs[:0]
	for _, l := range logs {
		if strings.Contains(strings.ToLower(l.Message), needle) {
			filtered = append(filtered, l)
		}
	}
	return filtered, nil
}
