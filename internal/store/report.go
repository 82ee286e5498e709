package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hollisk/backoffice/internal/model"
)

type ReportStore struct {
	db *sql.DB
}

func NewReportStore(db *sql.DB) *ReportStore {
	return &ReportStore{db: db}
}

func (s *ReportStore) Create(title, reportType string, data json.RawMessage, createdBy string) (*model.Report, error) {
	now := time.Now().UTC()
	var dataStr sql.NullString
	if len(data) > 0 {
		dataStr = sql.NullString{String: string(data), Valid: true}
	}
	result, err := s.db.Exec(
		`INSERT INTO reports (title, type, data, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		title, reportType, dataStr, createdBy, now,
	)
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	id, _ := result.LastInsertId()
	return &model.Report{
		ID:        id,
		Title:     title,
		Type:      reportType,
		Data:      data,
		CreatedBy: createdBy,
		CreatedAt: now,
	}, nil
}

// List returns reports matching the filter, newest first.
func (s *ReportStore) List(f ReportFilter) ([]model.Report, error) {
	query := `SELECT id, title, type, data, created_by, created_at FROM reports`
	var conds []string
	var args []any

	if f.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, f.Type)
	}
	if f.Start != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, *f.Start)
	}
	if f.End != nil {
		conds = append(conds, "created_at <= ?")
		args = append(args, *f.End)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var reports []model.Report
	for rows.Next() {
		var r model.Report
		var data sql.NullString
		if err := rows.Scan(&r.ID, &r.Title, &r.Type, &data, &r.CreatedBy, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		if data.Valid {
			r.Data = json.RawMessage(data.String)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}
