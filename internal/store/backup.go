package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/hollisk/backoffice/internal/model"
)

type BackupStore struct {
	db *sql.DB
}

func NewBackupStore(db *sql.DB) *BackupStore {
	return &BackupStore{db: db}
}

// Create inserts a pending backup record.
func (s *BackupStore) Create(name, createdBy string) (*model.Backup, error) {
	now := time.Now().UTC()
	result, err := s.db.Exec(
		`INSERT INTO backups (backup_name, backup_type, status, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		name, model.BackupTypeManual, model.BackupStatusPending, createdBy, now,
	)
	if err != nil {
		return nil, fmt.Errorf("create backup: %w", err)
	}
	id, _ := result.LastInsertId()
	return &model.Backup{
		ID:         id,
		BackupName: name,
		BackupType: model.BackupTypeManual,
		Status:     model.BackupStatusPending,
		CreatedBy:  createdBy,
		CreatedAt:  now,
	}, nil
}

func (s *BackupStore) GetByID(id int64) (*model.Backup, error) {
	b := &model.Backup{}
	var errMsg sql.NullString
	err := s.db.QueryRow(
		`SELECT id, backup_name, backup_type, status, file_path, file_size, error_message, created_by, created_at
		 FROM backups WHERE id = ?`, id,
	).Scan(&b.ID, &b.BackupName, &b.BackupType, &b.Status, &b.FilePath, &b.FileSize, &errMsg, &b.CreatedBy, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get backup %d: %w", id, err)
	}
	b.ErrorMessage = errMsg.String
	return b, nil
}

// List returns all backups, newest first.
func (s *BackupStore) List() ([]model.Backup, error) {
	rows, err := s.db.Query(
		`SELECT id, backup_name, backup_type, status, file_path, file_size, error_message, created_by, created_at
		 FROM backups ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	defer rows.Close()

	var backups []model.Backup
	for rows.Next() {
		var b model.Backup
		var errMsg sql.NullString
		if err := rows.Scan(&b.ID, &b.BackupName, &b.BackupType, &b.Status, &b.FilePath, &b.FileSize, &errMsg, &b.CreatedBy, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan backup: %w", err)
		}
		b.ErrorMessage = errMsg.String
		backups = append(backups, b)
	}
	return backups, rows.Err()
}

// UpdateCompleted marks the backup completed with its file location and size.
func (s *BackupStore) UpdateCompleted(id int64, filePath string, fileSize int64) error {
	_, err := s.db.Exec(
		`UPDATE backups SET status = ?, file_path = ?, file_size = ?, error_message = NULL WHERE id = ?`,
		model.BackupStatusCompleted, filePath, fileSize, id,
	)
	if err != nil {
		return fmt.Errorf("update backup completed: %w", err)
	}
	return nil
}

// UpdateFailed marks the backup failed with the given error message.
func (s *BackupStore) UpdateFailed(id int64, errorMsg string) error {
	_, err := s.db.Exec(
		`UPDATE backups SET status = ?, error_message = ? WHERE id = ?`,
		model.BackupStatusFailed, errorMsg, id,
	)
	if err != nil {
		return fmt.Errorf("update backup failed: %w", err)
	}
	return nil
}

// MarkRestored sets the backup status to completed. Restoring an already
// completed backup is a no-op on status.
func (s *BackupStore) MarkRestored(id int64) error {
	_, err := s.db.Exec(
		`UPDATE backups SET status = ? WHERE id = ?`,
		model.BackupStatusCompleted, id,
	)
	if err != nil {
		return fmt.Errorf("mark backup restored: %w", err)
	}
	return nil
}
