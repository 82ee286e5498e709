package model

import "time"

type BackupStatus string

const (
	BackupStatusPending   BackupStatus = "pending"
	BackupStatusCompleted BackupStatus = "completed"
	BackupStatusFailed    BackupStatus = "failed"
)

const BackupTypeManual = "manual"

type Backup struct {
	ID           int64        `json:"id"`
	BackupName   string       `json:"backup_name"`
	BackupType   string       `json:"backup_type"`
	Status       BackupStatus `json:"status"`
	FilePath     string       `json:"file_path"`
	FileSize     int64        `json:"file_size"`
	ErrorMessage string       `json:"error_message,omitempty"`
	CreatedBy    string       `json:"created_by,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
