// Package backup records the backup/restore lifecycle. The actual backup work
// is delegated to a pluggable Executor so the ledger keeps its
// pending/completed/failed shape regardless of whether the executor fabricates
// a result or produces a real snapshot.
package backup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hollisk/backoffice/internal/apperr"
	"github.com/hollisk/backoffice/internal/model"
	"github.com/hollisk/backoffice/internal/store"
)

// Manager drives backup creation and restore bookkeeping: the ledger row, the
// restore log entry, and the user notifications.
type Manager struct {
	backups       *store.BackupStore
	logs          *store.LogStore
	notifications *store.NotificationStore
	exec          Executor
	logger        *slog.Logger
}

func NewManager(bs *store.BackupStore, ls *store.LogStore, ns *store.NotificationStore, exec Executor, logger *slog.Logger) *Manager {
	return &Manager{
		backups:       bs,
		logs:          ls,
		notifications: ns,
		exec:          exec,
		logger:        logger,
	}
}

// Create runs the executor and records the outcome. The record passes through
// pending within the request, but callers only ever observe the final status.
// One success notification is sent to the initiating user; its failure does
// not undo the backup row.
func (m *Manager) Create(ctx context.Context, userID string) (*model.Backup, error) {
	name := fmt.Sprintf("backup-%d", time.Now().UnixMilli())

	record, err := m.backups.Create(name, userID)
	if err != nil {
		return nil, apperr.Store(err)
	}

	result, err := m.exec.Execute(ctx, name)
	if err != nil {
		if uerr := m.backups.UpdateFailed(record.ID, err.Error()); uerr != nil {
			m.logger.Error("record backup failure", "id", record.ID, "error", uerr)
		}
		return nil, fmt.Errorf("backup %s: %w", name, err)
	}

	if err := m.backups.UpdateCompleted(record.ID, result.FilePath, result.FileSize); err != nil {
		return nil, apperr.Store(err)
	}
	record.Status = model.BackupStatusCompleted
	record.FilePath = result.FilePath
	record.FileSize = result.FileSize

	_, err = m.notifications.Create(userID, "Backup Created",
		fmt.Sprintf("Backup %s created successfully", name), model.NotificationSuccess)
	if err != nil {
		return nil, apperr.Store(err)
	}

	m.logger.Info("backup created", "id", record.ID, "name", name, "size", result.FileSize)
	return record, nil
}

// Restore marks the backup completed, appends one info log entry, and sends
// one notification to the initiating user. Restoring the same backup twice is
// valid and repeats the side effects; the status write is idempotent.
func (m *Manager) Restore(ctx context.Context, backupID int64, userID string) (*model.Backup, error) {
	record, err := m.backups.GetByID(backupID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if record == nil {
		return nil, apperr.NotFound("backup")
	}

	if err := m.backups.MarkRestored(backupID); err != nil {
		return nil, apperr.Store(err)
	}
	record.Status = model.BackupStatusCompleted

	_, err = m.logs.Create(model.LogLevelInfo,
		fmt.Sprintf("Database restored from backup: %s", record.BackupName), nil, &userID)
	if err != nil {
		return nil, apperr.Store(err)
	}

	_, err = m.notifications.Create(userID, "Restore Completed",
		"Database restored successfully", model.NotificationSuccess)
	if err != nil {
		return nil, apperr.Store(err)
	}

	m.logger.Info("backup restored", "id", backupID, "name", record.BackupName)
	return record, nil
}
