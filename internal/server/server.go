package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hollisk/backoffice/internal/backup"
	"github.com/hollisk/backoffice/internal/handler"
	"github.com/hollisk/backoffice/internal/middleware"
	"github.com/hollisk/backoffice/internal/store"
	"github.com/hollisk/backoffice/internal/web"
)

// Config holds server wiring options.
type Config struct {
	// ExportDir receives generated PDF exports and is served under /exports/.
	ExportDir string
	// Executor performs the storage work for backup creation.
	Executor backup.Executor
}

type Server struct {
	db            *sql.DB
	reportH       *handler.ReportHandler
	backupH       *handler.BackupHandler
	logH          *handler.LogHandler
	notificationH *handler.NotificationHandler
	webH          *web.Handler
	exportDir     string
	logger        *slog.Logger
}

func New(db *sql.DB, cfg Config, logger *slog.Logger) *Server {
	reportStore := store.NewReportStore(db)
	backupStore := store.NewBackupStore(db)
	logStore := store.NewLogStore(db)
	notificationStore := store.NewNotificationStore(db)

	exec := cfg.Executor
	if exec == nil {
		exec = backup.SyntheticExecutor{}
	}
	backupMgr := backup.NewManager(backupStore, logStore, notificationStore, exec,
		logger.With("component", "backup"))

	return &Server{
		db:            db,
		reportH:       handler.NewReportHandler(reportStore, cfg.ExportDir, logger.With("component", "report")),
		backupH:       handler.NewBackupHandler(backupStore, backupMgr, logger.With("component", "backup_handler")),
		logH:          handler.NewLogHandler(logStore),
		notificationH: handler.NewNotificationHandler(notificationStore),
		webH:          web.NewHandler(logger.With("component", "web")),
		exportDir:     cfg.ExportDir,
		logger:        logger,
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Reports API
	mux.HandleFunc("GET /api/reports", s.reportH.List)
	mux.HandleFunc("POST /api/reports", s.reportH.Create)
	mux.HandleFunc("GET /api/reports/export/pdf", s.reportH.ExportPDF)
	mux.HandleFunc("GET /api/reports/export/csv", s.reportH.ExportCSV)

	// Backups API
	mux.HandleFunc("GET /api/backups", s.backupH.List)
	mux.HandleFunc("POST /api/backups/create", s.backupH.Create)
	mux.HandleFunc("POST /api/backups/restore", s.backupH.Restore)

	// Logs API
	mux.HandleFunc("GET /api/logs", s.logH.List)
	mux.HandleFunc("POST /api/logs", s.logH.Create)

	// Notifications API
	mux.HandleFunc("GET /api/notifications", s.notificationH.List)
	mux.HandleFunc("GET /api/notifications/unread", s.notificationH.ListUnread)
	mux.HandleFunc("PATCH /api/notifications/{id}", s.notificationH.MarkRead)

	// Generated exports
	mux.Handle("GET /exports/", http.StripPrefix("/exports/", http.FileServer(http.Dir(s.exportDir))))

	mux.HandleFunc("GET /health", s.healthHandler)

	// Dashboard views
	mux.HandleFunc("GET /", s.webH.ReportsPage)
	mux.HandleFunc("GET /reports", s.webH.ReportsPage)
	mux.HandleFunc("GET /backups", s.webH.BackupsPage)
	mux.HandleFunc("GET /logs", s.webH.LogsPage)

	return middleware.AccessLog(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
