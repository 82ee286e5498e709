package server

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hollisk/backoffice/internal/database"
	"github.com/hollisk/backoffice/internal/model"
)

func setupTestServer(t *testing.T) http.Handler {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(db, Config{ExportDir: t.TempDir()}, logger)
	return srv.Router()
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	router := setupTestServer(t)
	rec := doJSON(t, router, "GET", "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestReportCreateAndList(t *testing.T) {
	router := setupTestServer(t)

	rec := doJSON(t, router, "POST", "/api/reports", map[string]any{
		"title":  "Weekly Ops",
		"type":   "summary",
		"data":   map[string]any{"incidents": 3},
		"userId": "user-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}

	var created model.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == 0 || created.Title != "Weekly Ops" {
		t.Errorf("created = %+v", created)
	}

	rec = doJSON(t, router, "GET", "/api/reports?type=summary", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var reports []model.Report
	json.Unmarshal(rec.Body.Bytes(), &reports)
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}

	// A type with no matches returns an empty array, not null.
	rec = doJSON(t, router, "GET", "/api/reports?type=daily", nil)
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("empty list body = %q, want []", rec.Body.String())
	}
}

func TestReportCreateValidation(t *testing.T) {
	router := setupTestServer(t)

	rec := doJSON(t, router, "POST", "/api/reports", map[string]any{"type": "daily"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing title: status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, "GET", "/api/reports?startDate=not-a-date", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad startDate: status = %d, want 400", rec.Code)
	}
}

func TestReportExportCSV(t *testing.T) {
	router := setupTestServer(t)

	doJSON(t, router, "POST", "/api/reports", map[string]any{"title": "Q1", "type": "daily"})
	doJSON(t, router, "POST", "/api/reports", map[string]any{"title": "Q2", "type": "daily"})

	rec := doJSON(t, router, "GET", "/api/reports/export/csv", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	records, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2", len(records))
	}
	// Newest first, as in the list view.
	if records[1][0] != "Q2" || records[2][0] != "Q1" {
		t.Errorf("rows = %v", records[1:])
	}
}

func TestReportExportPDF(t *testing.T) {
	router := setupTestServer(t)

	doJSON(t, router, "POST", "/api/reports", map[string]any{"title": "Q1", "type": "daily"})

	rec := doJSON(t, router, "GET", "/api/reports/export/pdf", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d, body %s", rec.Code, rec.Body)
	}

	var out struct {
		Filename string `json:"filename"`
		URL      string `json:"url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode export response: %v", err)
	}
	if !strings.HasSuffix(out.Filename, ".pdf") {
		t.Errorf("filename = %q", out.Filename)
	}
	if out.URL != "/exports/"+out.Filename {
		t.Errorf("url = %q", out.URL)
	}

	// The generated file is downloadable through the router.
	rec = doJSON(t, router, "GET", out.URL, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("download status = %d", rec.Code)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("downloaded file is not a PDF")
	}
}

func TestBackupCreateRestoreFlow(t *testing.T) {
	router := setupTestServer(t)

	rec := doJSON(t, router, "POST", "/api/backups/create", map[string]any{"userId": "user-1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	var created model.Backup
	json.Unmarshal(rec.Body.Bytes(), &created)
	if created.Status != model.BackupStatusCompleted {
		t.Errorf("status = %q, want completed", created.Status)
	}

	rec = doJSON(t, router, "POST", "/api/backups/restore", map[string]any{
		"backupId": created.ID,
		"userId":   "user-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("restore status = %d, body %s", rec.Code, rec.Body)
	}

	// Restore leaves a log entry behind.
	rec = doJSON(t, router, "GET", "/api/logs?level=info", nil)
	var logs []model.Log
	json.Unmarshal(rec.Body.Bytes(), &logs)
	if len(logs) != 1 {
		t.Fatalf("got %d logs, want 1", len(logs))
	}
	if !strings.Contains(logs[0].Message, created.BackupName) {
		t.Errorf("log message = %q", logs[0].Message)
	}

	// And the user has both notifications.
	rec = doJSON(t, router, "GET", "/api/notifications?userId=user-1", nil)
	var notifications []model.Notification
	json.Unmarshal(rec.Body.Bytes(), &notifications)
	if len(notifications) != 2 {
		t.Errorf("got %d notifications, want 2", len(notifications))
	}
}

func TestBackupRestoreUnknownID(t *testing.T) {
	router := setupTestServer(t)

	rec := doJSON(t, router, "POST", "/api/backups/restore", map[string]any{
		"backupId": 777,
		"userId":   "user-1",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] == "" {
		t.Error("expected error message in body")
	}

	// No side effects from the failed restore.
	rec = doJSON(t, router, "GET", "/api/logs", nil)
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("logs = %s, want []", rec.Body.String())
	}
}

func TestLogEndpoints(t *testing.T) {
	router := setupTestServer(t)

	rec := doJSON(t, router, "POST", "/api/logs", map[string]any{
		"level":   "error",
		"message": "disk full",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, router, "GET", "/api/logs?level=error", nil)
	var logs []model.Log
	json.Unmarshal(rec.Body.Bytes(), &logs)
	if len(logs) != 1 || logs[0].Message != "disk full" {
		t.Errorf("error logs = %+v", logs)
	}

	rec = doJSON(t, router, "GET", "/api/logs?level=info", nil)
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("info logs = %s, want []", rec.Body.String())
	}

	rec = doJSON(t, router, "POST", "/api/logs", map[string]any{"level": "fatal", "message": "x"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad level: status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, "GET", "/api/logs?limit=abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit: status = %d, want 400", rec.Code)
	}
}

func TestNotificationEndpoints(t *testing.T) {
	router := setupTestServer(t)

	// Seed a notification through a backup create.
	doJSON(t, router, "POST", "/api/backups/create", map[string]any{"userId": "user-1"})

	rec := doJSON(t, router, "GET", "/api/notifications/unread?userId=user-1", nil)
	var unread []model.Notification
	json.Unmarshal(rec.Body.Bytes(), &unread)
	if len(unread) != 1 {
		t.Fatalf("got %d unread, want 1", len(unread))
	}

	path := fmt.Sprintf("/api/notifications/%d", unread[0].ID)
	for i := 0; i < 2; i++ {
		rec = doJSON(t, router, "PATCH", path, map[string]any{"is_read": true})
		if rec.Code != http.StatusOK {
			t.Fatalf("mark read (pass %d): status = %d", i+1, rec.Code)
		}
		var n model.Notification
		json.Unmarshal(rec.Body.Bytes(), &n)
		if !n.IsRead {
			t.Errorf("pass %d: is_read = false, want true", i+1)
		}
	}

	rec = doJSON(t, router, "GET", "/api/notifications/unread?userId=user-1", nil)
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("unread after mark = %s, want []", rec.Body.String())
	}

	rec = doJSON(t, router, "PATCH", "/api/notifications/9999", map[string]any{"is_read": true})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, router, "GET", "/api/notifications", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing userId: status = %d, want 400", rec.Code)
	}
}

func TestDashboardPages(t *testing.T) {
	router := setupTestServer(t)

	for _, path := range []string{"/", "/reports", "/backups", "/logs"} {
		rec := doJSON(t, router, "GET", path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: status = %d, want 200", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Backoffice") {
			t.Errorf("GET %s: page missing layout", path)
		}
	}
}
