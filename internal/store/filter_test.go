package store

import (
	"errors"
	"testing"
	"time"

	"github.com/hollisk/backoffice/internal/apperr"
)

func TestParseReportFilter(t *testing.T) {
	f, err := ParseReportFilter("daily", "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if f.Type != "daily" {
		t.Errorf("type = %q, want daily", f.Type)
	}
	wantStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if f.Start == nil || !f.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", f.Start, wantStart)
	}
	// A date-only end bound covers the whole named day but not the next one.
	wantEnd := time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC)
	if f.End == nil || !f.End.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", f.End, wantEnd)
	}
}

func TestParseReportFilterEmpty(t *testing.T) {
	f, err := ParseReportFilter("", "", "")
	if err != nil {
		t.Fatalf("parse empty filter: %v", err)
	}
	if f.Type != "" || f.Start != nil || f.End != nil {
		t.Errorf("empty filter should be unconstrained, got %+v", f)
	}
}

func TestParseReportFilterRFC3339(t *testing.T) {
	f, err := ParseReportFilter("", "2024-01-01T06:30:00Z", "2024-01-02T18:00:00Z")
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if f.Start == nil || f.Start.Hour() != 6 {
		t.Errorf("start = %v, want 06:30", f.Start)
	}
	// Full timestamps are taken as-is, no end-of-day extension.
	wantEnd := time.Date(2024, 1, 2, 18, 0, 0, 0, time.UTC)
	if f.End == nil || !f.End.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", f.End, wantEnd)
	}
}

func TestParseReportFilterBadDate(t *testing.T) {
	if _, err := ParseReportFilter("", "yesterday", ""); err == nil {
		t.Error("expected error for bad startDate")
	}
	_, err := ParseReportFilter("", "", "01/02/2024")
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestParseLogFilterDefaults(t *testing.T) {
	f, err := ParseLogFilter("", "", "")
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if f.Limit != DefaultLogLimit {
		t.Errorf("limit = %d, want %d", f.Limit, DefaultLogLimit)
	}
}

func TestParseLogFilterBadLimit(t *testing.T) {
	for _, bad := range []string{"abc", "-5", "0", "1.5"} {
		_, err := ParseLogFilter("", "", bad)
		var ve *apperr.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("limit %q: expected ValidationError, got %v", bad, err)
		}
	}
}

func TestParseLogFilterExplicitLimit(t *testing.T) {
	f, err := ParseLogFilter("error", "disk", "10")
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if f.Level != "error" || f.Search != "disk" || f.Limit != 10 {
		t.Errorf("filter = %+v", f)
	}
}
