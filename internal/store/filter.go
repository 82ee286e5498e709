package store

import (
	"strconv"
	"time"

	"github.com/hollisk/backoffice/internal/apperr"
)

// DefaultLogLimit caps log list queries when the caller gives no limit.
const DefaultLogLimit = 50

// ReportFilter constrains report list queries. Nil bounds are unconstrained;
// both bounds are inclusive. An inverted range yields an empty result, not an
// error.
type ReportFilter struct {
	Type  string
	Start *time.Time
	End   *time.Time
}

// LogFilter constrains log list queries. Level is an exact match pushed to the
// store; Search is a case-insensitive substring match on message applied in
// memory after retrieval.
type LogFilter struct {
	Level  string
	Search string
	Limit  int
}

// ParseReportFilter builds a ReportFilter from raw query values. Dates accept
// YYYY-MM-DD or RFC 3339; empty values impose no constraint.
func ParseReportFilter(reportType, startDate, endDate string) (ReportFilter, error) {
	f := ReportFilter{Type: reportType}

	if startDate != "" {
		t, _, err := parseDate(startDate)
		if err != nil {
			return f, apperr.Validation("invalid startDate %q", startDate)
		}
		f.Start = &t
	}

	if endDate != "" {
		t, dateOnly, err := parseDate(endDate)
		if err != nil {
			return f, apperr.Validation("invalid endDate %q", endDate)
		}
		// A bare date as upper bound covers the whole day it names.
		if dateOnly {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		f.End = &t
	}

	return f, nil
}

// ParseLogFilter builds a LogFilter from raw query values. A non-numeric or
// non-positive limit is rejected rather than coerced to the default; an empty
// limit means DefaultLogLimit.
func ParseLogFilter(level, search, limit string) (LogFilter, error) {
	f := LogFilter{Level: level, Search: search, Limit: DefaultLogLimit}

	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			return f, apperr.Validation("limit must be a positive integer, got %q", limit)
		}
		f.Limit = n
	}

	return f, nil
}

func parseDate(s string) (t time.Time, dateOnly bool, err error) {
	if t, err = time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), true, nil
	}
	if t, err = time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), false, nil
	}
	return time.Time{}, false, err
}
