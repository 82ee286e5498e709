package model

import (
	"encoding/json"
	"time"
)

type LogLevel string

const (
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
)

// ValidLogLevel reports whether level is one of the accepted log levels.
func ValidLogLevel(level LogLevel) bool {
	switch level {
	case LogLevelInfo, LogLevelWarning, LogLevelError:
		return true
	}
	return false
}

type Log struct {
	ID        int64           `json:"id"`
	Level     LogLevel        `json:"level"`
	Message   string          `json:"message"`
	Context   json.RawMessage `json:"context,omitempty"`
	UserID    *string         `json:"user_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
