package model

import (
	"encoding/json"
	"time"
)

type Report struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedBy string          `json:"created_by,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
