package server

import (
	"time"

	"github.com/studiowebux/restadmin/internal/types"
)

// maxLogs bounds the in-memory request log
const maxLogs = 1000

// RequestLog represents a handled request
type RequestLog struct {
	Timestamp time.Time     `json:"timestamp"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	Model     string        `json:"model,omitempty"`
	Status    int           `json:"status"`
	Duration  time.Duration `json:"duration"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse acknowledges a write
type MessageResponse struct {
	ID      int64  `json:"id,omitempty"`
	Message string `json:"message"`
}

// ModelsResponse lists the served models with their field definitions
type ModelsResponse struct {
	Models []types.ModelDef `json:"models"`
}
