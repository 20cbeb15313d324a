package types

import (
	"time"
)

// LogEntry carries one HTTP request/response pair from the audit middleware
// to the async logger goroutine.
type LogEntry struct {
	Method          string
	URL             string
	ClientIP        string
	RequestBody     string
	RequestHeaders  string
	ResponseBody    string
	ResponseHeaders string
	StatusCode      int
	CreatedAt       time.Time
}
