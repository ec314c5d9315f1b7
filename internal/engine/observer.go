package engine

import (
	"time"

	"github.com/leengari/minidb/internal/request"
)

// EventType represents different lifecycle phases in request execution
type EventType string

const (
	EventParseStart EventType = "parse_start"
	EventParseEnd   EventType = "parse_end"
	EventParseError EventType = "parse_error"
	EventExecStart  EventType = "exec_start"
	EventExecEnd    EventType = "exec_end"
	EventExecError  EventType = "exec_error"
)

// Event represents a lifecycle event in request execution
type Event struct {
	Type      EventType     // Type of event
	RequestID string        // Request ID for tracing
	Kind      request.Kind  // Request kind, empty before parsing completes
	Table     string        // Target table, empty before parsing completes
	Timestamp time.Time     // When the event occurred
	Duration  time.Duration // Execution time, set on exec_end and exec_error
	Err       error         // Failure, set on parse_error and exec_error
	Result    *Result       // Outcome, set on exec_end
	Data      any           // Phase-specific data (e.g. command text)
}

// Observer interface for event subscribers
// Observers receive events at major execution phases
type Observer interface {
	OnEvent(event Event)
}
