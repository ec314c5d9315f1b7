package engine

import (
	"log/slog"

	"github.com/leengari/minidb/internal/request"
)

// LoggingObserver is a simple observer that logs all events using structured logging
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent implements the Observer interface
// Failures are logged at warn level, everything else at debug
func (lo *LoggingObserver) OnEvent(event Event) {
	attrs := []any{
		"event", event.Type,
		"request_id", event.RequestID,
	}
	if event.Kind != "" {
		attrs = append(attrs, "kind", event.Kind)
	}
	if event.Table != "" {
		attrs = append(attrs, "table", event.Table)
	}
	if event.Duration > 0 {
		attrs = append(attrs, "duration", event.Duration)
	}

	if event.Type == EventExecError || event.Type == EventParseError {
		lo.logger.Warn("request_failed", append(attrs, "error", event.Err)...)
		return
	}
	if event.Result != nil && event.Result.Kind == request.KindSelect {
		attrs = append(attrs, "rows_returned", len(event.Result.Rows), "scan_type", event.Result.ScanType)
	}
	lo.logger.Debug("request_lifecycle", attrs...)
}
