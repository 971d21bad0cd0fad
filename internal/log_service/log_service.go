package log_service

import "time"

const (
	DebugLevel = "DEBUG"
	InfoLevel  = "INFO"
	WarnLevel  = "WARN"
	ErrorLevel = "ERROR"
)

const (
	DebugLevelValue = iota
	InfoLevelValue
	WarnLevelValue
	ErrorLevelValue
)

// GetLevelValue maps a level name to its ordering value. Unknown levels
// map to DEBUG, the lowest value, so an unknown minimum level filters
// nothing.
func GetLevelValue(level string) int {
	switch level {
	case InfoLevel:
		return InfoLevelValue
	case WarnLevel:
		return WarnLevelValue
	case ErrorLevel:
		return ErrorLevelValue
	default:
		return DebugLevelValue
	}
}

type LogEvent struct {
	Timestamp time.Time
	NodeID    string
	Message   string
	Metadata  map[string]any
}

type LogService interface {
	Debug(event LogEvent)
	Info(event LogEvent)
	Warn(event LogEvent)
	Error(event LogEvent)
}
