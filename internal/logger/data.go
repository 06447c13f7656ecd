package logger

import (
	"sync"

	"go.uber.org/zap"
)

// Logger provides leveled logging tagged by component.
type Logger struct {
	MinLevel LogLevel
	mu       sync.Mutex
	base     *zap.SugaredLogger
}

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)
