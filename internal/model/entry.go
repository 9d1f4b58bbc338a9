package model

import (
	"fmt"
	"time"
)

// Level is the severity of a journal entry.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Entry is one line of the run journal.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
}

// String renders the entry as "[timestamp] [LEVEL] message".
func (e Entry) String() string {
	return fmt.Sprintf("[%s] [%s] %s", e.Time.UTC().Format(time.RFC3339), upper(e.Level), e.Message)
}

func upper(l Level) string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
