// Package journal collects the human-readable lines of one run. Every entry
// is mirrored to slog as it is written and kept in order for the final
// notification.
package journal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hejijunhao/dailycheckin/internal/model"
)

// Journal is an append-only, ordered list of entries. It is owned by a single
// run and is not safe for concurrent use.
type Journal struct {
	logger  *slog.Logger
	now     func() time.Time
	entries []model.Entry
}

// Option configures a Journal.
type Option func(*Journal)

// WithLogger sets the logger entries are mirrored to. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(j *Journal) { j.logger = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) { j.now = now }
}

// New creates an empty Journal.
func New(opts ...Option) *Journal {
	j := &Journal{logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func (j *Journal) Info(format string, args ...any)  { j.add(model.LevelInfo, format, args...) }
func (j *Journal) Warn(format string, args ...any)  { j.add(model.LevelWarn, format, args...) }
func (j *Journal) Error(format string, args ...any) { j.add(model.LevelError, format, args...) }

// Log appends an entry at an explicit level.
func (j *Journal) Log(level model.Level, format string, args ...any) {
	j.add(level, format, args...)
}

func (j *Journal) add(level model.Level, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	e := model.Entry{Time: j.now(), Level: level, Message: msg}
	j.entries = append(j.entries, e)
	j.logger.Log(context.Background(), slogLevel(level), msg)
}

// Entries returns a copy of the entries in insertion order.
func (j *Journal) Entries() []model.Entry {
	out := make([]model.Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Len returns the number of entries.
func (j *Journal) Len() int { return len(j.entries) }

// Lines renders every entry.
func (j *Journal) Lines() []string {
	lines := make([]string, len(j.entries))
	for i, e := range j.entries {
		lines[i] = e.String()
	}
	return lines
}

// String joins all rendered entries with newlines.
func (j *Journal) String() string {
	return strings.Join(j.Lines(), "\n")
}

func slogLevel(l model.Level) slog.Level {
	switch l {
	case model.LevelDebug:
		return slog.LevelDebug
	case model.LevelWarn:
		return slog.LevelWarn
	case model.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
