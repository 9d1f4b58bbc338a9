package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where the default logger writes.
type Options struct {
	Level slog.Level
	// File, when set, receives a copy of every record in a size-rotated file.
	File string
	// Writer is the console destination. Default: os.Stderr.
	Writer io.Writer
}

// Init creates and sets the package-level default slog logger. Records go to
// opts.Writer (stderr by default) as text; when opts.File is set they are also appended to a rotated
// log file. The returned closer releases the file and is safe to call when no
// file was configured.
func Init(opts Options) io.Closer {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    5, // megabytes
			MaxBackups: 7,
			Compress:   true,
		}
		w = io.MultiWriter(w, lj)
		closer = lj
	}
	slog.SetDefault(New(w, opts.Level))
	return closer
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to slog.Level.
// Unknown strings default to LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
