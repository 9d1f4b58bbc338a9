package file

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/hejijunhao/dailycheckin/internal/model"
)

const defaultMaxSizeMB = 10

// Option configures a file Notifier.
type Option func(*Notifier)

// WithMaxSize sets the size in megabytes at which the archive rotates.
func WithMaxSize(mb int) Option {
	return func(n *Notifier) {
		if mb > 0 {
			n.w.MaxSize = mb
		}
	}
}

// WithClock overrides the time stamped on each record.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) { n.now = now }
}

// Notifier appends every notification as one NDJSON line to a rotated file.
type Notifier struct {
	mu  sync.Mutex
	w   *lumberjack.Logger
	now func() time.Time
}

type record struct {
	Time     time.Time `json:"time"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Template string    `json:"template,omitempty"`
}

// New creates an archive at path. The file is opened on first write.
func New(path string, opts ...Option) *Notifier {
	n := &Notifier{
		w:   &lumberjack.Logger{Filename: path, MaxSize: defaultMaxSizeMB, MaxBackups: 5},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Notifier) Name() string { return "file" }

// Send JSON-encodes the notification and appends it as a line.
func (n *Notifier) Send(_ context.Context, msg model.Notification) error {
	data, err := json.Marshal(record{
		Time:     n.now().UTC(),
		Title:    msg.Title,
		Content:  msg.Content,
		Template: msg.Template,
	})
	if err != nil {
		return fmt.Errorf("file notifier: marshal: %w", err)
	}
	data = append(data, '\n')

	n.mu.Lock()
	defer n.mu.Unlock()
	if _, err := n.w.Write(data); err != nil {
		return fmt.Errorf("file notifier: write: %w", err)
	}
	return nil
}

// Close closes the archive file.
func (n *Notifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.w.Close()
}
