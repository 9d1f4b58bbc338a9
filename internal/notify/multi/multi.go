package multi

import (
	"context"
	"errors"
	"strings"

	"github.com/hejijunhao/dailycheckin/internal/model"
	"github.com/hejijunhao/dailycheckin/internal/notify"
)

// Multi fans out notifications to multiple notify.Notifier implementations.
// Each Send call delivers to every wrapped notifier sequentially.
// If one notifier fails, the remaining notifiers still receive the message.
type Multi struct {
	notifiers []notify.Notifier
}

// New creates a Multi that fans out to the given notifiers. Nil entries are skipped.
func New(notifiers ...notify.Notifier) *Multi {
	m := &Multi{}
	for _, n := range notifiers {
		if n != nil {
			m.notifiers = append(m.notifiers, n)
		}
	}
	return m
}

func (m *Multi) Name() string {
	names := make([]string, len(m.notifiers))
	for i, n := range m.notifiers {
		names[i] = n.Name()
	}
	return strings.Join(names, "+")
}

// Send delivers the message to every wrapped notifier. Errors are collected
// but do not prevent delivery to subsequent notifiers.
func (m *Multi) Send(ctx context.Context, msg model.Notification) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.Send(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of wrapped notifiers.
func (m *Multi) Len() int { return len(m.notifiers) }
