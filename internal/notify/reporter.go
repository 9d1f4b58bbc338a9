package notify

import (
	"context"

	"github.com/hejijunhao/dailycheckin/internal/journal"
	"github.com/hejijunhao/dailycheckin/internal/model"
)

// Reporter turns a run's journal into notifications. Delivery failures are
// journaled and returned for bookkeeping; callers must not fail the run on them.
type Reporter struct {
	notifier Notifier
	journal  *journal.Journal
	template string
}

// NewReporter creates a Reporter. A nil notifier makes every send a no-op.
func NewReporter(n Notifier, j *journal.Journal, template string) *Reporter {
	return &Reporter{notifier: n, journal: j, template: template}
}

// Enabled reports whether a notifier is configured.
func (r *Reporter) Enabled() bool { return r.notifier != nil }

// Digest sends the whole journal joined by newlines.
func (r *Reporter) Digest(ctx context.Context, title string) error {
	return r.send(ctx, model.Notification{Title: title, Content: r.journal.String(), Template: r.template})
}

// Single sends one message, e.g. a per-account result.
func (r *Reporter) Single(ctx context.Context, title, content string) error {
	return r.send(ctx, model.Notification{Title: title, Content: content, Template: r.template})
}

func (r *Reporter) send(ctx context.Context, msg model.Notification) error {
	if r.notifier == nil {
		return nil
	}
	if err := r.notifier.Send(ctx, msg); err != nil {
		// Notifier errors carry their own name; a fan-out joins only the failed ones.
		r.journal.Error("notification failed: %v", err)
		return err
	}
	r.journal.Info("notification sent via %s", r.notifier.Name())
	return nil
}
