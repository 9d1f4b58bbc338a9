package stdout

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hejijunhao/dailycheckin/internal/model"
)

// Notifier prints notifications to a writer, stdout by default.
type Notifier struct {
	w io.Writer
}

// New creates a stdout Notifier. A nil writer means os.Stdout.
func New(w io.Writer) *Notifier {
	if w == nil {
		w = os.Stdout
	}
	return &Notifier{w: w}
}

func (n *Notifier) Name() string { return "stdout" }

func (n *Notifier) Send(_ context.Context, msg model.Notification) error {
	if _, err := fmt.Fprintf(n.w, "===== %s =====\n%s\n", msg.Title, msg.Content); err != nil {
		return fmt.Errorf("stdout notifier: %w", err)
	}
	return nil
}
