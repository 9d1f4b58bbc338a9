package notify

import (
	"context"

	"github.com/hejijunhao/dailycheckin/internal/model"
)

// Notifier defines the interface for push-notification destinations.
type Notifier interface {
	// Name identifies the destination in logs.
	Name() string

	// Send delivers one notification. It returns an error if delivery fails.
	Send(ctx context.Context, msg model.Notification) error
}
