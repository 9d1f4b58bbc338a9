package multi

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hejijunhao/dailycheckin/internal/journal"
	"github.com/hejijunhao/dailycheckin/internal/model"
	"github.com/hejijunhao/dailycheckin/internal/notify"
	"github.com/hejijunhao/dailycheckin/internal/notify/pushplus"
	"github.com/hejijunhao/dailycheckin/internal/notify/stdout"
)

// mockNotifier records calls for test assertions.
type mockNotifier struct {
	name string
	sent []model.Notification
	err  error // if set, Send returns this error
}

func (m *mockNotifier) Name() string { return m.name }

func (m *mockNotifier) Send(_ context.Context, msg model.Notification) error {
	m.sent = append(m.sent, msg)
	return m.err
}

func TestFanOutDeliversToAll(t *testing.T) {
	a := &mockNotifier{name: "a"}
	b := &mockNotifier{name: "b"}
	m := New(a, b)

	msg := model.Notification{Title: "t", Content: "c"}
	if err := m.Send(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, n := range []*mockNotifier{a, b} {
		if len(n.sent) != 1 {
			t.Fatalf("notifier %d: got %d messages, want 1", i, len(n.sent))
		}
		if n.sent[0] != msg {
			t.Errorf("notifier %d: got %+v, want %+v", i, n.sent[0], msg)
		}
	}
	if m.Name() != "a+b" {
		t.Errorf("Name() = %q, want a+b", m.Name())
	}
}

func TestErrorDoesNotPreventDelivery(t *testing.T) {
	errA := errors.New("a down")
	a := &mockNotifier{name: "a", err: errA}
	b := &mockNotifier{name: "b"}
	m := New(a, b)

	err := m.Send(context.Background(), model.Notification{Title: "t"})
	if !errors.Is(err, errA) {
		t.Fatalf("expected joined error to contain errA, got %v", err)
	}
	if len(b.sent) != 1 {
		t.Fatalf("second notifier should still receive the message, got %d", len(b.sent))
	}
}

func TestNilNotifiersSkipped(t *testing.T) {
	m := New(nil, &mockNotifier{name: "only"}, nil)
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
}

func TestEmpty(t *testing.T) {
	m := New()
	if err := m.Send(context.Background(), model.Notification{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReporterNamesOnlyTheFailedNotifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":903,"msg":"invalid token"}`))
	}))
	defer srv.Close()

	var console bytes.Buffer
	j := journal.New(journal.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	m := New(stdout.New(&console), pushplus.New("tok", pushplus.WithURL(srv.URL)))
	r := notify.NewReporter(m, j, "txt")

	if err := r.Digest(context.Background(), "SSPANEL check-in result"); err == nil {
		t.Fatal("expected the pushplus failure to be returned")
	}
	if !strings.Contains(console.String(), "SSPANEL check-in result") {
		t.Fatalf("stdout should still deliver, got %q", console.String())
	}
	entries := j.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected one journal entry, got %+v", entries)
	}
	msg := entries[0].Message
	if !strings.Contains(msg, "pushplus: code 903: invalid token") {
		t.Errorf("expected the failing notifier named, got %q", msg)
	}
	if strings.Contains(msg, "stdout") {
		t.Errorf("a notifier that delivered must not be named, got %q", msg)
	}
}
