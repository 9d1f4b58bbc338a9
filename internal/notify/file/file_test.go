package file

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hejijunhao/dailycheckin/internal/model"
)

func TestSendAppendsNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notifications.ndjson")
	at := time.Date(2026, 3, 29, 8, 0, 0, 0, time.UTC)
	n := New(path, WithClock(func() time.Time { return at }))

	msgs := []model.Notification{
		{Title: "SSPANEL check-in result", Content: "line 1\nline 2", Template: "txt"},
		{Title: "hashiqi check-in failed", Content: "detail"},
	}
	for _, m := range msgs {
		if err := n.Send(context.Background(), m); err != nil {
			t.Fatalf("send: %v", err)
		}
	}
	if err := n.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var got []record
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var r record
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("line %q is not JSON: %v", sc.Text(), err)
		}
		got = append(got, r)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Content != "line 1\nline 2" || got[0].Template != "txt" || !got[0].Time.Equal(at) {
		t.Errorf("first record = %+v", got[0])
	}
	if got[1].Title != "hashiqi check-in failed" {
		t.Errorf("second record = %+v", got[1])
	}
}

func TestSendAppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notifications.ndjson")
	if err := os.WriteFile(path, []byte("{\"title\":\"old\"}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	n := New(path)
	if err := n.Send(context.Background(), model.Notification{Title: "new"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	n.Close()

	data, _ := os.ReadFile(path)
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", lines, data)
	}
}

func TestName(t *testing.T) {
	if got := New(filepath.Join(t.TempDir(), "x")).Name(); got != "file" {
		t.Fatalf("Name() = %q", got)
	}
}

func TestWithMaxSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x")
	if got := New(path, WithMaxSize(3)).w.MaxSize; got != 3 {
		t.Errorf("MaxSize = %d, want 3", got)
	}
	if got := New(path, WithMaxSize(0)).w.MaxSize; got != defaultMaxSizeMB {
		t.Errorf("MaxSize = %d, want default %d", got, defaultMaxSizeMB)
	}
}
