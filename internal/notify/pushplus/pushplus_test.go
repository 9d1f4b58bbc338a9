package pushplus

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hejijunhao/dailycheckin/internal/httpclient"
	"github.com/hejijunhao/dailycheckin/internal/model"
)

func TestSendPayload(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":200,"msg":"请求成功","data":"abc"}`))
	}))
	defer srv.Close()

	n := New("tok-123", WithURL(srv.URL))
	err := n.Send(context.Background(), model.Notification{Title: "title", Content: "content", Template: "txt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{"token": "tok-123", "title": "title", "content": "content", "template": "txt"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("payload[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestSendOmitsEmptyTemplate(t *testing.T) {
	var raw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		raw = string(body)
	}))
	defer srv.Close()

	if err := New("t", WithURL(srv.URL)).Send(context.Background(), model.Notification{Title: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(raw, "template") {
		t.Errorf("expected template omitted, got %s", raw)
	}
}

func TestSendRejectedCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":903,"msg":"无效的用户token"}`))
	}))
	defer srv.Close()

	err := New("bad", WithURL(srv.URL)).Send(context.Background(), model.Notification{})
	if err == nil || !strings.Contains(err.Error(), "903") {
		t.Fatalf("expected code 903 error, got %v", err)
	}
}

func TestSendHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(502)
		w.Write([]byte("bad gateway"))
	}))
	defer srv.Close()

	err := New("t", WithURL(srv.URL)).Send(context.Background(), model.Notification{})
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected HTTP 502 error, got %v", err)
	}
}

func TestSendNonJSONSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	if err := New("t", WithURL(srv.URL)).Send(context.Background(), model.Notification{}); err != nil {
		t.Fatalf("expected 2xx plain body to be accepted, got %v", err)
	}
}

func TestSendTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	n := New("t", WithURL(url), WithClient(httpclient.New()))
	if err := n.Send(context.Background(), model.Notification{}); err == nil {
		t.Fatal("expected transport error")
	}
}
