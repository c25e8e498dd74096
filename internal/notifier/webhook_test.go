package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWebhookNotifier_Success(t *testing.T) {
	var got payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
	}))
	defer srv.Close()

	n, err := NewWebhookNotifier(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if err := n.NotifySuccess(context.Background(), "/data", "s3://b/March-2024.tar", 1024, 3*time.Second); err != nil {
		t.Fatalf("NotifySuccess: %v", err)
	}

	if got.Event != "backup.success" {
		t.Errorf("event = %q", got.Event)
	}
	if got.Location != "s3://b/March-2024.tar" || got.SizeBytes != 1024 {
		t.Errorf("payload = %+v", got)
	}
	if got.Host == "" || got.Timestamp == "" {
		t.Errorf("host/timestamp missing in %+v", got)
	}
}

func TestWebhookNotifier_ErrorEvent(t *testing.T) {
	var got payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	n, _ := NewWebhookNotifier(srv.URL)
	if err := n.NotifyError(context.Background(), "/data", errors.New("upload failed")); err != nil {
		t.Fatalf("NotifyError: %v", err)
	}
	if got.Event != "backup.error" || got.Error != "upload failed" {
		t.Errorf("payload = %+v", got)
	}
}

func TestWebhookNotifier_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	n, _ := NewWebhookNotifier(srv.URL)
	if err := n.NotifyPrune(context.Background(), 3); err == nil {
		t.Error("expected error for 403 response")
	}
}

func TestNewWebhookNotifier_EmptyURL(t *testing.T) {
	if _, err := NewWebhookNotifier(""); err == nil {
		t.Error("expected error for empty url")
	}
}
