package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocation(t *testing.T) {
	c := &Client{bucket: "my-bucket"}
	got := c.Location("March-2024.tar")
	if got != "s3://my-bucket/March-2024.tar" {
		t.Errorf("Location = %q", got)
	}
}

func TestNew_BucketRequired(t *testing.T) {
	if _, err := New(context.Background(), Options{Profile: "default"}); err == nil {
		t.Error("expected error for empty bucket")
	}
}

func TestNew_ProfileNotFound(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(cfgFile, []byte("[profile existing]\nregion = us-east-1\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AWS_CONFIG_FILE", cfgFile)
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(t.TempDir(), "credentials"))

	_, err := New(context.Background(), Options{Profile: "missing", Bucket: "b"})
	if err == nil {
		t.Fatal("expected error for missing profile")
	}
	if !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("error %v is not ErrProfileNotFound", err)
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Errorf("error %q should name the profile", err)
	}
}

func TestNew_EndpointMode(t *testing.T) {
	c, err := New(context.Background(), Options{
		Endpoint:  "localhost:9000",
		AccessKey: "ak",
		SecretKey: "sk",
		Bucket:    "b",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.Bucket() != "b" {
		t.Errorf("Bucket = %q", c.Bucket())
	}
}

func TestProgressReader_SumsBytes(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 4096)
	var sum int64
	pr := &progressReader{
		r:      bytes.NewReader(payload),
		report: func(n int64) { sum += n },
	}
	n, err := io.Copy(io.Discard, pr)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len(payload)) || sum != int64(len(payload)) {
		t.Errorf("copied %d, reported %d, want %d", n, sum, len(payload))
	}
}

func TestProgressReader_EmptyReader(t *testing.T) {
	calls := 0
	pr := &progressReader{
		r:      bytes.NewReader(nil),
		report: func(int64) { calls++ },
	}
	if _, err := io.Copy(io.Discard, pr); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Errorf("report called %d times for empty reader, want 0", calls)
	}
}
