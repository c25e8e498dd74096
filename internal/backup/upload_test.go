package backup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUpload_KeyIsBaseFilename(t *testing.T) {
	path := writeFile(t, "March-2024.tar", 128)
	fake := newFakeStore("bkt")

	obj, err := Upload(context.Background(), fake, path, "", nil)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if obj.Key != "March-2024.tar" {
		t.Errorf("Key = %q, want March-2024.tar", obj.Key)
	}
	if obj.Size != 128 {
		t.Errorf("Size = %d, want 128", obj.Size)
	}
	if _, ok := fake.objects["March-2024.tar"]; !ok {
		t.Error("object not stored under base filename")
	}
}

func TestUpload_ProgressSumsToFileSize(t *testing.T) {
	const size = 4096
	path := writeFile(t, "big.tar", size)
	fake := newFakeStore("bkt")
	m := &countingMeter{}

	if _, err := Upload(context.Background(), fake, path, "", m); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if m.total != size {
		t.Errorf("announced total = %d, want %d", m.total, size)
	}
	if m.advanced != size {
		t.Errorf("progress sum = %d, want %d", m.advanced, size)
	}
}

func TestUpload_ZeroByteFile(t *testing.T) {
	path := writeFile(t, "empty.tar", 0)
	fake := newFakeStore("bkt")
	m := &countingMeter{}

	obj, err := Upload(context.Background(), fake, path, "", m)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if obj.Size != 0 {
		t.Errorf("Size = %d, want 0", obj.Size)
	}
	if m.total != 0 {
		t.Errorf("announced total = %d, want 0", m.total)
	}
	if m.advanced != 0 {
		t.Errorf("progress sum = %d, want 0 ticks beyond the announcement", m.advanced)
	}
}

func TestUpload_ChecksumMetadata(t *testing.T) {
	path := writeFile(t, "x.tar", 10)
	fake := newFakeStore("bkt")

	if _, err := Upload(context.Background(), fake, path, "abc123", nil); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if got := fake.meta["x.tar"][checksumMetadataKey]; got != "abc123" {
		t.Errorf("metadata checksum = %q, want abc123", got)
	}

	// No checksum, no metadata.
	path2 := writeFile(t, "y.tar", 10)
	if _, err := Upload(context.Background(), fake, path2, "", nil); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if fake.meta["y.tar"] != nil {
		t.Errorf("metadata = %v, want nil", fake.meta["y.tar"])
	}
}

func TestUpload_MissingFile(t *testing.T) {
	fake := newFakeStore("bkt")
	_, err := Upload(context.Background(), fake, filepath.Join(t.TempDir(), "gone.tar"), "", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if ClassOf(err) != ClassIO {
		t.Errorf("class = %q, want io", ClassOf(err))
	}
	if fake.uploadCalls != 0 {
		t.Errorf("upload calls = %d, want 0", fake.uploadCalls)
	}
}

func TestUpload_StoreFailure(t *testing.T) {
	path := writeFile(t, "x.tar", 10)
	fake := newFakeStore("bkt")
	fake.uploadErr = errors.New("rejected")

	_, err := Upload(context.Background(), fake, path, "", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if ClassOf(err) != ClassStore {
		t.Errorf("class = %q, want store", ClassOf(err))
	}
}

func TestUpload_OverwritesSameKey(t *testing.T) {
	fake := newFakeStore("bkt")

	dir := t.TempDir()
	path := filepath.Join(dir, "March-2024.tar")
	if err := os.WriteFile(path, []byte("first"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Upload(context.Background(), fake, path, "", nil); err != nil {
		t.Fatalf("first upload: %v", err)
	}
	if err := os.WriteFile(path, []byte("second, longer"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Upload(context.Background(), fake, path, "", nil); err != nil {
		t.Fatalf("second upload: %v", err)
	}

	if string(fake.bodies["March-2024.tar"]) != "second, longer" {
		t.Error("second upload should overwrite the first (last-write-wins)")
	}
}
