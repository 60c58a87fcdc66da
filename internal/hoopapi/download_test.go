package hoopapi

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

func TestDownload_WritesFile(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/videos/abc123/download" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "video/mp4")
		w.Write([]byte("processed video bytes"))
	}))

	dest := filepath.Join(t.TempDir(), "out", "abc123.mp4")
	n, err := client.Download(context.Background(), "abc123", dest)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len("processed video bytes")) {
		t.Fatalf("bytes written = %d", n)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "processed video bytes" {
		t.Fatalf("unexpected file content: %q", string(data))
	}
}

func TestDownload_NotReadyIsBusinessError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Video abc123 is not ready for download"}`))
	}))

	dest := filepath.Join(t.TempDir(), "abc123.mp4")
	_, err := client.Download(context.Background(), "abc123", dest)

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindBusiness {
		t.Fatalf("expected business error, got %v", err)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Fatalf("expected no file at destination, stat err: %v", statErr)
	}
}
