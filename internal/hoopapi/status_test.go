package hoopapi

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestJobStatus_NormalizesFullResponse(t *testing.T) {
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/videos/abc123/status" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"video_id": "abc123",
			"status": "completed",
			"progress": 100,
			"message": "done",
			"result": {"output_file": "/files/abc123.mp4", "download_url": "/videos/abc123/download"}
		}`))
	}))

	snap, err := client.JobStatus(context.Background(), "abc123")
	if err != nil {
		t.Fatal(err)
	}
	if snap.VideoID != "abc123" || snap.Status != "completed" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Progress == nil || *snap.Progress != 100 {
		t.Fatalf("progress = %v, want 100", snap.Progress)
	}
	if want := srv.URL + "/files/abc123.mp4"; snap.ResultURL != want {
		t.Fatalf("result URL = %q, want %q", snap.ResultURL, want)
	}
	if want := srv.URL + "/videos/abc123/download"; snap.DownloadURL != want {
		t.Fatalf("download URL = %q, want %q", snap.DownloadURL, want)
	}
}

func TestJobStatus_FoldsErrorStatusToFailed(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"video_id":"abc123","status":"error","progress":0,"message":"boom","error":"analysis crashed"}`))
	}))

	snap, err := client.JobStatus(context.Background(), "abc123")
	if err != nil {
		t.Fatal(err)
	}
	if snap.Status != "failed" {
		t.Fatalf("status = %q, want failed", snap.Status)
	}
	if snap.ErrorDetail != "analysis crashed" {
		t.Fatalf("error detail = %q", snap.ErrorDetail)
	}
}

func TestJobStatus_OmittedProgressStaysNil(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"videoId":"abc123","status":"queued"}`))
	}))

	snap, err := client.JobStatus(context.Background(), "abc123")
	if err != nil {
		t.Fatal(err)
	}
	if snap.Progress != nil {
		t.Fatalf("progress = %v, want nil", *snap.Progress)
	}
	if snap.VideoID != "abc123" {
		t.Fatalf("videoId spelling not accepted: %+v", snap)
	}
}

func TestJobStatus_MissingFieldsAreProtocolViolations(t *testing.T) {
	bodies := []string{
		`{"status":"processing"}`,
		`{"video_id":"abc123"}`,
		`{}`,
		`[]`,
	}

	for _, body := range bodies {
		payload := body
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(payload))
		}))

		_, err := client.JobStatus(context.Background(), "abc123")
		var apiErr *Error
		if !errors.As(err, &apiErr) || apiErr.Kind != KindProtocol {
			t.Fatalf("body %q: expected protocol error, got %v", body, err)
		}
	}
}

func TestJobStatus_ServerErrorIsTransport(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"database down"}`))
	}))

	_, err := client.JobStatus(context.Background(), "abc123")
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindTransport {
		t.Fatalf("expected transport error, got %v", err)
	}
	if apiErr.Status != http.StatusInternalServerError || apiErr.Message != "database down" {
		t.Fatalf("unexpected error detail: %+v", apiErr)
	}
}

func TestJobStatus_ClientErrorIsBusinessWithBackendMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Video with ID abc123 not found"}`))
	}))

	_, err := client.JobStatus(context.Background(), "abc123")
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindBusiness {
		t.Fatalf("expected business error, got %v", err)
	}
	if apiErr.Message != "Video with ID abc123 not found" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}

func TestJobStatus_ClientErrorWithoutMessageGetsFallback(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{}`))
	}))

	_, err := client.JobStatus(context.Background(), "abc123")
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindBusiness {
		t.Fatalf("expected business error, got %v", err)
	}
	if apiErr.Message == "" {
		t.Fatalf("expected a generic fallback message")
	}
}

func TestJobStatus_HTMLBodyIsProtocolViolation(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html><body><h1>502 Bad Gateway</h1></body></html>`))
	}))

	_, err := client.JobStatus(context.Background(), "abc123")
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindProtocol {
		t.Fatalf("expected protocol error, got %v", err)
	}
}

func TestResolveResultURL(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/files/abc.mp4", "http://base/api/v1/files/abc.mp4"},
		{"files/abc.mp4", "http://base/api/v1/files/abc.mp4"},
		{"https://cdn.example/abc.mp4", "https://cdn.example/abc.mp4"},
		{"  ", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := resolveResultURL("http://base/api/v1", tc.path); got != tc.want {
			t.Fatalf("resolveResultURL(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
