package hoopapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"hoopnarrator/internal/model"
)

// Snapshot is one normalized status observation for a job. Progress is nil
// when the backend omitted it. ResultURL is absolute, resolved against the
// service base address.
type Snapshot struct {
	VideoID     string `json:"video_id"`
	Status      string `json:"status"`
	Progress    *int   `json:"progress,omitempty"`
	Message     string `json:"message,omitempty"`
	ErrorDetail string `json:"error_detail,omitempty"`
	ResultURL   string `json:"result_url,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
}

type statusResponse struct {
	VideoID    string `json:"video_id"`
	VideoIDAlt string `json:"videoId"`
	Status     string `json:"status"`
	Progress   *int   `json:"progress"`
	Message    string `json:"message"`
	Error      string `json:"error"`
	Result     *struct {
		OutputFile  string `json:"output_file"`
		DownloadURL string `json:"download_url"`
	} `json:"result"`
}

// JobStatus fetches and normalizes the current state of a job. It performs
// a single request; retry policy belongs to the caller.
func (c *Client) JobStatus(ctx context.Context, videoID string) (Snapshot, error) {
	id := strings.TrimSpace(videoID)
	if id == "" {
		return Snapshot{}, newValidationError("video id is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/videos/"+url.PathEscape(id)+"/status"), nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("build status request: %w", err)
	}

	var raw statusResponse
	if err := c.doJSON(req, &raw); err != nil {
		return Snapshot{}, err
	}

	gotID := strings.TrimSpace(raw.VideoID)
	if gotID == "" {
		gotID = strings.TrimSpace(raw.VideoIDAlt)
	}
	if gotID == "" || strings.TrimSpace(raw.Status) == "" {
		return Snapshot{}, newProtocolError("status response for %s is missing required fields", id)
	}

	snap := Snapshot{
		VideoID:     gotID,
		Status:      model.NormalizeStatus(raw.Status),
		Progress:    raw.Progress,
		Message:     strings.TrimSpace(raw.Message),
		ErrorDetail: strings.TrimSpace(raw.Error),
	}
	if raw.Result != nil {
		snap.ResultURL = resolveResultURL(c.baseURL, raw.Result.OutputFile)
		snap.DownloadURL = resolveResultURL(c.baseURL, raw.Result.DownloadURL)
	}
	return snap, nil
}
