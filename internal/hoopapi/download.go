package hoopapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Download streams a finished job's output video to destPath. The file is
// written through a temp file and renamed so a failed transfer never leaves
// a partial file at destPath. Returns the number of bytes written.
func (c *Client) Download(ctx context.Context, videoID, destPath string) (int64, error) {
	id := strings.TrimSpace(videoID)
	if id == "" {
		return 0, newValidationError("video id is required")
	}
	dest := strings.TrimSpace(destPath)
	if dest == "" {
		return 0, newValidationError("destination path is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/videos/"+url.PathEscape(id)+"/download"), nil)
	if err != nil {
		return 0, fmt.Errorf("build download request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, newTransportError(0, "request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if looksLikeMarkup(resp.Header.Get("Content-Type"), body) {
			return 0, newProtocolError("unexpected response format downloading %s (%d)", id, resp.StatusCode)
		}
		if resp.StatusCode >= 500 {
			return 0, newTransportError(resp.StatusCode, "%s", backendMessage(body, "server error"))
		}
		return 0, &Error{
			Kind:    KindBusiness,
			Status:  resp.StatusCode,
			Message: backendMessage(body, fmt.Sprintf("video %s is not available for download", id)),
		}
	}

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create parent for %s: %w", dest, err)
	}
	tmp, err := os.CreateTemp(dir, ".hoopnarrator-tmp-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file for %s: %w", dest, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpPath)
	}

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		_ = tmp.Close()
		cleanup()
		return 0, newTransportError(0, "download %s: %v", id, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		cleanup()
		return 0, fmt.Errorf("chmod temp file for %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return 0, fmt.Errorf("close temp file for %s: %w", dest, err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		cleanup()
		return 0, fmt.Errorf("move download into place at %s: %w", dest, err)
	}
	return n, nil
}
