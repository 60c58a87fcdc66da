package hoopapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// MaxUploadBytes is the client-side cap on upload size. Larger files are
	// rejected before any network call; the backend enforces the same limit.
	MaxUploadBytes = 100 << 20

	maxResponseBytes = 1 << 20

	userAgent = "hoopnarrator-cli"
)

var defaultHTTPClient = &http.Client{Timeout: 30 * time.Second}

// Client talks to the HoopNarrator backend. BaseURL addresses the API root
// (for example http://localhost:8000/api/v1); endpoint paths are appended
// to it.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type ClientConfig struct {
	BaseURL string
	// HTTPClient is optional and defaults to a client with a 30s timeout.
	HTTPClient *http.Client
}

func NewClient(cfg ClientConfig) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("service base URL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = defaultHTTPClient
	}
	return &Client{
		baseURL:    base,
		httpClient: httpClient,
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) endpoint(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// doJSON executes req, classifies non-2xx responses, and decodes a JSON
// body into out.
func (c *Client) doJSON(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return newTransportError(0, "request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return newTransportError(resp.StatusCode, "read response: %v", err)
	}

	if looksLikeMarkup(resp.Header.Get("Content-Type"), body) {
		return newProtocolError("unexpected response format from %s (%d): got a markup document instead of JSON", req.URL.Path, resp.StatusCode)
	}

	if resp.StatusCode >= 500 {
		return newTransportError(resp.StatusCode, "%s", backendMessage(body, "server error"))
	}
	if resp.StatusCode >= 400 {
		return &Error{
			Kind:    KindBusiness,
			Status:  resp.StatusCode,
			Message: backendMessage(body, "request rejected by the service"),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return newProtocolError("malformed response from %s: %v", req.URL.Path, err)
	}
	return nil
}

// backendMessage extracts the most specific error text the backend supplied:
// message, then detail, then error, falling back to the given generic text.
func backendMessage(body []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, v := range []string{payload.Message, payload.Detail, payload.Error} {
			if strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
	}
	return fallback
}

func looksLikeMarkup(contentType string, body []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}
	return bytes.HasPrefix(bytes.TrimSpace(body), []byte("<"))
}

// resolveResultURL turns a backend-relative result path into an absolute
// location the caller can follow. Already-absolute URLs pass through.
func resolveResultURL(base, p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if strings.Contains(p, "://") {
		return p
	}
	return base + "/" + strings.TrimLeft(p, "/")
}
