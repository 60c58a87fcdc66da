package hoopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"hoopnarrator/internal/model"
)

type UploadOptions struct {
	Path  string
	Style string
	// Progress receives 0-100 integers as file bytes are handed to the
	// transport. Optional.
	Progress func(pct int)
}

type LinkOptions struct {
	URL   string
	Style string
}

// Submission is the normalized result of a successful submit call.
type Submission struct {
	VideoID string `json:"video_id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// submitResponse tolerates both field spellings the backend has used.
type submitResponse struct {
	VideoID    string `json:"video_id"`
	VideoIDAlt string `json:"videoId"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

// UploadVideo submits a local video file as a multipart request with fields
// "file" and "personality". The body is streamed; it is never buffered
// whole in memory.
func (c *Client) UploadVideo(ctx context.Context, opts UploadOptions) (Submission, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return Submission{}, newValidationError("video file is required")
	}
	style := strings.TrimSpace(opts.Style)
	if style == "" {
		return Submission{}, newValidationError("style is required")
	}

	info, err := os.Stat(path)
	if err != nil {
		return Submission{}, newValidationError("video file %s: %v", path, err)
	}
	if info.Size() > MaxUploadBytes {
		return Submission{}, newValidationError("video file %s is %d bytes; the upload limit is %d MB", path, info.Size(), MaxUploadBytes>>20)
	}

	f, err := os.Open(path)
	if err != nil {
		return Submission{}, newValidationError("open video file %s: %v", path, err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreatePart(videoPartHeader(filepath.Base(path)))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		src := &progressReader{
			r:      f,
			total:  info.Size(),
			report: opts.Progress,
		}
		if _, err := io.Copy(part, src); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := mw.WriteField("personality", style); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/videos/process"), pr)
	if err != nil {
		return Submission{}, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Request-ID", uuid.NewString())

	var raw submitResponse
	if err := c.doJSON(req, &raw); err != nil {
		return Submission{}, err
	}
	return normalizeSubmission(raw)
}

// SubmitLink submits a remote video reference as a JSON request. There is
// no client-side transfer, so no progress callback.
func (c *Client) SubmitLink(ctx context.Context, opts LinkOptions) (Submission, error) {
	link := strings.TrimSpace(opts.URL)
	if link == "" {
		return Submission{}, newValidationError("video URL is required")
	}
	style := strings.TrimSpace(opts.Style)
	if style == "" {
		return Submission{}, newValidationError("style is required")
	}

	payload, err := json.Marshal(map[string]string{
		"url":         link,
		"personality": style,
	})
	if err != nil {
		return Submission{}, fmt.Errorf("encode link request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/process/youtube"), bytes.NewReader(payload))
	if err != nil {
		return Submission{}, fmt.Errorf("build link request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	var raw submitResponse
	if err := c.doJSON(req, &raw); err != nil {
		return Submission{}, err
	}
	return normalizeSubmission(raw)
}

// normalizeSubmission requires a job id; a 2xx response without one is a
// protocol violation, never a silent success. A missing status defaults to
// processing.
func normalizeSubmission(raw submitResponse) (Submission, error) {
	id := strings.TrimSpace(raw.VideoID)
	if id == "" {
		id = strings.TrimSpace(raw.VideoIDAlt)
	}
	if id == "" {
		return Submission{}, newProtocolError("submission response did not include a video id")
	}
	return Submission{
		VideoID: id,
		Status:  model.NormalizeStatus(raw.Status),
		Message: strings.TrimSpace(raw.Message),
	}, nil
}

func videoPartHeader(filename string) textproto.MIMEHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", VideoContentType(filename))
	return h
}

// VideoContentType maps the supported upload extensions to MIME types.
func VideoContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".mov":
		return "video/quicktime"
	default:
		return "application/octet-stream"
	}
}

// progressReader reports cumulative read progress as a rounded 0-100
// percentage, invoking report only when the value changes.
type progressReader struct {
	r      io.Reader
	total  int64
	report func(pct int)

	read    int64
	lastPct int
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.read += int64(n)
		if p.report != nil && p.total > 0 {
			pct := int(math.Round(float64(p.read) * 100 / float64(p.total)))
			if pct > 100 {
				pct = 100
			}
			if pct != p.lastPct {
				p.lastPct = pct
				p.report(pct)
			}
		}
	}
	return n, err
}
