package model

type SourceKind string

const (
	SourceFile SourceKind = "file"
	SourceURL  SourceKind = "url"
)

// Source identifies the input of a submission: exactly one of a local file
// or a remote URL reference.
type Source struct {
	Kind     SourceKind `json:"kind"`
	Path     string     `json:"path,omitempty"`
	Filename string     `json:"filename,omitempty"`
	Size     int64      `json:"size,omitempty"`
	MIMEType string     `json:"mime_type,omitempty"`
	URL      string     `json:"url,omitempty"`
}

// Job is the client-side view of one submitted processing request. ID is
// assigned by the backend at submission time and is the sole key for status
// lookups. ResultURL and ErrorDetail are mutually exclusive; each implies
// its terminal status.
type Job struct {
	ID          string `json:"video_id,omitempty"`
	Source      Source `json:"source"`
	Style       string `json:"style"`
	Phase       string `json:"phase"`
	Status      string `json:"status,omitempty"`
	Progress    int    `json:"progress"`
	Message     string `json:"message,omitempty"`
	ResultURL   string `json:"result_url,omitempty"`
	ErrorDetail string `json:"error_detail,omitempty"`
}
