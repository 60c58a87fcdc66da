// Package tracker owns the lifecycle of one submitted processing job:
// submit, poll to a terminal state, notify an observer. A Tracker runs at
// most one live poll loop at a time; a fresh submission supersedes the
// previous job and stale responses are discarded by generation token.
package tracker

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"hoopnarrator/internal/hoopapi"
	"hoopnarrator/internal/model"
)

const DefaultPollInterval = 5 * time.Second

const genericFailureMessage = "video processing failed"

// ErrSubmissionInFlight is returned when Submit is called while a previous
// submission request has not yet produced a job id.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// API is the slice of the service client the tracker uses. *hoopapi.Client
// satisfies it; tests substitute fakes.
type API interface {
	UploadVideo(ctx context.Context, opts hoopapi.UploadOptions) (hoopapi.Submission, error)
	SubmitLink(ctx context.Context, opts hoopapi.LinkOptions) (hoopapi.Submission, error)
	JobStatus(ctx context.Context, videoID string) (hoopapi.Snapshot, error)
}

// Callbacks observe the tracked job. All callbacks are invoked without the
// tracker lock held, in apply order for a single job. OnDone fires exactly
// once per job, with the terminal state.
type Callbacks struct {
	OnUploadProgress func(pct int)
	OnUpdate         func(job model.Job)
	OnDone           func(job model.Job)
}

type Options struct {
	API API
	// PollInterval defaults to DefaultPollInterval when zero.
	PollInterval time.Duration
	Callbacks    Callbacks
}

type Tracker struct {
	api      API
	interval time.Duration
	cb       Callbacks

	mu         sync.Mutex
	job        model.Job
	generation string
	cancel     context.CancelFunc
}

func New(opts Options) *Tracker {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Tracker{
		api:      opts.API,
		interval: interval,
		cb:       opts.Callbacks,
		job:      model.Job{Phase: model.PhaseIdle},
	}
}

// Job returns a copy of the current job state.
func (t *Tracker) Job() model.Job {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.job
}

// SubmitFile submits a local video file and starts tracking it. Input
// problems are reported synchronously, before any network call.
func (t *Tracker) SubmitFile(path, style string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return &hoopapi.Error{Kind: hoopapi.KindValidation, Message: "video file is required"}
	}
	if strings.TrimSpace(style) == "" {
		return &hoopapi.Error{Kind: hoopapi.KindValidation, Message: "style is required"}
	}
	info, err := os.Stat(path)
	if err != nil {
		return &hoopapi.Error{Kind: hoopapi.KindValidation, Message: "video file " + path + " is not readable"}
	}

	source := model.Source{
		Kind:     model.SourceFile,
		Path:     path,
		Filename: info.Name(),
		Size:     info.Size(),
		MIMEType: hoopapi.VideoContentType(info.Name()),
	}
	return t.submit(source, strings.TrimSpace(style))
}

// SubmitURL submits a remote video reference and starts tracking it.
func (t *Tracker) SubmitURL(link, style string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return &hoopapi.Error{Kind: hoopapi.KindValidation, Message: "video URL is required"}
	}
	if strings.TrimSpace(style) == "" {
		return &hoopapi.Error{Kind: hoopapi.KindValidation, Message: "style is required"}
	}

	source := model.Source{
		Kind: model.SourceURL,
		URL:  link,
	}
	return t.submit(source, strings.TrimSpace(style))
}

// Watch attaches to an already-submitted job id and polls it to a terminal
// state. Valid only when the tracker is idle.
func (t *Tracker) Watch(videoID string) error {
	id := strings.TrimSpace(videoID)
	if id == "" {
		return &hoopapi.Error{Kind: hoopapi.KindValidation, Message: "video id is required"}
	}

	t.mu.Lock()
	if !model.CanTransitionPhase(t.job.Phase, model.PhasePolling) {
		phase := t.job.Phase
		t.mu.Unlock()
		return errors.New("cannot watch while " + phase)
	}
	ctx, gen := t.beginLocked()
	t.job = model.Job{ID: id, Phase: model.PhasePolling}
	job := t.job
	t.mu.Unlock()

	t.notifyUpdate(job)
	go t.pollLoop(ctx, gen, id)
	return nil
}

func (t *Tracker) submit(source model.Source, style string) error {
	t.mu.Lock()
	if t.job.Phase == model.PhaseSubmitting {
		t.mu.Unlock()
		return ErrSubmissionInFlight
	}
	ctx, gen := t.beginLocked()
	t.job = model.Job{
		Source: source,
		Style:  style,
		Phase:  model.PhaseSubmitting,
	}
	job := t.job
	t.mu.Unlock()

	t.notifyUpdate(job)
	go t.runSubmission(ctx, gen, source, style)
	return nil
}

// beginLocked supersedes any active job: it cancels the previous loop and
// issues a fresh generation token plus a cancellable context for the new
// one. Caller holds the lock.
func (t *Tracker) beginLocked() (context.Context, string) {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.generation = uuid.NewString()
	return ctx, t.generation
}

// Cancel stops any active submission or poll loop. The job is left in its
// last observed state and no further notifications fire. Safe to call from
// any state, any number of times.
func (t *Tracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.generation = ""
}

func (t *Tracker) runSubmission(ctx context.Context, gen string, source model.Source, style string) {
	var sub hoopapi.Submission
	var err error
	switch source.Kind {
	case model.SourceFile:
		sub, err = t.api.UploadVideo(ctx, hoopapi.UploadOptions{
			Path:     source.Path,
			Style:    style,
			Progress: t.uploadProgress(gen),
		})
	case model.SourceURL:
		sub, err = t.api.SubmitLink(ctx, hoopapi.LinkOptions{
			URL:   source.URL,
			Style: style,
		})
	default:
		err = &hoopapi.Error{Kind: hoopapi.KindValidation, Message: "unknown input source"}
	}

	if err != nil {
		t.fail(gen, errorDetail(err))
		return
	}

	t.mu.Lock()
	if gen != t.generation {
		t.mu.Unlock()
		return
	}
	t.job.ID = sub.VideoID
	t.job.Status = sub.Status
	t.job.Message = sub.Message
	if err := model.TransitionPhase(&t.job, model.PhasePolling); err != nil {
		t.mu.Unlock()
		t.fail(gen, err.Error())
		return
	}
	job := t.job
	t.mu.Unlock()

	t.notifyUpdate(job)
	t.pollLoop(ctx, gen, sub.VideoID)
}

// uploadProgress forwards transfer percentages, dropping reports from a
// superseded submission.
func (t *Tracker) uploadProgress(gen string) func(pct int) {
	if t.cb.OnUploadProgress == nil {
		return nil
	}
	return func(pct int) {
		t.mu.Lock()
		stale := gen != t.generation
		t.mu.Unlock()
		if !stale {
			t.cb.OnUploadProgress(pct)
		}
	}
}

// pollLoop issues one immediate status request, then repeats on a fixed
// interval until a terminal condition. The next request is never issued
// before the previous response has been applied.
func (t *Tracker) pollLoop(ctx context.Context, gen, videoID string) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		snap, err := t.api.JobStatus(ctx, videoID)
		if t.apply(gen, snap, err) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case <-ctx.Done():
				return
			default:
			}
		}
	}
}

// apply folds one poll outcome into the job state. Returns true when the
// loop must stop: terminal status, poll failure, or a superseded job.
func (t *Tracker) apply(gen string, snap hoopapi.Snapshot, pollErr error) bool {
	if pollErr != nil {
		t.fail(gen, errorDetail(pollErr))
		return true
	}

	t.mu.Lock()
	if gen != t.generation {
		t.mu.Unlock()
		return true
	}

	// Progress is reported verbatim; the backend does not promise
	// monotonicity and the client must not invent it.
	if snap.Progress != nil {
		t.job.Progress = *snap.Progress
	}
	t.job.Status = snap.Status
	t.job.Message = snap.Message

	switch snap.Status {
	case model.StatusCompleted:
		if snap.ResultURL == "" {
			t.mu.Unlock()
			t.fail(gen, "service reported completion without a result location")
			return true
		}
		t.job.ResultURL = snap.ResultURL
		t.job.Phase = model.PhaseCompleted
		t.cancelLocked()
		job := t.job
		t.mu.Unlock()
		t.notifyDone(job)
		return true
	case model.StatusFailed:
		t.mu.Unlock()
		t.fail(gen, failureDetail(snap))
		return true
	default:
		job := t.job
		t.mu.Unlock()
		t.notifyUpdate(job)
		return false
	}
}

// fail moves the current job to its failed terminal state, unless the
// generation token shows the job was superseded in the meantime.
func (t *Tracker) fail(gen, detail string) {
	t.mu.Lock()
	if gen != t.generation {
		t.mu.Unlock()
		return
	}
	t.job.Status = model.StatusFailed
	t.job.ErrorDetail = detail
	t.job.Phase = model.PhaseFailed
	t.cancelLocked()
	job := t.job
	t.mu.Unlock()
	t.notifyDone(job)
}

func (t *Tracker) cancelLocked() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.generation = ""
}

// errorDetail prefers the backend-supplied message carried by a typed
// service error over the error's formatted string.
func errorDetail(err error) string {
	var apiErr *hoopapi.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

func failureDetail(snap hoopapi.Snapshot) string {
	if snap.ErrorDetail != "" {
		return snap.ErrorDetail
	}
	if snap.Message != "" {
		return snap.Message
	}
	return genericFailureMessage
}

func (t *Tracker) notifyUpdate(job model.Job) {
	if t.cb.OnUpdate != nil {
		t.cb.OnUpdate(job)
	}
}

func (t *Tracker) notifyDone(job model.Job) {
	if t.cb.OnDone != nil {
		t.cb.OnDone(job)
	}
}
