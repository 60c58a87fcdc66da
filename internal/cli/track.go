package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"hoopnarrator/internal/hoopapi"
	"hoopnarrator/internal/model"
	"hoopnarrator/internal/tracker"
)

type trackOptions struct {
	jsonOut bool
	plain   bool
	label   string
}

var errInterrupted = errors.New("interrupted; the job keeps running on the service")

// runTracked starts a submission (or watch) and follows it to a terminal
// state, rendering progress interactively on a TTY and as rewritten plain
// lines otherwise.
func runTracked(client *hoopapi.Client, start func(tr *tracker.Tracker) error, opts trackOptions) (model.Job, error) {
	if opts.jsonOut || opts.plain || !stdoutIsTTY() {
		return runTrackedPlain(client, start, opts)
	}
	return runTrackedUI(client, start, opts.label)
}

func runTrackedPlain(client *hoopapi.Client, start func(tr *tracker.Tracker) error, opts trackOptions) (model.Job, error) {
	done := make(chan model.Job, 1)
	cb := tracker.Callbacks{
		OnDone: func(job model.Job) { done <- job },
	}
	if !opts.jsonOut {
		cb.OnUploadProgress = func(pct int) {
			fmt.Printf("\r\033[2Kuploading %s %3d%%", opts.label, pct)
		}
		cb.OnUpdate = func(job model.Job) {
			switch job.Phase {
			case model.PhaseSubmitting:
				fmt.Printf("\r\033[2Ksubmitting %s", opts.label)
			case model.PhasePolling:
				fmt.Printf("\r\033[2K%s %3d%%", job.Status, job.Progress)
			}
		}
	}

	tr := tracker.New(tracker.Options{API: client, Callbacks: cb})
	if err := start(tr); err != nil {
		return model.Job{}, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	select {
	case job := <-done:
		if !opts.jsonOut {
			fmt.Println()
		}
		return job, nil
	case <-ctx.Done():
		tr.Cancel()
		if !opts.jsonOut {
			fmt.Println()
		}
		return tr.Job(), errInterrupted
	}
}
