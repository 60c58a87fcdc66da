package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"hoopnarrator/internal/config"
	"hoopnarrator/internal/hoopapi"
	"hoopnarrator/internal/model"
	"hoopnarrator/internal/tracker"
)

func runUpload(args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	file := fs.String("file", "", "path to the video file (.mp4, .webm, or .mov)")
	style := fs.String("style", "", "commentary style tag (see 'hoopnarrator styles')")
	api := fs.String("api", "", "service base URL (overrides "+config.EnvBaseURL+")")
	jsonOut := fs.Bool("json", false, "print JSON output")
	plain := fs.Bool("plain", false, "plain line output, no interactive view")
	noWait := fs.Bool("no-wait", false, "submit and print the video id without tracking")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	client, err := newServiceClient(*api)
	if err != nil {
		return err
	}

	if *noWait {
		sub, err := client.UploadVideo(context.Background(), hoopapi.UploadOptions{
			Path:  *file,
			Style: *style,
		})
		if err != nil {
			return err
		}
		if *jsonOut {
			return printJSON(sub)
		}
		fmt.Printf("submitted: %s (status %s)\n", sub.VideoID, sub.Status)
		return nil
	}

	start := func(tr *tracker.Tracker) error {
		return tr.SubmitFile(*file, *style)
	}
	job, err := runTracked(client, start, trackOptions{
		jsonOut: *jsonOut,
		plain:   *plain,
		label:   filepath.Base(strings.TrimSpace(*file)),
	})
	if err != nil {
		return err
	}
	return reportOutcome(job, *jsonOut)
}

// reportOutcome prints the terminal job state and folds a failed job into a
// non-zero exit.
func reportOutcome(job model.Job, jsonOut bool) error {
	if jsonOut {
		if err := printJSON(job); err != nil {
			return err
		}
	} else if job.Phase == model.PhaseCompleted {
		fmt.Printf("completed: %s\n", job.ResultURL)
	}

	if job.Phase == model.PhaseFailed {
		detail := job.ErrorDetail
		if detail == "" {
			detail = "video processing failed"
		}
		return errors.New(detail)
	}
	return nil
}
