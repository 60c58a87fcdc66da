package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"hoopnarrator/internal/config"
	"hoopnarrator/internal/tracker"
)

func runStatus(args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	id := fs.String("id", "", "video id returned at submission time")
	watch := fs.Bool("watch", false, "keep polling until the job reaches a terminal state")
	api := fs.String("api", "", "service base URL (overrides "+config.EnvBaseURL+")")
	jsonOut := fs.Bool("json", false, "print JSON output")
	plain := fs.Bool("plain", false, "plain line output, no interactive view")
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

	if !*watch {
		snap, err := client.JobStatus(context.Background(), *id)
		if err != nil {
			return err
		}
		if *jsonOut {
			return printJSON(snap)
		}
		fmt.Printf("video:    %s\n", snap.VideoID)
		fmt.Printf("status:   %s\n", snap.Status)
		if snap.Progress != nil {
			fmt.Printf("progress: %d%%\n", *snap.Progress)
		}
		if snap.Message != "" {
			fmt.Printf("message:  %s\n", snap.Message)
		}
		if snap.ErrorDetail != "" {
			fmt.Printf("error:    %s\n", snap.ErrorDetail)
		}
		if snap.ResultURL != "" {
			fmt.Printf("result:   %s\n", snap.ResultURL)
		}
		return nil
	}

	start := func(tr *tracker.Tracker) error {
		return tr.Watch(*id)
	}
	job, err := runTracked(client, start, trackOptions{
		jsonOut: *jsonOut,
		plain:   *plain,
		label:   strings.TrimSpace(*id),
	})
	if err != nil {
		return err
	}
	return reportOutcome(job, *jsonOut)
}
