package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"hoopnarrator/internal/config"
	"hoopnarrator/internal/hoopapi"
	"hoopnarrator/internal/tracker"
)

func runLink(args []string) error {
	fs := flag.NewFlagSet("link", flag.ContinueOnError)
	link := fs.String("url", "", "remote video URL (for example a YouTube link)")
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
		sub, err := client.SubmitLink(context.Background(), hoopapi.LinkOptions{
			URL:   *link,
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
		return tr.SubmitURL(*link, *style)
	}
	job, err := runTracked(client, start, trackOptions{
		jsonOut: *jsonOut,
		plain:   *plain,
		label:   strings.TrimSpace(*link),
	})
	if err != nil {
		return err
	}
	return reportOutcome(job, *jsonOut)
}
