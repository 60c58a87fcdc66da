package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"hoopnarrator/internal/config"
)

type downloadResult struct {
	VideoID string `json:"video_id"`
	Path    string `json:"path"`
	Bytes   int64  `json:"bytes"`
}

func runDownload(args []string) error {
	fs := flag.NewFlagSet("download", flag.ContinueOnError)
	id := fs.String("id", "", "video id of a completed job")
	out := fs.String("out", "", "destination path (defaults to <id>.mp4)")
	api := fs.String("api", "", "service base URL (overrides "+config.EnvBaseURL+")")
	jsonOut := fs.Bool("json", false, "print JSON output")
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

	dest := strings.TrimSpace(*out)
	if dest == "" && strings.TrimSpace(*id) != "" {
		dest = strings.TrimSpace(*id) + ".mp4"
	}

	n, err := client.Download(context.Background(), *id, dest)
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(downloadResult{
			VideoID: strings.TrimSpace(*id),
			Path:    dest,
			Bytes:   n,
		})
	}
	fmt.Printf("saved %s (%s)\n", dest, formatBytesIEC(n))
	return nil
}
