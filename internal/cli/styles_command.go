package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"hoopnarrator/internal/config"
)

func runStyles(args []string) error {
	fs := flag.NewFlagSet("styles", flag.ContinueOnError)
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

	styles, err := client.ListStyles(context.Background())
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(styles)
	}

	if len(styles) == 0 {
		fmt.Println("the service reported no commentary styles")
		return nil
	}
	for _, s := range styles {
		fmt.Printf("%-12s %-16s %s\n", s.ID, s.Name, s.Description)
	}
	return nil
}
