package cli

import "fmt"

func Run(args []string) error {
	if len(args) == 0 {
		printRootUsage()
		return nil
	}

	var err error
	switch args[0] {
	case "upload":
		err = runUpload(args[1:])
	case "link":
		err = runLink(args[1:])
	case "status":
		err = runStatus(args[1:])
	case "download":
		err = runDownload(args[1:])
	case "styles":
		err = runStyles(args[1:])
	case "help", "-h", "--help":
		printRootUsage()
		return nil
	default:
		printRootUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}

	return err
}

func printRootUsage() {
	fmt.Println("hoopnarrator: submit basketball clips for AI commentary and track them to completion")
	fmt.Println()
	fmt.Println("Quick Start:")
	fmt.Println("  hoopnarrator upload --file clip.mp4 --style hype")
	fmt.Println("  hoopnarrator link --url https://youtu.be/xyz --style classic")
	fmt.Println("  hoopnarrator status --id <video-id>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  upload    submit a local video file and track processing")
	fmt.Println("  link      submit a remote video URL and track processing")
	fmt.Println("  status    show a job's current state (--watch to follow it)")
	fmt.Println("  download  save a finished job's output video to disk")
	fmt.Println("  styles    list the commentary styles the service accepts")
	fmt.Println()
	fmt.Println("Notes:")
	fmt.Println("  - Use --json on commands for machine-readable output")
	fmt.Println("  - The service address comes from --api, then the")
	fmt.Println("    HOOPNARRATOR_API_URL environment variable, then the local default")
}
