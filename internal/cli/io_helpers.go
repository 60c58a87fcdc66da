package cli

import (
	"encoding/json"
	"os"
	"strconv"

	"hoopnarrator/internal/config"
	"hoopnarrator/internal/hoopapi"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func stdoutIsTTY() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

func newServiceClient(apiFlag string) (*hoopapi.Client, error) {
	base, err := config.ResolveBaseURL(apiFlag)
	if err != nil {
		return nil, err
	}
	return hoopapi.NewClient(hoopapi.ClientConfig{BaseURL: base})
}

func formatBytesIEC(n int64) string {
	if n <= 0 {
		return "0 B"
	}
	const unit = 1024
	if n < unit {
		return strconv.FormatInt(n, 10) + " B"
	}
	div, exp := int64(unit), 0
	for q := n / unit; q >= unit; q /= unit {
		div *= unit
		exp++
	}
	value := float64(n) / float64(div)
	suffix := "KMGTPE"[exp]
	return strconv.FormatFloat(value, 'f', 1, 64) + " " + string(suffix) + "iB"
}
