package hoopapi

import (
	"context"
	"fmt"
	"net/http"
)

// Style is one commentary personality offered by the backend.
type Style struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListStyles fetches the commentary personalities the backend accepts for
// the style field of a submission.
func (c *Client) ListStyles(ctx context.Context) ([]Style, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/personalities"), nil)
	if err != nil {
		return nil, fmt.Errorf("build styles request: %w", err)
	}

	var styles []Style
	if err := c.doJSON(req, &styles); err != nil {
		return nil, err
	}
	return styles, nil
}
