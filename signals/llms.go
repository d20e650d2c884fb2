package signals

import (
	"context"
	"net/http"
	"strings"
)

// LLMSResult describes the site's llms.txt, if any.
type LLMSResult struct {
	Exists  bool   `json:"exists"`
	Content string `json:"content,omitempty"`
}

// CheckLLMSTxt fetches <origin>/llms.txt. Soft-404s that answer an HTML
// page, and bodies too short to be a real manifest, count as absent.
func (c *Client) CheckLLMSTxt(ctx context.Context, origin string) LLMSResult {
	body, status, err := c.fetchText(ctx, strings.TrimSuffix(origin, "/")+"/llms.txt", fileCheckTimeout)
	if err != nil || status != http.StatusOK {
		return LLMSResult{}
	}

	trimmed := strings.TrimSpace(body)
	if len(trimmed) < 10 || looksLikeHTML(trimmed) {
		return LLMSResult{}
	}
	return LLMSResult{Exists: true, Content: body}
}
