// Package signals implements the external data providers the assessment
// engine consumes: PageSpeed Insights, SSL health, sitemap.xml, robots.txt,
// llms.txt, Google Knowledge Graph and Reddit search. Every provider
// returns a typed result or a safe absent value; none of them ever aborts
// an assessment run.
package signals

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// maxBodySize caps how much of any provider response we read.
const maxBodySize = 5 << 20

// Client bundles the signal providers behind one HTTP transport so the
// engine can fan them out with a single value.
type Client struct {
	http              *http.Client
	pagespeedKey      string
	knowledgeGraphKey string
}

// Option configures a Client.
type Option func(*Client)

// WithPageSpeedKey sets the Google PageSpeed Insights API key.
func WithPageSpeedKey(key string) Option {
	return func(c *Client) { c.pagespeedKey = key }
}

// WithKnowledgeGraphKey sets the Google Knowledge Graph API key.
func WithKnowledgeGraphKey(key string) Option {
	return func(c *Client) { c.knowledgeGraphKey = key }
}

// NewClient creates a signals client. The underlying transport reuses
// connections; per-call timeouts come from the request contexts.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// fetchText GETs a URL with the shared UA and returns the body text along
// with the response status code.
func (c *Client) fetchText(ctx context.Context, url string, timeout time.Duration) (string, int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/plain,text/html,application/xml,application/json;q=0.9,*/*;q=0.8")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("read %s: %w", url, err)
	}
	return string(body), resp.StatusCode, nil
}
