package assessment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
)

const (
	homepageTimeout  = 30 * time.Second
	crawlPageTimeout = 15 * time.Second
	maxCrawlPages    = 5
	maxHTMLSize      = 10 << 20

	browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Fetch failure sentinels. A homepage fetch failure is the only fatal
// condition in an assessment run.
var (
	ErrTimeout     = errors.New("fetch timed out")
	ErrFetchFailed = errors.New("fetch failed")
)

// FetchResult is the raw outcome of fetching one page.
type FetchResult struct {
	HTML     string
	URL      string // post-redirect
	LoadTime time.Duration
	Headers  http.Header
}

// Fetcher retrieves site HTML for analysis.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher with a pooled transport. Redirects are
// followed; per-request deadlines come from contexts.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Tracking query parameters stripped during normalization.
var trackedParams = []string{"ref"}

// NormalizeURL forces https, drops the trailing slash on non-root paths
// and removes known tracking query parameters. On any parse error the
// input is returned unchanged.
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}

	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return raw
	}

	u.Scheme = "https"
	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	q := u.Query()
	for param := range q {
		if strings.HasPrefix(strings.ToLower(param), "utm_") {
			q.Del(param)
			continue
		}
		for _, tracked := range trackedParams {
			if strings.EqualFold(param, tracked) {
				q.Del(param)
			}
		}
	}
	u.RawQuery = q.Encode()
	u.Fragment = ""

	return u.String()
}

// FetchWebsite GETs the URL with a browser-like User-Agent and a hard
// 30-second deadline. Timeout surfaces as ErrTimeout, everything else as
// ErrFetchFailed wrapping the cause.
func (f *Fetcher) FetchWebsite(ctx context.Context, rawURL string) (*FetchResult, error) {
	return f.fetch(ctx, rawURL, homepageTimeout)
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string, timeout time.Duration) (*FetchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s: %s", ErrTimeout, timeout, rawURL)
		}
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: status %d for %s", ErrFetchFailed, resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxHTMLSize))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s: %s", ErrTimeout, timeout, rawURL)
		}
		return nil, fmt.Errorf("%w: read body: %v", ErrFetchFailed, err)
	}

	return &FetchResult{
		HTML:     string(body),
		URL:      resp.Request.URL.String(),
		LoadTime: time.Since(start),
		Headers:  resp.Header,
	}, nil
}

// Priority path segments for the secondary crawl, lowest rank first. FAQ
// pages carry the most AEO signal, then about, blog, services.
var priorityPaths = []struct {
	segment string
	rank    int
}{
	{"faq", 0},
	{"faqs", 0},
	{"frequently-asked-questions", 0},
	{"about", 1},
	{"about-us", 1},
	{"company", 1},
	{"team", 1},
	{"blog", 2},
	{"news", 2},
	{"articles", 2},
	{"resources", 2},
	{"services", 3},
	{"products", 3},
	{"pricing", 3},
	{"how-it-works", 3},
	{"case-studies", 4},
	{"contact", 4},
	{"testimonials", 4},
}

// ExtractInternalLinks scans the page's anchors for same-host links whose
// path matches a priority segment, dedupes them and returns at most five,
// sorted FAQ first, then About, then Blog, then Services, rest last.
func ExtractInternalLinks(page *ParsedPage, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	type candidate struct {
		url  string
		rank int
	}
	seen := make(map[string]bool)
	var candidates []candidate

	page.Doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || href == "#" || strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
			return
		}

		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		if resolved.Hostname() != base.Hostname() {
			return
		}

		rank, ok := pathRank(resolved.Path)
		if !ok {
			return
		}

		resolved.Fragment = ""
		resolved.RawQuery = ""
		normalized := NormalizeURL(resolved.String())
		if normalized == NormalizeURL(baseURL) || seen[normalized] {
			return
		}
		seen[normalized] = true
		candidates = append(candidates, candidate{url: normalized, rank: rank})
	})

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].rank < candidates[j].rank
	})

	urls := make([]string, 0, maxCrawlPages)
	for _, c := range candidates {
		if len(urls) == maxCrawlPages {
			break
		}
		urls = append(urls, c.url)
	}
	return urls
}

func pathRank(path string) (int, bool) {
	lower := strings.ToLower(strings.Trim(path, "/"))
	if lower == "" {
		return 0, false
	}
	best := -1
	for _, p := range priorityPaths {
		for _, segment := range strings.Split(lower, "/") {
			if segment == p.segment || strings.HasPrefix(segment, p.segment+"-") {
				if best == -1 || p.rank < best {
					best = p.rank
				}
			}
		}
	}
	return best, best != -1
}

// FetchMultiplePages fetches all URLs concurrently with independent
// 15-second timeouts. Individual failures are logged and excluded; the
// returned map holds only the pages that succeeded.
func (f *Fetcher) FetchMultiplePages(ctx context.Context, urls []string) map[string]*FetchResult {
	results := make(map[string]*FetchResult, len(urls))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, pageURL := range urls {
		g.Go(func() error {
			res, err := f.fetch(gctx, pageURL, crawlPageTimeout)
			if err != nil {
				log.Printf("fetcher: skipping secondary page %s: %v", pageURL, err)
				return nil // partial success is expected
			}
			mu.Lock()
			results[pageURL] = res
			mu.Unlock()
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers never return errors

	return results
}
