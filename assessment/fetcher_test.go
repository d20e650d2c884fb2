package assessment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare domain gets https", "example.com", "https://example.com"},
		{"http upgraded", "http://example.com/blog", "https://example.com/blog"},
		{"trailing slash stripped", "https://example.com/blog/", "https://example.com/blog"},
		{"root slash kept", "https://example.com/", "https://example.com/"},
		{"utm params dropped", "https://example.com/page?utm_source=news&q=1", "https://example.com/page?q=1"},
		{"ref param dropped", "https://example.com/page?ref=twitter", "https://example.com/page"},
		{"fragment dropped", "https://example.com/page#section", "https://example.com/page"},
		{"surrounding whitespace", "  example.com  ", "https://example.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeURL(tc.in))
		})
	}
}

func TestNormalizeURLFailSoft(t *testing.T) {
	assert.Equal(t, "", NormalizeURL(""))
	assert.Equal(t, "://bad", NormalizeURL("://bad"))
}

func TestFetchWebsite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/old":
			http.Redirect(w, r, "/new", http.StatusMovedPermanently)
		case "/new":
			w.Write([]byte("<html><body>landed</body></html>"))
		case "/missing":
			http.NotFound(w, r)
		default:
			w.Write([]byte("<html><body>home</body></html>"))
		}
	}))
	defer srv.Close()

	f := NewFetcher()

	t.Run("Success", func(t *testing.T) {
		res, err := f.FetchWebsite(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Contains(t, res.HTML, "home")
		assert.Equal(t, srv.URL, res.URL)
		assert.Greater(t, res.LoadTime, time.Duration(0))
	})

	t.Run("FollowsRedirects", func(t *testing.T) {
		res, err := f.FetchWebsite(context.Background(), srv.URL+"/old")
		require.NoError(t, err)
		assert.Equal(t, srv.URL+"/new", res.URL, "result carries the post-redirect URL")
		assert.Contains(t, res.HTML, "landed")
	})

	t.Run("ErrorStatus", func(t *testing.T) {
		_, err := f.FetchWebsite(context.Background(), srv.URL+"/missing")
		assert.ErrorIs(t, err, ErrFetchFailed)
	})

	t.Run("Unreachable", func(t *testing.T) {
		_, err := f.FetchWebsite(context.Background(), "http://127.0.0.1:1")
		assert.ErrorIs(t, err, ErrFetchFailed)
	})
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte("too late"))
	}))
	defer srv.Close()

	f := NewFetcher()
	_, err := f.fetch(context.Background(), srv.URL, 50*time.Millisecond)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestExtractInternalLinks(t *testing.T) {
	html := `<html><body>
		<a href="/services">Services</a>
		<a href="/pricing">Pricing</a>
		<a href="/blog">Blog</a>
		<a href="/about">About</a>
		<a href="/faq">FAQ</a>
		<a href="/faq">FAQ again</a>
		<a href="/contact">Contact</a>
		<a href="https://other.example.net/faq">External</a>
		<a href="mailto:hi@example.com">Mail</a>
		<a href="#">Top</a>
		<a href="javascript:void(0)">Noop</a>
	</body></html>`

	page := mustParse(t, html, "https://example.com")
	links := ExtractInternalLinks(page, "https://example.com")

	require.Len(t, links, maxCrawlPages)
	assert.Equal(t, []string{
		"https://example.com/faq",
		"https://example.com/about",
		"https://example.com/blog",
		"https://example.com/services",
		"https://example.com/pricing",
	}, links, "FAQ outranks About outranks Blog outranks Services; ties keep document order")
}

func TestExtractInternalLinksSkipsHomepage(t *testing.T) {
	html := `<html><body>
		<a href="/">Home</a>
		<a href="/about/">About</a>
	</body></html>`

	page := mustParse(t, html, "https://example.com")
	links := ExtractInternalLinks(page, "https://example.com")

	assert.Equal(t, []string{"https://example.com/about"}, links)
}

func TestPathRank(t *testing.T) {
	rank, ok := pathRank("/faq")
	require.True(t, ok)
	assert.Equal(t, 0, rank)

	rank, ok = pathRank("/company/team")
	require.True(t, ok)
	assert.Equal(t, 1, rank)

	_, ok = pathRank("/privacy-policy")
	assert.False(t, ok)

	_, ok = pathRank("/")
	assert.False(t, ok)
}

func TestFetchMultiplePagesPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("<html><body>" + r.URL.Path + "</body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher()
	results := f.FetchMultiplePages(context.Background(), []string{
		srv.URL + "/about",
		srv.URL + "/broken",
		srv.URL + "/faq",
	})

	require.Len(t, results, 2, "failed pages are dropped, not fatal")
	assert.Contains(t, results, srv.URL+"/about")
	assert.Contains(t, results, srv.URL+"/faq")
	assert.NotContains(t, results, srv.URL+"/broken")
}
