package signals

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRobotsBlockedBotWithWildcardAllow(t *testing.T) {
	content := `User-agent: GPTBot
Disallow: /

User-agent: *
Allow: /
`
	result := ParseRobots(content)

	assert.True(t, result.Exists)
	assert.Equal(t, []string{"GPTBot"}, result.BlockedBots)
	assert.False(t, result.AllowsAllCrawlers, "one blocked AI bot is enough to fail the open-access check")
}

func TestParseRobotsAllowsEverything(t *testing.T) {
	content := `User-agent: *
Disallow:

Sitemap: https://example.com/sitemap.xml
`
	result := ParseRobots(content)

	assert.True(t, result.Exists)
	assert.True(t, result.HasSitemapDirective)
	assert.Empty(t, result.BlockedBots)
	assert.True(t, result.AllowsAllCrawlers)
}

func TestParseRobotsWildcardDisallowAll(t *testing.T) {
	result := ParseRobots("User-agent: *\nDisallow: /\n")

	assert.Empty(t, result.BlockedBots, "the wildcard section never puts named bots on the blocked list")
	assert.False(t, result.AllowsAllCrawlers)
}

func TestParseRobotsSubpathDisallowIsNotBlocking(t *testing.T) {
	content := `User-agent: ClaudeBot
Disallow: /private

User-agent: *
Disallow: /admin
`
	result := ParseRobots(content)

	assert.Empty(t, result.BlockedBots, "only a root disallow counts as blocked")
	assert.True(t, result.AllowsAllCrawlers)
}

func TestParseRobotsCaseInsensitive(t *testing.T) {
	result := ParseRobots("user-agent: gptbot\ndisallow: /\n")
	assert.Equal(t, []string{"GPTBot"}, result.BlockedBots)
}

func TestParseRobotsStripsComments(t *testing.T) {
	content := `User-agent: PerplexityBot # AI answer engine
Disallow: / # keep out
`
	result := ParseRobots(content)
	assert.Equal(t, []string{"PerplexityBot"}, result.BlockedBots)
}

func TestParseRobotsNonRobotsContent(t *testing.T) {
	result := ParseRobots("<!doctype html><html><body>404</body></html>")
	assert.False(t, result.Exists)
	assert.Empty(t, result.BlockedBots)
}

func TestAgentSection(t *testing.T) {
	content := `User-agent: GPTBot
Disallow: /one

User-agent: Bingbot
Disallow: /two
`
	section := agentSection(content, "GPTBot")
	assert.Contains(t, section, "/one")
	assert.NotContains(t, section, "/two", "a section ends at the next User-agent directive")

	assert.Empty(t, agentSection(content, "ClaudeBot"))
}

func TestCheckRobots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			w.Write([]byte("User-agent: *\nAllow: /\nSitemap: /sitemap.xml\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient()

	result := c.CheckRobots(context.Background(), srv.URL)
	require.True(t, result.Exists)
	assert.True(t, result.HasSitemapDirective)
	assert.True(t, result.AllowsAllCrawlers)
}

func TestCheckRobotsMissing(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	result := NewClient().CheckRobots(context.Background(), srv.URL)
	assert.False(t, result.Exists)
}

func TestCheckRobotsSoft404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<!doctype html><html><body>pretty 404 page</body></html>"))
	}))
	defer srv.Close()

	result := NewClient().CheckRobots(context.Background(), srv.URL)
	assert.False(t, result.Exists)
}
