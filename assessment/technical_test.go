package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeo-assessment/backend/signals"
)

func richSignalSet() SignalSet {
	return SignalSet{
		PageSpeed: &signals.PageSpeedResult{
			PerformanceScore:   95,
			AccessibilityScore: 96,
			Audits:             signals.PageSpeedAudits{Viewport: true},
		},
		SSL:     &signals.SSLResult{IsValid: true, DaysRemaining: 90},
		Sitemap: signals.SitemapResult{Exists: true, URLCount: 12, HasLastmod: true},
		Robots:  signals.RobotsResult{Exists: true, AllowsAllCrawlers: true, BlockedBots: []string{}},
		LLMSTxt: signals.LLMSResult{Exists: true},
	}
}

func TestAnalyzeTechnicalFullyEquipped(t *testing.T) {
	html := `<html><head>
		<link rel="canonical" href="https://example.com/">
		<meta name="viewport" content="width=device-width, initial-scale=1">
		<meta property="og:title" content="Acme">
		<meta property="og:description" content="What Acme does">
		<meta property="og:image" content="https://example.com/og.png">
		<script type="application/ld+json">{"@graph":[
			{"@type":"Organization"},{"@type":"WebSite"},{"@type":"FAQPage"}
		]}</script>
	</head><body></body></html>`

	home := pageFrom(t, html, "https://example.com", "")
	analysis, details := AnalyzeTechnical(home, richSignalSet())

	assert.True(t, details.HasSchema)
	assert.ElementsMatch(t, []string{"Organization", "WebSite", "FAQPage"}, details.SchemaTypes)
	assert.True(t, details.IsHTTPS)
	require.NotNil(t, details.SSLDaysRemaining)
	assert.Equal(t, 90, *details.SSLDaysRemaining)
	assert.True(t, details.HasViewport)
	assert.True(t, details.SitemapFound)
	assert.True(t, details.RobotsFound)
	assert.Empty(t, details.BlockedAIBots)
	assert.True(t, details.HasCanonical)
	assert.Equal(t, 3, details.OpenGraphTags)
	assert.True(t, details.LLMSTxtFound)
	require.NotNil(t, details.PerformanceScore)
	assert.Equal(t, 95, *details.PerformanceScore)

	// Every check passing overflows the raw sum; the score clamps at 5.
	assert.Equal(t, maxPillarScore, analysis.Score)

	titles := strengthTitles(analysis)
	assert.Contains(t, titles, "Diverse Schema Coverage")
	assert.Contains(t, titles, "AI Crawlers Allowed")
	assert.Contains(t, titles, "Excellent Page Speed")
	assert.Contains(t, titles, "Strong Accessibility")
}

func TestAnalyzeTechnicalBlockedBots(t *testing.T) {
	home := pageFrom(t, `<html><body></body></html>`, "https://example.com", "")
	sig := SignalSet{
		Robots: signals.RobotsResult{
			Exists:      true,
			BlockedBots: []string{"GPTBot", "ClaudeBot"},
		},
	}

	analysis, details := AnalyzeTechnical(home, sig)

	assert.Equal(t, []string{"GPTBot", "ClaudeBot"}, details.BlockedAIBots)
	assert.NotContains(t, strengthTitles(analysis), "AI Crawlers Allowed")

	var unblock *Recommendation
	for i, rec := range analysis.Recommendations {
		if rec.Title == "Unblock AI Crawlers" {
			unblock = &analysis.Recommendations[i]
		}
	}
	require.NotNil(t, unblock, "blocked bots must surface a recommendation")
	assert.Contains(t, unblock.Description, "GPTBot")
	assert.Contains(t, unblock.Description, "ClaudeBot")
}

func TestAnalyzeTechnicalWildcardDisallow(t *testing.T) {
	home := pageFrom(t, `<html><body></body></html>`, "https://example.com", "")
	sig := SignalSet{
		Robots: signals.RobotsResult{
			Exists:            true,
			BlockedBots:       []string{},
			AllowsAllCrawlers: false,
		},
	}

	analysis, details := AnalyzeTechnical(home, sig)

	assert.True(t, details.RobotsFound)
	assert.Empty(t, details.BlockedAIBots)
	assert.NotContains(t, strengthTitles(analysis), "AI Crawlers Allowed")
	assert.Contains(t, recTitles(analysis), "Remove the Blanket Crawl Block",
		"a wildcard root disallow must surface a recommendation, not pass silently")
}

func TestAnalyzeTechnicalNoPageSpeedData(t *testing.T) {
	home := pageFrom(t, `<html><body></body></html>`, "https://example.com", "")
	analysis, details := AnalyzeTechnical(home, SignalSet{})

	assert.Nil(t, details.PerformanceScore)
	assert.Nil(t, details.AccessibilityScore)
	assert.NotContains(t, strengthTitles(analysis), "Excellent Page Speed")
	assert.NotContains(t, strengthTitles(analysis), "Acceptable Page Speed")
	assert.Contains(t, recTitles(analysis), "Verify Page Speed")
}

func TestAnalyzeTechnicalSSLRenewal(t *testing.T) {
	home := pageFrom(t, `<html><body></body></html>`, "https://example.com", "")
	sig := SignalSet{SSL: &signals.SSLResult{IsValid: true, DaysRemaining: 12}}

	analysis, details := AnalyzeTechnical(home, sig)

	require.NotNil(t, details.SSLDaysRemaining)
	assert.Equal(t, 12, *details.SSLDaysRemaining)
	assert.Contains(t, recTitles(analysis), "Renew Your SSL Certificate")
	assert.NotContains(t, strengthTitles(analysis), "Healthy SSL Certificate")
}

func TestAnalyzeTechnicalHTTPOnly(t *testing.T) {
	home := pageFrom(t, `<html><body></body></html>`, "http://example.com", "")
	analysis, details := AnalyzeTechnical(home, SignalSet{
		SSL: &signals.SSLResult{IsValid: true, DaysRemaining: 200},
	})

	assert.False(t, details.IsHTTPS)
	assert.Nil(t, details.SSLDaysRemaining, "certificate health is only judged for https sites")
	assert.Contains(t, recTitles(analysis), "Serve the Site Over HTTPS")
}

func TestAnalyzeTechnicalPerformanceBands(t *testing.T) {
	home := pageFrom(t, `<html><body></body></html>`, "https://example.com", "")

	mid := SignalSet{PageSpeed: &signals.PageSpeedResult{PerformanceScore: 65, AccessibilityScore: 70}}
	analysis, _ := AnalyzeTechnical(home, mid)
	assert.Contains(t, strengthTitles(analysis), "Acceptable Page Speed")
	assert.Contains(t, recTitles(analysis), "Improve Accessibility")

	slow := SignalSet{PageSpeed: &signals.PageSpeedResult{PerformanceScore: 30}}
	analysis, _ = AnalyzeTechnical(home, slow)
	assert.Contains(t, recTitles(analysis), "Improve Page Speed")
}
