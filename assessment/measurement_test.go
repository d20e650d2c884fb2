package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeMeasurementInstrumentedPage(t *testing.T) {
	html := `<html><head>
		<script src="https://www.googletagmanager.com/gtag/js?id=G-ABC123"></script>
		<script>
			window.dataLayer = window.dataLayer || [];
			gtag('config', 'G-ABC123');
			gtag('event', 'sign_up');
		</script>
		<script src="https://www.googletagmanager.com/gtm.js?id=GTM-XYZ9"></script>
		<script src="https://static.hotjar.com/c/hotjar-12.js"></script>
		<script src="https://js.hs-scripts.com/12345.js"></script>
		<script src="https://cdn.cookielaw.org/scripttemplates/otSDKStub.js"></script>
		<script src="https://browser.sentry-cdn.com/bundle.min.js"></script>
		<script>fbq('init', '99'); fbq('track', 'PageView');</script>
	</head><body></body></html>`

	home := pageFrom(t, html, "https://example.com", "")
	analysis, details := AnalyzeMeasurement(home)

	assert.Contains(t, details.AnalyticsPlatforms, "Google Analytics 4")
	assert.True(t, details.HasEventTracking)
	assert.True(t, details.HasTagManager)
	assert.Contains(t, details.CRMTools, "HubSpot")
	assert.Contains(t, details.HeatmapTools, "Hotjar")
	assert.True(t, details.HasConsentBanner)
	assert.Contains(t, details.MonitoringTools, "Sentry")
	assert.Contains(t, details.AdPixels, "Facebook Pixel")

	titles := strengthTitles(analysis)
	assert.Contains(t, titles, "Analytics Installed")
	assert.Contains(t, titles, "Event Tracking Configured")
	assert.Contains(t, titles, "Tag Manager In Place")
}

func TestAnalyzeMeasurementBarePage(t *testing.T) {
	home := pageFrom(t, `<html><body><p>no scripts at all</p></body></html>`, "https://example.com", "")
	analysis, details := AnalyzeMeasurement(home)

	assert.Equal(t, 0.0, analysis.Score)
	assert.NotNil(t, details.AnalyticsPlatforms, "detail slices serialize as [] rather than null")
	assert.Empty(t, details.AnalyticsPlatforms)
	assert.NotNil(t, details.AdPixels)
	assert.False(t, details.HasEventTracking)

	assert.Contains(t, recTitles(analysis), "Install Analytics")
}

func TestAnalyzeMeasurementAlwaysRecommendsAITracking(t *testing.T) {
	// These three cannot be verified from page HTML, so they close out the
	// recommendation list on every run, instrumented or not.
	wantTail := []string{
		"Track AI Platform Referrals",
		"Monitor AI Mentions of Your Brand",
		"Measure AI Share of Voice",
	}

	for _, html := range []string{
		`<html><body></body></html>`,
		`<html><head><script src="https://www.googletagmanager.com/gtag/js?id=G-1"></script></head><body></body></html>`,
	} {
		home := pageFrom(t, html, "https://example.com", "")
		analysis, _ := AnalyzeMeasurement(home)

		titles := recTitles(analysis)
		require.GreaterOrEqual(t, len(titles), 3)
		assert.Equal(t, wantTail, titles[len(titles)-3:])
	}
}

func TestMatchTools(t *testing.T) {
	found := matchTools(analyticsPatterns, "https://plausible.io/js/script.js")
	assert.Equal(t, []string{"Plausible"}, found)

	none := matchTools(analyticsPatterns, "nothing to see")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestScriptCorpora(t *testing.T) {
	page := pageFrom(t, `<html><head>
		<script src="https://cdn.example.net/lib.js"></script>
		<script>console.log("inline");</script>
	</head><body></body></html>`, "https://example.com", "")

	srcs, inline := scriptCorpora(page)
	assert.Contains(t, srcs, "cdn.example.net/lib.js")
	assert.NotContains(t, srcs, "inline")
	assert.Contains(t, inline, `console.log("inline")`)
}
