package assessment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// toolPattern names a tool and the substring/regex that betrays it in
// script sources or inline script bodies.
type toolPattern struct {
	name    string
	pattern *regexp.Regexp
}

func tp(name, pattern string) toolPattern {
	return toolPattern{name: name, pattern: regexp.MustCompile("(?i)" + pattern)}
}

var (
	analyticsPatterns = []toolPattern{
		tp("Google Analytics 4", `googletagmanager\.com/gtag|gtag\(\s*['"]config['"]\s*,\s*['"]G-`),
		tp("Plausible", `plausible\.io/js`),
		tp("Mixpanel", `mixpanel`),
		tp("Amplitude", `amplitude`),
		tp("Heap", `heap\.io|heapanalytics|heap\.load`),
		tp("Segment", `segment\.(com|io)/analytics|analytics\.load\(`),
		tp("Fathom", `usefathom\.com`),
		tp("PostHog", `posthog`),
		tp("Matomo", `matomo|piwik`),
	}

	eventTrackingRe = regexp.MustCompile(`(?i)gtag\(\s*['"]event['"]|fbq\(\s*['"]track|analytics\.track\(|plausible\(\s*['"]|posthog\.capture\(|mixpanel\.track\(`)

	tagManagerPatterns = []toolPattern{
		tp("Google Tag Manager", `googletagmanager\.com/gtm\.js|GTM-[A-Z0-9]+`),
		tp("Segment", `cdn\.segment\.com`),
		tp("Tealium", `tealium|utag\.js`),
		tp("Adobe Launch", `assets\.adobedtm\.com`),
	}

	crmPatterns = []toolPattern{
		tp("HubSpot", `hs-scripts\.com|hubspot`),
		tp("Salesforce/Pardot", `pardot\.com|salesforce`),
		tp("Intercom", `intercom`),
		tp("Drift", `drift\.com|driftt\.com`),
		tp("Zendesk", `zendesk|zdassets`),
		tp("Crisp", `crisp\.chat`),
		tp("Tidio", `tidio`),
	}

	heatmapPatterns = []toolPattern{
		tp("Hotjar", `hotjar`),
		tp("Microsoft Clarity", `clarity\.ms`),
		tp("FullStory", `fullstory`),
		tp("Lucky Orange", `luckyorange`),
		tp("Mouseflow", `mouseflow`),
		tp("Crazy Egg", `crazyegg`),
	}

	consentPatterns = []toolPattern{
		tp("OneTrust", `onetrust|cookielaw\.org`),
		tp("Cookiebot", `cookiebot`),
		tp("CookieYes", `cookieyes`),
		tp("Osano", `osano`),
		tp("Termly", `termly`),
	}

	abTestingPatterns = []toolPattern{
		tp("Optimizely", `optimizely`),
		tp("VWO", `visualwebsiteoptimizer|vwo_`),
		tp("Google Optimize", `googleoptimize|optimize\.js`),
		tp("Convert", `convertexperiments`),
		tp("AB Tasty", `abtasty`),
	}

	monitoringPatterns = []toolPattern{
		tp("Sentry", `sentry`),
		tp("Datadog", `datadog`),
		tp("New Relic", `newrelic|nr-data\.net`),
		tp("Rollbar", `rollbar`),
		tp("Bugsnag", `bugsnag`),
		tp("LogRocket", `logrocket`),
	}

	pixelPatterns = []toolPattern{
		tp("Facebook Pixel", `connect\.facebook\.net|fbq\(`),
		tp("LinkedIn Insight", `snap\.licdn\.com|_linkedin_partner_id`),
		tp("Google Ads", `googleads|googleadservices|AW-\d+`),
		tp("TikTok Pixel", `analytics\.tiktok\.com`),
		tp("Twitter Pixel", `static\.ads-twitter\.com`),
	}
)

// AnalyzeMeasurement detects analytics and marketing instrumentation from
// the homepage's script tags alone; no external calls are involved.
func AnalyzeMeasurement(home *ParsedPage) (PillarAnalysis, MeasurementDetails) {
	b := newPillarBuilder(PillarMeasurement)
	details := MeasurementDetails{
		AnalyticsPlatforms: []string{},
		CRMTools:           []string{},
		HeatmapTools:       []string{},
		MonitoringTools:    []string{},
		AdPixels:           []string{},
	}

	srcCorpus, inlineCorpus := scriptCorpora(home)
	combined := srcCorpus + "\n" + inlineCorpus

	// Analytics platforms
	details.AnalyticsPlatforms = matchTools(analyticsPatterns, combined)
	if len(details.AnalyticsPlatforms) >= 1 {
		b.pass(ptAnalytics, "Analytics Installed",
			fmt.Sprintf("Detected: %s.", strings.Join(details.AnalyticsPlatforms, ", ")))
		if len(details.AnalyticsPlatforms) >= 2 {
			b.pass(ptAnalyticsBonus, "Layered Analytics Stack",
				"Multiple analytics platforms cross-check each other's numbers.")
		}
	} else {
		b.fail("Install Analytics",
			"Add a web analytics platform such as GA4 or Plausible.",
			"Without analytics you cannot see AI-driven referral traffic at all, let alone optimize for it.")
	}

	// Event tracking
	details.HasEventTracking = eventTrackingRe.MatchString(combined)
	if details.HasEventTracking {
		b.pass(ptEventTracking, "Event Tracking Configured",
			"Conversion and interaction events are instrumented.")
	} else {
		b.fail("Track Conversion Events",
			"Instrument signups, purchases and key interactions as events.",
			"Event data is how you learn which AI-referred visitors actually convert.")
	}

	// Tag manager
	if tools := matchTools(tagManagerPatterns, combined); len(tools) > 0 {
		details.HasTagManager = true
		b.pass(ptTagManager, "Tag Manager In Place",
			fmt.Sprintf("Detected: %s.", strings.Join(tools, ", ")))
	} else {
		b.fail("Adopt a Tag Manager",
			"Manage marketing tags through a container like Google Tag Manager.",
			"A tag manager lets you add AI-referral tracking without a code deploy each time.")
	}

	// CRM / chat tooling
	details.CRMTools = matchTools(crmPatterns, combined)
	if len(details.CRMTools) > 0 {
		b.pass(ptCRMTooling, "CRM or Chat Tooling",
			fmt.Sprintf("Detected: %s.", strings.Join(details.CRMTools, ", ")))
	} else {
		b.fail("Connect a CRM",
			"Wire site forms and chat into a CRM to capture lead sources.",
			"Lead-source capture is the only way to attribute pipeline back to AI answer traffic.")
	}

	// Heatmaps / session recording
	details.HeatmapTools = matchTools(heatmapPatterns, combined)
	if len(details.HeatmapTools) > 0 {
		b.pass(ptHeatmaps, "Behavior Analytics",
			fmt.Sprintf("Detected: %s.", strings.Join(details.HeatmapTools, ", ")))
	} else {
		b.fail("Add Behavior Analytics",
			"Use a heatmap or session recording tool on key landing pages.",
			"Seeing how AI-referred visitors behave tells you which cited pages actually satisfy them.")
	}

	// Consent management
	details.HasConsentBanner = len(matchTools(consentPatterns, combined)) > 0
	if details.HasConsentBanner {
		b.pass(ptConsentBanner, "Consent Management Present",
			"A consent platform keeps measurement compliant.")
	} else {
		b.fail("Add Consent Management",
			"Deploy a cookie-consent platform appropriate to your jurisdictions.",
			"Non-compliant measurement risks being disabled entirely, taking your attribution with it.")
	}

	// A/B testing
	details.HasABTesting = len(matchTools(abTestingPatterns, combined)) > 0
	if details.HasABTesting {
		b.pass(ptABTesting, "Experimentation Platform",
			"An A/B testing tool is installed.")
	} else {
		b.fail("Set Up Experimentation",
			"Run A/B tests on the pages AI assistants cite most.",
			"Iterating on cited pages compounds: better pages earn more citations, which earn more traffic to test.")
	}

	// Performance / error monitoring
	details.MonitoringTools = matchTools(monitoringPatterns, combined)
	if len(details.MonitoringTools) > 0 {
		b.pass(ptMonitoring, "Monitoring In Place",
			fmt.Sprintf("Detected: %s.", strings.Join(details.MonitoringTools, ", ")))
	} else {
		b.fail("Add Error and Performance Monitoring",
			"Install a monitoring tool so breakage is caught before crawlers find it.",
			"An erroring page gets dropped from answer pools long before a human notices it is broken.")
	}

	// Ad / conversion pixels
	details.AdPixels = matchTools(pixelPatterns, combined)
	if len(details.AdPixels) > 0 {
		b.pass(ptAdPixels, "Conversion Pixels Installed",
			fmt.Sprintf("Detected: %s.", strings.Join(details.AdPixels, ", ")))
	} else {
		b.fail("Install Conversion Pixels",
			"Add the ad-platform pixels you plan to retarget with.",
			"Pixel audiences let you re-engage visitors who first arrived via an AI recommendation.")
	}

	// These three need tooling beyond anything visible in page HTML, so
	// they are recommended on every run.
	b.fail("Track AI Platform Referrals",
		"Segment traffic from chatgpt.com, perplexity.ai, gemini.google.com and other assistant referrers in your analytics.",
		"This cannot be verified from page HTML; referral segmentation is the baseline metric of AEO performance.")
	b.fail("Monitor AI Mentions of Your Brand",
		"Regularly query major assistants for your brand and category to see how you are represented.",
		"No on-page markup reveals what assistants currently say about you; only direct monitoring does.")
	b.fail("Measure AI Share of Voice",
		"Track how often assistants recommend you versus competitors for your core queries.",
		"Share of voice in AI answers is the AEO equivalent of rank tracking, and it requires dedicated tooling.")

	return b.build(), details
}

// scriptCorpora collects every script src and every inline script body
// into two match targets.
func scriptCorpora(page *ParsedPage) (srcs, inline string) {
	var srcB, inlineB strings.Builder
	page.Doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			srcB.WriteString(src)
			srcB.WriteString("\n")
			return
		}
		inlineB.WriteString(s.Text())
		inlineB.WriteString("\n")
	})
	return srcB.String(), inlineB.String()
}

func matchTools(patterns []toolPattern, corpus string) []string {
	found := []string{}
	for _, p := range patterns {
		if p.pattern.MatchString(corpus) {
			found = append(found, p.name)
		}
	}
	return found
}
