package assessment

import (
	"fmt"
	"strings"
)

// Schema types counted toward the diversity bonus.
var coreSchemaTypes = []string{"FAQPage", "Article", "Organization", "WebSite", "BreadcrumbList"}

// AnalyzeTechnical assesses machine readability and crawlability from the
// homepage DOM plus the external signal results. Absent signals read as
// failed checks, never as errors.
func AnalyzeTechnical(home *ParsedPage, sig SignalSet) (PillarAnalysis, TechnicalDetails) {
	b := newPillarBuilder(PillarTechnical)
	details := TechnicalDetails{
		SchemaTypes:   home.SchemaTypes(),
		BlockedAIBots: []string{},
	}

	// Schema markup
	details.HasSchema = len(home.JSONLDBlocks) > 0 || home.Doc.Find("[itemscope]").Length() > 0
	if details.HasSchema {
		b.pass(ptSchemaPresent, "Structured Data Present",
			"Schema markup describes the page's meaning explicitly instead of leaving crawlers to infer it.")

		diversity := 0
		for _, want := range coreSchemaTypes {
			for _, have := range details.SchemaTypes {
				if have == want || (want == "BreadcrumbList" && have == "Breadcrumb") {
					diversity++
					break
				}
			}
		}
		if diversity >= schemaDiversityMin {
			b.pass(ptSchemaDiversity, "Diverse Schema Coverage",
				fmt.Sprintf("%d core schema types cover the site's identity, content and navigation.", diversity))
		} else {
			b.fail("Broaden Schema Coverage",
				"Add Organization, WebSite, Article, FAQPage and Breadcrumb schema where each applies.",
				"Each schema type answers a different machine question about your site; coverage compounds.")
		}
	} else {
		b.fail("Add Schema Markup",
			"Embed JSON-LD structured data describing your organization and content.",
			"Structured data is the most direct channel for telling AI systems what your pages mean.")
	}

	// HTTPS and certificate health
	details.IsHTTPS = strings.HasPrefix(home.URL, "https://")
	if details.IsHTTPS {
		b.pass(ptHTTPS, "HTTPS Enabled", "Traffic is served over a secure connection.")
		if ssl := sig.SSL; ssl != nil {
			days := ssl.DaysRemaining
			details.SSLDaysRemaining = &days
			if ssl.IsValid && days > sslRenewalDays {
				b.pass(ptSSLHealth, "Healthy SSL Certificate",
					fmt.Sprintf("Certificate is valid with %d days until expiry.", days))
			} else if ssl.IsValid {
				b.fail("Renew Your SSL Certificate",
					fmt.Sprintf("The certificate expires in %d days; renew before crawl errors start.", days),
					"A lapsed certificate makes the whole site unreachable to both users and crawlers.")
			} else {
				b.fail("Fix SSL Certificate Issues",
					"The certificate failed validation; replace or re-issue it.",
					"Certificate errors abort most automated fetches outright.")
			}
		}
	} else {
		b.fail("Serve the Site Over HTTPS",
			"Obtain a certificate and redirect all HTTP traffic.",
			"Crawlers treat plaintext sites as second-class, and many AI fetchers refuse them entirely.")
	}

	// Mobile viewport
	if sig.PageSpeed != nil && sig.PageSpeed.Audits.Viewport {
		details.HasViewport = true
	} else if _, ok := home.Doc.Find(`meta[name="viewport"]`).Attr("content"); ok {
		details.HasViewport = true
	}
	if details.HasViewport {
		b.pass(ptViewport, "Mobile Viewport Configured", "The page declares a responsive viewport.")
	} else {
		b.fail("Configure a Mobile Viewport",
			`Add <meta name="viewport" content="width=device-width, initial-scale=1">.`,
			"Mobile rendering feeds most crawl pipelines; a missing viewport degrades how your pages are evaluated.")
	}

	// Sitemap
	details.SitemapFound = sig.Sitemap.Exists
	if details.SitemapFound {
		desc := fmt.Sprintf("sitemap.xml lists %d URLs.", sig.Sitemap.URLCount)
		if sig.Sitemap.HasLastmod {
			desc += " Entries carry lastmod dates, signalling maintenance."
		}
		b.pass(ptSitemap, "Sitemap Found", desc)
	} else {
		b.fail("Publish a Sitemap",
			"Generate sitemap.xml and reference it from robots.txt.",
			"A sitemap is the cheapest way to guarantee crawlers discover every page you care about.")
	}

	// robots.txt and AI crawler access
	details.RobotsFound = sig.Robots.Exists
	details.BlockedAIBots = append(details.BlockedAIBots, sig.Robots.BlockedBots...)
	if details.RobotsFound {
		b.pass(ptRobotsTxt, "robots.txt Present", "Crawler directives are published at the standard location.")

		if len(sig.Robots.BlockedBots) > 0 {
			b.fail("Unblock AI Crawlers",
				fmt.Sprintf("robots.txt blocks: %s. Allow them unless exclusion is a deliberate policy.",
					strings.Join(sig.Robots.BlockedBots, ", ")),
				"A blocked AI crawler cannot read your site, which removes you from that assistant's answer pool completely.")
		} else if sig.Robots.AllowsAllCrawlers {
			b.pass(ptAIBotsAllowed, "AI Crawlers Allowed",
				"No AI assistant crawler is blocked, so your content can enter their answer pools.")
		} else {
			b.fail("Remove the Blanket Crawl Block",
				"robots.txt disallows the site root for all user agents. Open it up or carve out the crawlers you want.",
				"A wildcard Disallow: / keeps every AI crawler out, which removes you from their answer pools completely.")
		}
	} else {
		b.fail("Add a robots.txt",
			"Publish a robots.txt with a sitemap directive, even if it allows everything.",
			"Without robots.txt some crawlers apply conservative defaults to your whole site.")
	}

	// Canonical
	_, details.HasCanonical = home.Doc.Find(`link[rel="canonical"]`).Attr("href")
	if details.HasCanonical {
		b.pass(ptCanonical, "Canonical URL Declared", "Duplicate-content signals consolidate onto one URL.")
	} else {
		b.fail("Declare Canonical URLs",
			`Add <link rel="canonical"> to every page.`,
			"Split signals across URL variants dilute the authority any single version accumulates.")
	}

	// Open Graph
	for _, prop := range []string{"og:title", "og:description", "og:image"} {
		if home.Doc.Find(fmt.Sprintf(`meta[property="%s"]`, prop)).Length() > 0 {
			details.OpenGraphTags++
		}
	}
	if details.OpenGraphTags >= 2 {
		b.pass(ptOpenGraph, "Open Graph Tags Present",
			fmt.Sprintf("%d of 3 core Open Graph tags are set.", details.OpenGraphTags))
	} else {
		b.fail("Complete Open Graph Tags",
			"Set og:title, og:description and og:image on shareable pages.",
			"OG tags control how your pages are represented when referenced across other platforms.")
	}

	// llms.txt
	details.LLMSTxtFound = sig.LLMSTxt.Exists
	if details.LLMSTxtFound {
		b.pass(ptLLMSTxt, "llms.txt Found",
			"An llms.txt manifest points language models at your most useful content.")
	} else {
		b.fail("Add an llms.txt File",
			"Publish /llms.txt summarizing the site and linking your most quotable pages.",
			"The emerging llms.txt convention gives AI systems a curated map of your site, and very few competitors have one yet.")
	}

	// PageSpeed
	if psi := sig.PageSpeed; psi != nil {
		perf := psi.PerformanceScore
		details.PerformanceScore = &perf
		switch {
		case perf >= psiFastScore:
			b.pass(ptPageSpeedFast, "Excellent Page Speed",
				fmt.Sprintf("Lighthouse performance score of %d.", perf))
		case perf >= psiOKScore:
			b.pass(ptPageSpeedOK, "Acceptable Page Speed",
				fmt.Sprintf("Lighthouse performance score of %d; there is headroom to optimize.", perf))
		default:
			b.fail("Improve Page Speed",
				fmt.Sprintf("Lighthouse performance score is %d; optimize images, scripts and server response.", perf),
				"Slow pages get truncated crawl budgets, so less of your content is even seen.")
		}

		access := psi.AccessibilityScore
		details.AccessibilityScore = &access
		if access >= psiFastScore {
			b.pass(ptAccessibility, "Strong Accessibility",
				fmt.Sprintf("Lighthouse accessibility score of %d.", access))
		} else {
			b.fail("Improve Accessibility",
				"Fix contrast, labeling and semantic-markup issues surfaced by Lighthouse.",
				"Accessible markup doubles as machine-readable markup; the same fixes serve both audiences.")
		}
	} else {
		b.fail("Verify Page Speed",
			"Run a Lighthouse or PageSpeed Insights audit; performance data was unavailable during this assessment.",
			"Fast pages get crawled more completely and ranked more favourably for retrieval.")
	}

	return b.build(), details
}
