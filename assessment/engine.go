package assessment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/aeo-assessment/backend/signals"
)

// ErrAnalysisFailed wraps the one fatal failure mode: the homepage could
// not be fetched. Every other failure degrades into missing signal.
var ErrAnalysisFailed = errors.New("analysis failed")

// Engine runs complete AEO assessments.
type Engine struct {
	fetcher *Fetcher
	signals *signals.Client
}

// NewEngine creates an Engine around the given signals client.
func NewEngine(sig *signals.Client) *Engine {
	return &Engine{
		fetcher: NewFetcher(),
		signals: sig,
	}
}

// settle runs fn in its own goroutine and delivers its value on the
// returned channel, substituting def if fn panics. Providers already
// translate their own failures into safe defaults; this combinator keeps
// the all-settled contract uniform at the fan-out site.
func settle[T any](fn func() T, def T) <-chan T {
	ch := make(chan T, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("assessment: signal provider panicked: %v", r)
				ch <- def
			}
		}()
		ch <- fn()
	}()
	return ch
}

type fetchOutcome struct {
	result *FetchResult
	err    error
}

// Analyze performs a full assessment of the URL: one concurrent round of
// homepage fetch plus external signal lookups, a bounded crawl of
// priority internal pages, the four pillar analyzers, then aggregation.
func (e *Engine) Analyze(ctx context.Context, rawURL string) (*Report, error) {
	target := NormalizeURL(rawURL)
	parsed, err := url.Parse(target)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("%w: invalid url %q", ErrAnalysisFailed, rawURL)
	}
	origin := parsed.Scheme + "://" + parsed.Host
	brand := brandFromHost(parsed.Hostname())

	// Round one: everything independent fires together.
	homepageCh := settle(func() fetchOutcome {
		res, err := e.fetcher.FetchWebsite(ctx, target)
		return fetchOutcome{result: res, err: err}
	}, fetchOutcome{err: ErrFetchFailed})
	psiCh := settle(func() *signals.PageSpeedResult { return e.signals.PageSpeed(ctx, target) }, nil)
	sslCh := settle(func() *signals.SSLResult { return e.signals.CheckSSL(ctx, parsed.Hostname()) }, nil)
	sitemapCh := settle(func() signals.SitemapResult { return e.signals.CheckSitemap(ctx, origin) }, signals.SitemapResult{})
	robotsCh := settle(func() signals.RobotsResult { return e.signals.CheckRobots(ctx, origin) }, signals.RobotsResult{})
	llmsCh := settle(func() signals.LLMSResult { return e.signals.CheckLLMSTxt(ctx, origin) }, signals.LLMSResult{})
	kgCh := settle(func() *signals.KnowledgeGraphResult { return e.signals.KnowledgeGraph(ctx, brand) }, nil)
	redditCh := settle(func() signals.RedditResult { return e.signals.SearchReddit(ctx, brand) }, signals.RedditResult{})

	homepage := <-homepageCh
	if homepage.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, homepage.err)
	}

	home, err := ParsePage(homepage.result.HTML, homepage.result.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	// Round two: bounded crawl of priority internal pages.
	pages := []*ParsedPage{home}
	links := ExtractInternalLinks(home, homepage.result.URL)
	if len(links) > 0 {
		for pageURL, res := range e.fetcher.FetchMultiplePages(ctx, links) {
			extra, err := ParsePage(res.HTML, pageURL)
			if err != nil {
				log.Printf("assessment: skipping unparseable page %s: %v", pageURL, err)
				continue
			}
			pages = append(pages, extra)
		}
	}

	sig := SignalSet{
		PageSpeed:      <-psiCh,
		SSL:            <-sslCh,
		Sitemap:        <-sitemapCh,
		Robots:         <-robotsCh,
		LLMSTxt:        <-llmsCh,
		KnowledgeGraph: <-kgCh,
		Reddit:         <-redditCh,
	}

	// The analyzers are pure CPU work over already-fetched data, so they
	// run in sequence.
	contentAnalysis, contentDetails := AnalyzeContent(pages)
	technicalAnalysis, technicalDetails := AnalyzeTechnical(home, sig)
	authorityAnalysis, authorityDetails := AnalyzeAuthority(pages, sig)
	measurementAnalysis, measurementDetails := AnalyzeMeasurement(home)

	analyses := map[string]PillarAnalysis{
		PillarContent:     contentAnalysis,
		PillarTechnical:   technicalAnalysis,
		PillarAuthority:   authorityAnalysis,
		PillarMeasurement: measurementAnalysis,
	}

	scores := Scores{
		Content:     contentAnalysis.Score,
		Technical:   technicalAnalysis.Score,
		Authority:   authorityAnalysis.Score,
		Measurement: measurementAnalysis.Score,
	}
	scores.Overall = OverallScore(scores.Content, scores.Technical, scores.Authority, scores.Measurement)

	level, description := MaturityFor(scores.Overall)

	var strengths []Strength
	for _, pillar := range []string{PillarContent, PillarTechnical, PillarAuthority, PillarMeasurement} {
		strengths = append(strengths, analyses[pillar].Strengths...)
	}

	report := &Report{
		URL:                 homepage.result.URL,
		Scores:              scores,
		MaturityLevel:       level,
		MaturityDescription: description,
		Strengths:           strengths,
		RecommendationsByPillar: map[string][]Recommendation{
			PillarContent:     contentAnalysis.Recommendations,
			PillarTechnical:   technicalAnalysis.Recommendations,
			PillarAuthority:   authorityAnalysis.Recommendations,
			PillarMeasurement: measurementAnalysis.Recommendations,
		},
		PillarSummaries:    PillarSummaries(analyses),
		TopPriorities:      TopPriorities(analyses),
		AnalyzedAt:         time.Now().UTC(),
		ContentDetails:     contentDetails,
		TechnicalDetails:   technicalDetails,
		AuthorityDetails:   authorityDetails,
		MeasurementDetails: measurementDetails,
	}

	log.Printf("assessment: %s scored %.1f (%s) across %d pages",
		report.URL, scores.Overall, level, len(pages))

	return report, nil
}

// brandFromHost derives a brand query string from a hostname:
// "www.acme-corp.co.uk" becomes "acme corp".
func brandFromHost(host string) string {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	if idx := strings.Index(host, "."); idx != -1 {
		host = host[:idx]
	}
	return strings.ReplaceAll(host, "-", " ")
}
