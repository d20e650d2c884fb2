// Package assessment implements the AEO maturity analysis engine: page
// fetching and crawling, the four pillar analyzers (Content, Technical,
// Authority, Measurement) and the scoring that turns raw signals into a
// report.
package assessment

import (
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/aeo-assessment/backend/signals"
)

// Pillar names used as strength/recommendation categories.
const (
	PillarContent     = "Content"
	PillarTechnical   = "Technical"
	PillarAuthority   = "Authority"
	PillarMeasurement = "Measurement"
)

// JSONLD is one parsed JSON-LD block: a loose bag of properties with an
// optional, polymorphic @type.
type JSONLD map[string]interface{}

// TypesOf normalizes a block's @type to a list of strings regardless of
// whether it was a scalar, an array, or absent.
func (b JSONLD) TypesOf() []string {
	raw, ok := b["@type"]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case string:
		return []string{v}
	case []interface{}:
		types := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				types = append(types, s)
			}
		}
		return types
	}
	return nil
}

// HasType reports whether the block declares the given @type.
func (b JSONLD) HasType(t string) bool {
	for _, bt := range b.TypesOf() {
		if bt == t {
			return true
		}
	}
	return false
}

// ParsedPage is the analyzed representation of one fetched page.
type ParsedPage struct {
	URL             string
	Doc             *goquery.Document
	MainContent     string
	MainContentHTML string
	JSONLDBlocks    []JSONLD
}

// Strength records a passed check. Each strength is paired 1:1 with the
// score fragment that it justifies.
type Strength struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Recommendation records a failed (or undetectable-from-HTML) check.
type Recommendation struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Why         string `json:"why,omitempty"`
	Priority    int    `json:"priority,omitempty"`
}

// PillarAnalysis is the output of one pillar analyzer.
type PillarAnalysis struct {
	Score           float64          `json:"score"`
	Strengths       []Strength       `json:"strengths"`
	Recommendations []Recommendation `json:"recommendations"`
}

// SignalSet bundles the external provider results an assessment run has
// available. Nil pointers and zero values mean the signal is absent.
type SignalSet struct {
	PageSpeed      *signals.PageSpeedResult
	SSL            *signals.SSLResult
	Sitemap        signals.SitemapResult
	Robots         signals.RobotsResult
	LLMSTxt        signals.LLMSResult
	KnowledgeGraph *signals.KnowledgeGraphResult
	Reddit         signals.RedditResult
}

// Scores holds the pillar and overall scores, each 0..5.
type Scores struct {
	Content     float64 `json:"content"`
	Technical   float64 `json:"technical"`
	Authority   float64 `json:"authority"`
	Measurement float64 `json:"measurement"`
	Overall     float64 `json:"overall"`
}

// PillarSummary is a per-pillar coverage snapshot for the report header.
type PillarSummary struct {
	Pillar          string  `json:"pillar"`
	Score           float64 `json:"score"`
	StrengthCount   int     `json:"strengthCount"`
	CoveragePercent int     `json:"coveragePercent"`
	Summary         string  `json:"summary"`
}

// ContentDetails are the Content pillar's raw measurements.
type ContentDetails struct {
	WordCount          int     `json:"wordCount"`
	H1Count            int     `json:"h1Count"`
	H2Count            int     `json:"h2Count"`
	HasFAQ             bool    `json:"hasFaq"`
	HasMetaDescription bool    `json:"hasMetaDescription"`
	MetaDescriptionLen int     `json:"metaDescriptionLength"`
	QuestionHeadings   bool    `json:"questionHeadings"`
	FleschScore        float64 `json:"fleschScore"`
	ImageCount         int     `json:"imageCount"`
	ImagesWithAlt      int     `json:"imagesWithAlt"`
	InternalLinkCount  int     `json:"internalLinkCount"`
	StatMatches        int     `json:"statMatches"`
	PagesAnalyzed      int     `json:"pagesAnalyzed"`
}

// TechnicalDetails are the Technical pillar's raw measurements.
type TechnicalDetails struct {
	SchemaTypes        []string `json:"schemaTypes"`
	HasSchema          bool     `json:"hasSchema"`
	IsHTTPS            bool     `json:"isHttps"`
	SSLDaysRemaining   *int     `json:"sslDaysRemaining,omitempty"`
	HasViewport        bool     `json:"hasViewport"`
	SitemapFound       bool     `json:"sitemapFound"`
	RobotsFound        bool     `json:"robotsFound"`
	BlockedAIBots      []string `json:"blockedAiBots"`
	HasCanonical       bool     `json:"hasCanonical"`
	OpenGraphTags      int      `json:"openGraphTags"`
	LLMSTxtFound       bool     `json:"llmsTxtFound"`
	PerformanceScore   *int     `json:"performanceScore,omitempty"`
	AccessibilityScore *int     `json:"accessibilityScore,omitempty"`
}

// AuthorityDetails are the Authority pillar's raw measurements.
type AuthorityDetails struct {
	HasAuthor          bool     `json:"hasAuthor"`
	HasAboutPage       bool     `json:"hasAboutPage"`
	HasContactInfo     bool     `json:"hasContactInfo"`
	PressMentions      bool     `json:"pressMentions"`
	SocialPlatforms    []string `json:"socialPlatforms"`
	HasTestimonials    bool     `json:"hasTestimonials"`
	HasCaseStudies     bool     `json:"hasCaseStudies"`
	KnowledgeGraphHit  bool     `json:"knowledgeGraphHit"`
	RedditPostCount    int      `json:"redditPostCount"`
	RedditSubreddits   []string `json:"redditSubreddits"`
}

// MeasurementDetails are the Measurement pillar's raw measurements.
type MeasurementDetails struct {
	AnalyticsPlatforms []string `json:"analyticsPlatforms"`
	HasEventTracking   bool     `json:"hasEventTracking"`
	HasTagManager      bool     `json:"hasTagManager"`
	CRMTools           []string `json:"crmTools"`
	HeatmapTools       []string `json:"heatmapTools"`
	HasConsentBanner   bool     `json:"hasConsentBanner"`
	HasABTesting       bool     `json:"hasAbTesting"`
	MonitoringTools    []string `json:"monitoringTools"`
	AdPixels           []string `json:"adPixels"`
}

// Report is the immutable output of one assessment run.
type Report struct {
	URL                     string                      `json:"url"`
	Scores                  Scores                      `json:"scores"`
	MaturityLevel           string                      `json:"maturityLevel"`
	MaturityDescription     string                      `json:"maturityDescription"`
	Strengths               []Strength                  `json:"strengths"`
	RecommendationsByPillar map[string][]Recommendation `json:"recommendationsByPillar"`
	PillarSummaries         []PillarSummary             `json:"pillarSummaries"`
	TopPriorities           []Recommendation            `json:"topPriorities"`
	AnalyzedAt              time.Time                   `json:"analyzedAt"`
	ContentDetails          ContentDetails              `json:"contentDetails"`
	TechnicalDetails        TechnicalDetails            `json:"technicalDetails"`
	AuthorityDetails        AuthorityDetails            `json:"authorityDetails"`
	MeasurementDetails      MeasurementDetails          `json:"measurementDetails"`
}
