package assessment

// Every point value, pillar weight and priority keyword lives here so the
// scoring model can be tuned without touching detection logic. Scores are
// additive per pillar and clamped to maxPillarScore.

const maxPillarScore = 5.0

// Overall score pillar weights.
const (
	weightContent     = 0.30
	weightTechnical   = 0.25
	weightAuthority   = 0.25
	weightMeasurement = 0.20
)

// Content pillar points.
const (
	ptFAQ                  = 1.0
	ptHeadingStructure     = 0.75
	ptContentLengthFull    = 1.0 // >1500 words
	ptContentLengthPartial = 0.5 // >800 words
	ptMetaDescription      = 0.5
	ptQuestionHeadings     = 0.5
	ptTableOfContents      = 0.25
	ptSummarySnippet       = 0.25
	ptFreshness            = 0.25
	ptStructuredLists      = 0.25
	ptReadabilityOptimal   = 0.5  // Flesch 60-75
	ptReadabilityOK        = 0.25 // Flesch 50-80
	ptImageAlt             = 0.25
	ptInternalLinking      = 0.25
	ptStatDensity          = 0.25
	ptStructuredFormats    = 0.25
	ptSectionDensity       = 0.25
	ptAnswerFirstFull      = 0.5
	ptAnswerFirstPartial   = 0.25
	ptExtractableFull      = 0.5
	ptExtractablePartial   = 0.25
)

// Technical pillar points.
const (
	ptSchemaPresent    = 0.75
	ptSchemaDiversity  = 0.5
	ptHTTPS            = 0.5
	ptSSLHealth        = 0.25
	ptViewport         = 0.25
	ptSitemap          = 0.5
	ptRobotsTxt        = 0.25
	ptAIBotsAllowed    = 0.5
	ptCanonical        = 0.25
	ptOpenGraph        = 0.25
	ptLLMSTxt          = 0.5
	ptPageSpeedFast    = 0.5  // PSI performance >= 90
	ptPageSpeedOK      = 0.25 // PSI performance >= 50
	ptAccessibility    = 0.25 // PSI accessibility >= 90
)

// Authority pillar points.
const (
	ptAuthorAttribution = 0.5
	ptAboutPage         = 0.4
	ptContactInfo       = 0.35
	ptPressMentions     = 0.6
	ptDigitalPR         = 0.5
	ptCommunity         = 0.25
	ptSocialPlatforms   = 0.25
	ptCredentials       = 0.25
	ptExternalCitations = 0.4
	ptReviews           = 0.5
	ptTestimonials      = 0.5
	ptCaseStudies       = 0.5
	ptExpertQuotes      = 0.25
	ptRichAuthorSchema  = 0.25
	ptKnowledgeGraph    = 0.5
	ptRedditStrong      = 0.5  // >= 3 posts
	ptRedditSome        = 0.25 // 1-2 posts
)

// Measurement pillar points.
const (
	ptAnalytics        = 1.0
	ptAnalyticsBonus   = 0.25 // two or more platforms
	ptEventTracking    = 0.5
	ptTagManager       = 0.5
	ptCRMTooling       = 0.25
	ptHeatmaps         = 0.25
	ptConsentBanner    = 0.25
	ptABTesting        = 0.25
	ptMonitoring       = 0.25
	ptAdPixels         = 0.25
)

// Thresholds shared by checks and tests.
const (
	wordCountFull      = 1500
	wordCountPartial   = 800
	sslRenewalDays     = 30
	psiFastScore       = 90
	psiOKScore         = 50
	schemaDiversityMin = 3
)

// Priority ranking: category weight times a keyword boost, applied when a
// recommendation title contains one of the high-priority terms.
var priorityCategoryWeight = map[string]float64{
	PillarContent:     1.3,
	PillarTechnical:   1.2,
	PillarAuthority:   1.1,
	PillarMeasurement: 1.0,
}

const priorityKeywordBoost = 2.0

var highPriorityKeywords = []string{
	"FAQ",
	"Schema",
	"Structured Data",
	"llms.txt",
	"AI Crawler",
	"Analytics",
}
