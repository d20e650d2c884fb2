package assessment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Named outlets and language patterns for the trust/credibility checks.
var (
	pressOutlets = []string{
		"forbes", "techcrunch", "wired", "bloomberg", "reuters", "wsj.com",
		"nytimes", "bbc.co", "theguardian", "businessinsider", "fastcompany",
		"inc.com", "entrepreneur.com", "venturebeat",
	}
	pressLanguageRe  = regexp.MustCompile(`(?i)(as (seen|featured) (in|on)|press (coverage|mentions?)|in the (news|press|media)|media coverage)`)
	digitalPRRe      = regexp.MustCompile(`(?i)(podcast|webinar|keynote|speaking engagement|guest (post|article|appearance)|conference talk|panelist)`)
	communityRe      = regexp.MustCompile(`(?i)(reddit\.com|quora\.com|stackoverflow\.com|community forum|discussion board|discord\.(gg|com)|slack community)`)
	credentialsRe    = regexp.MustCompile(`(?i)(certified|accredit(ed|ation)|licensed|award[- ]winning|iso \d{4,5}|years? of experience|ph\.?d|credentials)`)
	citationRe       = regexp.MustCompile(`(?i)(according to|research (by|from|shows)|study (by|from|found)|source:|\[\d+\])`)
	starRatingRe     = regexp.MustCompile(`(?i)(\d(\.\d)?\s*(out of|/)\s*5((\s*stars?)|\b)|★{3,})`)
	testimonialRe    = regexp.MustCompile(`(?i)(testimonial|what our (clients|customers) say|client feedback|customer stories)`)
	caseStudyRe      = regexp.MustCompile(`(?i)(case stud(y|ies)|success stor(y|ies)|customer results)`)
	contactRe        = regexp.MustCompile(`(?i)(contact us|get in touch|\+?\d[\d\s().-]{8,}\d|[\w.+-]+@[\w-]+\.[a-z]{2,})`)
)

var socialPlatforms = map[string]string{
	"linkedin.com":  "LinkedIn",
	"twitter.com":   "X",
	"x.com":         "X",
	"facebook.com":  "Facebook",
	"instagram.com": "Instagram",
	"youtube.com":   "YouTube",
	"tiktok.com":    "TikTok",
	"github.com":    "GitHub",
}

var reviewPlatforms = []string{"trustpilot.com", "g2.com", "capterra.com", "clutch.co", "yelp.com", "glassdoor.com"}

// AnalyzeAuthority assesses E-E-A-T style trust signals across the merged
// page set plus the Knowledge Graph and Reddit lookups.
func AnalyzeAuthority(pages []*ParsedPage, sig SignalSet) (PillarAnalysis, AuthorityDetails) {
	b := newPillarBuilder(PillarAuthority)
	details := AuthorityDetails{
		SocialPlatforms:  []string{},
		RedditSubreddits: []string{},
	}
	if len(pages) == 0 {
		return b.build(), details
	}

	var corpus strings.Builder
	for _, p := range pages {
		corpus.WriteString(p.MainContent)
		corpus.WriteString(" ")
	}
	text := corpus.String()

	// Author attribution
	details.HasAuthor = hasAuthorAttribution(pages)
	if details.HasAuthor {
		b.pass(ptAuthorAttribution, "Author Attribution",
			"Content is attributed to named authors rather than published anonymously.")
	} else {
		b.fail("Attribute Content to Authors",
			"Add bylines with author schema to substantive pages.",
			"Named, credentialed authors are a core trust signal in how engines weigh competing sources.")
	}

	// About page
	details.HasAboutPage = hasAboutPage(pages)
	if details.HasAboutPage {
		b.pass(ptAboutPage, "About Page Present", "The site explains who is behind it.")
	} else {
		b.fail("Add an About Page",
			"Publish a substantive about page covering the team, history and mission.",
			"Engines cross-reference who-is-behind-this signals when deciding whether a site is a safe citation.")
	}

	// Contact info
	details.HasContactInfo = hasContactInfo(pages, text)
	if details.HasContactInfo {
		b.pass(ptContactInfo, "Contact Information Available", "Visitors and verifiers can reach a real organization.")
	} else {
		b.fail("Publish Contact Information",
			"Add a contact page with a real address, email or phone number.",
			"Verifiable contact details separate legitimate organizations from content farms in trust models.")
	}

	// Press mentions
	details.PressMentions = hasPressMentions(pages, text)
	if details.PressMentions {
		b.pass(ptPressMentions, "Press and Media Mentions", "Recognized outlets reference the brand.")
	} else {
		b.fail("Earn Press Coverage",
			"Pursue coverage in recognized publications and showcase it on the site.",
			"Third-party coverage in known outlets is weighted far more heavily than anything you say about yourself.")
	}

	// Digital PR
	if digitalPRRe.MatchString(text) {
		b.pass(ptDigitalPR, "Digital PR Presence",
			"Podcasts, webinars or speaking engagements extend the brand beyond its own site.")
	} else {
		b.fail("Build Digital PR Presence",
			"Appear on podcasts, webinars and industry panels, and link those appearances.",
			"Off-site expert appearances seed the brand across the corpora AI models train and search on.")
	}

	// Community engagement
	if hasCommunityPresence(pages, text) {
		b.pass(ptCommunity, "Community Engagement",
			"The brand participates in community platforms where real discussion happens.")
	} else {
		b.fail("Engage in Community Platforms",
			"Participate genuinely on Reddit, Quora and niche forums in your space.",
			"Community threads are heavily retrieved by answer engines for experience-based questions.")
	}

	// Social platforms
	details.SocialPlatforms = detectSocialPlatforms(pages)
	if len(details.SocialPlatforms) >= 2 {
		b.pass(ptSocialPlatforms, "Multi-Platform Social Presence",
			fmt.Sprintf("Profiles found for: %s.", strings.Join(details.SocialPlatforms, ", ")))
	} else {
		b.fail("Link Your Social Profiles",
			"Link at least two active social profiles from the site.",
			"Cross-platform consistency helps engines consolidate your brand identity into one entity.")
	}

	// Credentials
	if credentialsRe.MatchString(text) {
		b.pass(ptCredentials, "Credentials Highlighted",
			"Certifications or experience claims back up the site's expertise.")
	} else {
		b.fail("Surface Credentials",
			"State certifications, accreditations and years of experience where relevant.",
			"Explicit expertise markers are exactly what E-E-A-T style evaluation looks for.")
	}

	// External citations
	if hasExternalCitations(pages, text) {
		b.pass(ptExternalCitations, "Sources Cited",
			"Content cites external research and sources.")
	} else {
		b.fail("Cite Your Sources",
			"Link the research and data behind factual claims.",
			"Pages that cite sources are themselves treated as more citable.")
	}

	// Reviews
	if hasReviews(pages, text) {
		b.pass(ptReviews, "Customer Reviews Present",
			"Review schema, platforms or ratings are visible.")
	} else {
		b.fail("Showcase Customer Reviews",
			"Collect reviews on recognized platforms and mark them up with schema.",
			"Aggregate ratings feed directly into how assistants describe and compare vendors.")
	}

	// Testimonials
	details.HasTestimonials = hasTestimonials(pages, text)
	if details.HasTestimonials {
		b.pass(ptTestimonials, "Testimonials Published", "Client voices vouch for the work.")
	} else {
		b.fail("Add Testimonials",
			"Publish named, specific client testimonials.",
			"First-person accounts are favoured evidence for experience-oriented queries.")
	}

	// Case studies
	details.HasCaseStudies = hasCaseStudies(pages, text)
	if details.HasCaseStudies {
		b.pass(ptCaseStudies, "Case Studies Published", "Documented outcomes demonstrate real-world results.")
	} else {
		b.fail("Publish Case Studies",
			"Write up concrete engagements with measurable outcomes.",
			`Case studies with numbers are prime material for "best X for Y" style answers.`)
	}

	// Expert quotes
	if hasExpertQuotes(pages) {
		b.pass(ptExpertQuotes, "Expert Quotes Included",
			"Quoted experts add independent voices to the content.")
	} else {
		b.fail("Quote Subject-Matter Experts",
			"Include attributed expert quotes in substantive content.",
			"Attributed expertise raises the perceived authority of the surrounding passage.")
	}

	// Rich author schema
	if hasRichAuthorSchema(pages) {
		b.pass(ptRichAuthorSchema, "Rich Author Schema",
			"Author markup carries job titles, affiliations or profile links.")
	} else {
		b.fail("Deepen Author Schema",
			"Add jobTitle, affiliation and sameAs properties to author markup.",
			"Rich author entities let engines verify your experts actually exist.")
	}

	// Knowledge Graph
	if kg := sig.KnowledgeGraph; kg != nil && kg.Found {
		details.KnowledgeGraphHit = true
		b.pass(ptKnowledgeGraph, "Knowledge Graph Entity",
			fmt.Sprintf("The brand resolves to a Knowledge Graph entity (%s).", kg.Name))
	} else {
		b.fail("Establish a Knowledge Graph Presence",
			"Build consistent entity signals: Organization schema, Wikidata, and consistent naming everywhere.",
			"A Knowledge Graph entity is the clearest sign that search infrastructure recognizes the brand as a real thing.")
	}

	// Wikipedia is recommended unconditionally unless the entity lookup
	// already confirmed recognition; page HTML cannot prove a Wikipedia
	// presence either way.
	if !details.KnowledgeGraphHit {
		b.fail("Pursue Wikipedia / Wikidata Coverage",
			"Where notability supports it, establish a Wikipedia or Wikidata entry for the organization.",
			"Wikipedia remains the most heavily weighted trust source in nearly every AI training corpus.")
	}

	// Reddit presence
	details.RedditPostCount = sig.Reddit.PostCount
	details.RedditSubreddits = append(details.RedditSubreddits, sig.Reddit.Subreddits...)
	switch {
	case sig.Reddit.PostCount >= 3:
		b.pass(ptRedditStrong, "Reddit Brand Presence",
			fmt.Sprintf("Found %d recent posts mentioning the brand across %s.",
				sig.Reddit.PostCount, formatSubreddits(sig.Reddit.Subreddits)))
	case sig.Reddit.PostCount >= 1:
		b.pass(ptRedditSome, "Emerging Reddit Presence",
			fmt.Sprintf("Found %d recent post(s) mentioning the brand.", sig.Reddit.PostCount))
	default:
		b.fail("Build a Reddit Presence",
			"Participate in relevant subreddits so the brand appears in organic discussion.",
			"Reddit threads are among the most retrieved sources for recommendation-style questions.")
	}

	return b.build(), details
}

func hasAuthorAttribution(pages []*ParsedPage) bool {
	for _, p := range pages {
		for _, block := range p.JSONLDBlocks {
			if block["author"] != nil {
				return true
			}
		}
		if p.Doc.Find(`meta[name="author"], [rel="author"], [class*="byline"], [class*="author"]`).Length() > 0 {
			return true
		}
	}
	return false
}

func hasAboutPage(pages []*ParsedPage) bool {
	for _, p := range pages {
		lower := strings.ToLower(p.URL)
		if strings.Contains(lower, "/about") || strings.Contains(lower, "/company") || strings.Contains(lower, "/team") {
			return true
		}
		found := false
		p.Doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href, _ := s.Attr("href")
			if strings.Contains(strings.ToLower(href), "about") {
				found = true
				return false
			}
			return true
		})
		if found {
			return true
		}
	}
	return false
}

func hasContactInfo(pages []*ParsedPage, text string) bool {
	for _, p := range pages {
		if p.Doc.Find(`a[href^="mailto:"], a[href^="tel:"]`).Length() > 0 {
			return true
		}
		found := false
		p.Doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href, _ := s.Attr("href")
			if strings.Contains(strings.ToLower(href), "contact") {
				found = true
				return false
			}
			return true
		})
		if found {
			return true
		}
	}
	return contactRe.MatchString(text)
}

func hasPressMentions(pages []*ParsedPage, text string) bool {
	lower := strings.ToLower(text)
	for _, outlet := range pressOutlets {
		if strings.Contains(lower, outlet) {
			return true
		}
	}
	return pressLanguageRe.MatchString(text)
}

func hasCommunityPresence(pages []*ParsedPage, text string) bool {
	if communityRe.MatchString(text) {
		return true
	}
	for _, p := range pages {
		found := false
		p.Doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href, _ := s.Attr("href")
			if communityRe.MatchString(href) {
				found = true
				return false
			}
			return true
		})
		if found {
			return true
		}
	}
	return false
}

func detectSocialPlatforms(pages []*ParsedPage) []string {
	seen := make(map[string]bool)
	var platforms []string
	for _, p := range pages {
		p.Doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			lower := strings.ToLower(href)
			for domain, name := range socialPlatforms {
				if strings.Contains(lower, domain) && !seen[name] {
					seen[name] = true
					platforms = append(platforms, name)
				}
			}
		})
	}
	return platforms
}

func hasExternalCitations(pages []*ParsedPage, text string) bool {
	if citationRe.MatchString(text) {
		return true
	}
	outbound := 0
	for _, p := range pages {
		base := strings.ToLower(hostnameOf(p.URL))
		p.Doc.Find("p a[href^='http'], li a[href^='http']").Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			host := strings.ToLower(hostnameOf(href))
			if host == "" || host == base {
				return
			}
			for domain := range socialPlatforms {
				if strings.Contains(host, domain) {
					return
				}
			}
			outbound++
		})
	}
	return outbound >= 3
}

func hasReviews(pages []*ParsedPage, text string) bool {
	for _, p := range pages {
		for _, block := range p.JSONLDBlocks {
			if block["aggregateRating"] != nil || block.HasType("Review") || block.HasType("AggregateRating") {
				return true
			}
		}
		found := false
		p.Doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href, _ := s.Attr("href")
			lower := strings.ToLower(href)
			for _, platform := range reviewPlatforms {
				if strings.Contains(lower, platform) {
					found = true
					return false
				}
			}
			return true
		})
		if found {
			return true
		}
	}
	return starRatingRe.MatchString(text)
}

func hasTestimonials(pages []*ParsedPage, text string) bool {
	if testimonialRe.MatchString(text) {
		return true
	}
	for _, p := range pages {
		if p.Doc.Find(`[class*="testimonial"], [id*="testimonial"]`).Length() > 0 {
			return true
		}
		found := false
		p.Doc.Find("h1, h2, h3").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if testimonialRe.MatchString(s.Text()) {
				found = true
				return false
			}
			return true
		})
		if found || p.Doc.Find("blockquote").Length() >= 2 {
			return true
		}
	}
	return false
}

func hasCaseStudies(pages []*ParsedPage, text string) bool {
	if caseStudyRe.MatchString(text) {
		return true
	}
	for _, p := range pages {
		found := false
		p.Doc.Find("a[href], h1, h2, h3").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href, _ := s.Attr("href")
			if caseStudyRe.MatchString(s.Text()) || caseStudyRe.MatchString(href) {
				found = true
				return false
			}
			return true
		})
		if found {
			return true
		}
	}
	return false
}

func hasExpertQuotes(pages []*ParsedPage) bool {
	for _, p := range pages {
		if p.Doc.Find("blockquote").Length() >= 2 {
			return true
		}
		if p.Doc.Find(`q[cite], [class*="pullquote"], [class*="quote-author"]`).Length() > 0 {
			return true
		}
	}
	return false
}

// hasRichAuthorSchema looks for an author object carrying at least two of
// jobTitle, sameAs and affiliation.
func hasRichAuthorSchema(pages []*ParsedPage) bool {
	for _, p := range pages {
		for _, block := range p.JSONLDBlocks {
			author, ok := block["author"].(map[string]interface{})
			if !ok {
				continue
			}
			depth := 0
			for _, prop := range []string{"jobTitle", "sameAs", "affiliation"} {
				if author[prop] != nil {
					depth++
				}
			}
			if depth >= 2 {
				return true
			}
		}
	}
	return false
}

func hostnameOf(raw string) string {
	if idx := strings.Index(raw, "://"); idx != -1 {
		raw = raw[idx+3:]
	}
	if idx := strings.IndexAny(raw, "/?#"); idx != -1 {
		raw = raw[:idx]
	}
	return raw
}

func formatSubreddits(subs []string) string {
	if len(subs) == 0 {
		return "Reddit"
	}
	named := make([]string, len(subs))
	for i, s := range subs {
		named[i] = "r/" + s
	}
	return strings.Join(named, " and ")
}
