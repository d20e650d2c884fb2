package assessment

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Detection patterns for the Content pillar. Each check stays an isolated
// predicate so it can be unit tested on its own.
var (
	faqTextRe          = regexp.MustCompile(`(?i)\b(faq|frequently asked|common questions)\b`)
	questionHowRe      = regexp.MustCompile(`(?i)\bhow (to|do|does)\b`)
	tocMarkerRe        = regexp.MustCompile(`(?i)(table[ -]of[ -]contents|\btoc\b|jump to|on this page)`)
	summaryRe          = regexp.MustCompile(`(?i)(in summary|key takeaway|tl;?dr|bottom line)`)
	freshnessTextRe    = regexp.MustCompile(`(?i)(last (updated|modified)|updated on)`)
	statRe             = regexp.MustCompile(`(\d+(\.\d+)?%)|(\$\d[\d,]*)|(\b\d{1,3}(,\d{3})+\b)|(\b\d+(\.\d+)?x\b)|(\b\d{4,}\b)`)
	stepPatternRe      = regexp.MustCompile(`(?i)\bstep\s+\d`)
	comparisonRe       = regexp.MustCompile(`(?i)(\bvs\.?\s|\bversus\b|compared (to|with)|pros and cons)`)
	metaIntroRe        = regexp.MustCompile(`(?i)^(in this (article|post|guide|section|page)|welcome to|below,? (we|you)|this (article|post|guide|page) (will|covers|explains))`)
	backReferenceRe    = regexp.MustCompile(`(?i)^(as (mentioned|discussed|noted|we saw)|this means|that means|(it|this|that|these|those|they)\b)`)
)

// AnalyzeContent scores how well the site's content is structured for
// extraction and citation by answer engines. All crawled pages contribute
// to the merged corpus; the homepage is pages[0].
func AnalyzeContent(pages []*ParsedPage) (PillarAnalysis, ContentDetails) {
	b := newPillarBuilder(PillarContent)
	details := ContentDetails{PagesAnalyzed: len(pages)}
	if len(pages) == 0 {
		return b.build(), details
	}
	home := pages[0]

	var corpus strings.Builder
	for _, p := range pages {
		corpus.WriteString(p.MainContent)
		corpus.WriteString(" ")
	}
	text := corpus.String()

	// FAQ presence
	details.HasFAQ = hasFAQ(pages)
	if details.HasFAQ {
		b.pass(ptFAQ, "FAQ Content Found",
			"The site has FAQ-style content, which maps directly onto the question-and-answer format AI assistants work in.")
	} else {
		b.fail("Add an FAQ Section",
			"Create a page or section answering the questions customers actually ask, ideally marked up with FAQPage schema.",
			"FAQ content mirrors how people phrase queries to AI assistants, making it among the most frequently cited page formats.")
	}

	// Heading structure
	for _, p := range pages {
		details.H1Count += p.Doc.Find("h1").Length()
		details.H2Count += p.Doc.Find("h2").Length()
	}
	if details.H1Count >= 1 && details.H2Count >= 2 {
		b.pass(ptHeadingStructure, "Clear Heading Structure",
			fmt.Sprintf("Found %d H1 and %d H2 headings, giving answer engines a scannable outline of each page.", details.H1Count, details.H2Count))
	} else {
		b.fail("Improve Heading Structure",
			"Use one H1 per page and break content into H2 sections so each topic is individually addressable.",
			"AI systems lean heavily on heading hierarchy to locate the passage that answers a query.")
	}

	// Content length
	details.WordCount = CountWords(text)
	switch {
	case details.WordCount > wordCountFull:
		b.pass(ptContentLengthFull, "Substantial Content Depth",
			fmt.Sprintf("Roughly %d words of main content give answer engines plenty of material to quote.", details.WordCount))
	case details.WordCount > wordCountPartial:
		b.pass(ptContentLengthPartial, "Moderate Content Depth",
			fmt.Sprintf("Roughly %d words of main content; expanding the most important pages would strengthen citation odds.", details.WordCount))
	default:
		b.fail("Expand Your Content",
			"Build out core pages toward 1,500+ words of genuinely useful material.",
			"Thin pages rarely contain a quotable answer; longer, well-structured pages are cited far more often.")
	}

	// Meta description
	metaDesc, _ := home.Doc.Find(`meta[name="description"]`).Attr("content")
	metaDesc = strings.TrimSpace(metaDesc)
	details.HasMetaDescription = metaDesc != ""
	details.MetaDescriptionLen = len(metaDesc)
	if details.HasMetaDescription {
		desc := "A meta description is present, summarizing the page for crawlers."
		if details.MetaDescriptionLen >= 120 && details.MetaDescriptionLen <= 160 {
			desc = fmt.Sprintf("Meta description is present and at an ideal length (%d characters).", details.MetaDescriptionLen)
		}
		b.pass(ptMetaDescription, "Meta Description Present", desc)
	} else {
		b.fail("Add a Meta Description",
			"Write a 120-160 character summary of each page into its description meta tag.",
			"The description is often the first summary an engine reads when deciding what a page is about.")
	}

	// Question-format headings
	details.QuestionHeadings = hasQuestionHeadings(pages, text)
	if details.QuestionHeadings {
		b.pass(ptQuestionHeadings, "Question-Format Headings",
			"Headings phrased as questions match user queries almost verbatim.")
	} else {
		b.fail("Phrase Headings as Questions",
			"Rework key section headings into the questions users actually type or ask aloud.",
			"A heading that literally matches the question is the strongest retrieval hint you can give an answer engine.")
	}

	// Table of contents
	if hasTableOfContents(home) {
		b.pass(ptTableOfContents, "Table of Contents",
			"A table of contents exposes the page's structure to both readers and crawlers.")
	} else {
		b.fail("Add a Table of Contents",
			"On long pages, add jump links to each section near the top.",
			"Anchored sections let an engine cite the exact passage rather than the whole page.")
	}

	// Summary snippet
	if summaryRe.MatchString(text) {
		b.pass(ptSummarySnippet, "Summary Snippet Present",
			"A stated summary or key-takeaway block gives engines a ready-made extract.")
	} else {
		b.fail("Add Key Takeaways",
			`Open or close major pages with a short "key takeaways" or TL;DR block.`,
			"Pre-summarized content is lifted into AI answers with minimal rewriting, which raises citation likelihood.")
	}

	// Freshness signal
	if hasFreshnessSignal(pages, text) {
		b.pass(ptFreshness, "Freshness Signals",
			"Publication or modification dates are visible, so engines can see the content is maintained.")
	} else {
		b.fail("Show Last-Updated Dates",
			"Add visible dates and dateModified schema to substantive pages.",
			"Answer engines prefer demonstrably current sources, especially for advice and pricing questions.")
	}

	// Structured lists
	if hasStructuredLists(pages) {
		b.pass(ptStructuredLists, "Structured Lists",
			"Bulleted and numbered lists break information into extractable units.")
	} else {
		b.fail("Use Lists for Enumerable Content",
			"Turn sequences, options and comparisons into bulleted or numbered lists.",
			"List items are natural extraction boundaries for AI answers.")
	}

	// Readability
	details.FleschScore = FleschReadingEase(text)
	switch {
	case details.FleschScore >= 60 && details.FleschScore <= 75:
		b.pass(ptReadabilityOptimal, "Optimal Readability",
			fmt.Sprintf("Flesch Reading Ease of %.0f sits in the sweet spot for clear, quotable prose.", details.FleschScore))
	case details.FleschScore >= 50 && details.FleschScore <= 80:
		b.pass(ptReadabilityOK, "Good Readability",
			fmt.Sprintf("Flesch Reading Ease of %.0f is workable, though tightening sentences would help.", details.FleschScore))
	case details.FleschScore > 80:
		b.fail("Add Substantive Depth",
			"The copy reads very simply; make sure it still carries concrete, expert detail.",
			"Engines correlate overly thin prose with low-authority content.")
	default:
		b.fail("Simplify Your Prose",
			"Shorten sentences and prefer plain words; aim for a Flesch score around 60-75.",
			"Dense prose is harder for engines to excerpt cleanly and for readers to trust.")
	}

	// Image alt coverage
	for _, p := range pages {
		p.Doc.Find("img").Each(func(_ int, s *goquery.Selection) {
			details.ImageCount++
			if alt, ok := s.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
				details.ImagesWithAlt++
			}
		})
	}
	if details.ImageCount > 0 {
		coverage := float64(details.ImagesWithAlt) / float64(details.ImageCount)
		if coverage >= 0.9 {
			b.pass(ptImageAlt, "Strong Alt Text Coverage",
				fmt.Sprintf("%d of %d images carry descriptive alt text.", details.ImagesWithAlt, details.ImageCount))
		} else {
			b.fail("Complete Image Alt Text",
				"Describe every meaningful image in its alt attribute.",
				"Alt text is the only way visual content contributes to a text-trained model's understanding of the page.")
		}
	}

	// Internal linking
	details.InternalLinkCount = countInternalLinks(home)
	if details.InternalLinkCount >= 5 {
		b.pass(ptInternalLinking, "Healthy Internal Linking",
			fmt.Sprintf("%d in-content links connect related pages on the site.", details.InternalLinkCount))
	} else {
		b.fail("Add Internal Links",
			"Link related pages from within body copy, not just navigation.",
			"Internal links help crawlers find and relate your best content, so more of it enters the answer pool.")
	}

	// Data and statistics density
	details.StatMatches = len(statRe.FindAllString(text, -1))
	if details.StatMatches >= 5 {
		b.pass(ptStatDensity, "Data-Rich Content",
			"Concrete numbers and statistics make passages attractive to cite.")
	} else {
		b.fail("Add Data and Statistics",
			"Work specific figures, percentages and outcomes into your copy.",
			"Answers that cite sources overwhelmingly quote passages containing concrete numbers.")
	}

	// Structured formats
	if hasStructuredFormats(pages, text) {
		b.pass(ptStructuredFormats, "Structured Formats",
			"Tables, step-by-step sequences or comparisons present information in machine-friendly shapes.")
	} else {
		b.fail("Use Tables and Step Formats",
			"Express processes as numbered steps and comparisons as tables.",
			"Highly structured formats are disproportionately selected for AI answer composition.")
	}

	// Section density
	if ok, avg := sectionDensityInRange(pages); ok {
		b.pass(ptSectionDensity, "Well-Sized Sections",
			fmt.Sprintf("Sections average about %d words, long enough to answer and short enough to quote.", avg))
	} else {
		b.fail("Right-Size Your Sections",
			"Aim for 100-200 words under each H2/H3 before the next heading.",
			"Sections in that range map almost exactly onto the passage length answer engines extract.")
	}

	// Answer-first formatting
	switch ratio := answerFirstRatio(pages); {
	case ratio >= 0.5:
		b.pass(ptAnswerFirstFull, "Answer-First Formatting",
			"Most sections open with a direct answer rather than a wind-up.")
	case ratio >= 0.25:
		b.pass(ptAnswerFirstPartial, "Partial Answer-First Formatting",
			"Some sections lead with the answer; extending the pattern across the site would help.")
	default:
		b.fail("Lead With the Answer",
			`Start each section with the direct answer, then elaborate. Avoid openers like "In this article we will...".`,
			"Engines extract the first sentences under a matching heading; if that's throat-clearing, your answer is skipped.")
	}

	// Extractable paragraphs
	switch ratio := extractableParagraphRatio(pages); {
	case ratio >= 0.8:
		b.pass(ptExtractableFull, "Self-Contained Paragraphs",
			"Paragraphs stand alone without backward references, so any one of them can be quoted cleanly.")
	case ratio >= 0.6:
		b.pass(ptExtractablePartial, "Mostly Self-Contained Paragraphs",
			"Most paragraphs are quotable on their own; a pass removing backward references would finish the job.")
	default:
		b.fail("Make Paragraphs Self-Contained",
			`Rewrite paragraphs that open with "As mentioned above" or a bare pronoun so each stands alone.`,
			"An engine quoting a paragraph out of context can't resolve a dangling reference, so it picks a different source.")
	}

	return b.build(), details
}

func hasFAQ(pages []*ParsedPage) bool {
	for _, p := range pages {
		if _, ok := p.FindSchemaByType("FAQPage"); ok {
			return true
		}
		if _, ok := p.FindSchemaByType("QAPage"); ok {
			return true
		}
		found := false
		p.Doc.Find("h1, h2, h3, h4, section, div[class], div[id]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			probe := s.AttrOr("class", "") + " " + s.AttrOr("id", "")
			if goquery.NodeName(s) != "div" && goquery.NodeName(s) != "section" {
				probe = s.Text()
			}
			if faqTextRe.MatchString(probe) {
				found = true
				return false
			}
			return true
		})
		if found || p.Doc.Find("details").Length() >= 2 {
			return true
		}
	}
	return false
}

func hasQuestionHeadings(pages []*ParsedPage, text string) bool {
	for _, p := range pages {
		found := false
		p.Doc.Find("h1, h2, h3, h4").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if strings.Contains(s.Text(), "?") {
				found = true
				return false
			}
			return true
		})
		if found {
			return true
		}
	}
	lower := strings.ToLower(text)
	return strings.Contains(lower, "what is") && questionHowRe.MatchString(lower)
}

func hasTableOfContents(page *ParsedPage) bool {
	if page.Doc.Find(`[class*="toc"], [id*="toc"], [class*="table-of-contents"], [id*="table-of-contents"]`).Length() > 0 {
		return true
	}
	found := false
	page.Doc.Find("h2, h3, h4, nav").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if tocMarkerRe.MatchString(s.Text()) {
			found = true
			return false
		}
		return true
	})
	if found {
		return true
	}
	return page.Doc.Find(`a[href^="#"]`).Length() >= 5
}

func hasFreshnessSignal(pages []*ParsedPage, text string) bool {
	for _, p := range pages {
		for _, block := range p.JSONLDBlocks {
			if block["dateModified"] != nil || block["datePublished"] != nil {
				return true
			}
		}
		if p.Doc.Find("time[datetime]").Length() > 0 {
			return true
		}
	}
	return freshnessTextRe.MatchString(text)
}

func hasStructuredLists(pages []*ParsedPage) bool {
	for _, p := range pages {
		if strings.Contains(p.MainContentHTML, "<ul") || strings.Contains(p.MainContentHTML, "<ol") {
			return true
		}
		if p.Doc.Find("main ul, main ol, article ul, article ol").Length() > 0 {
			return true
		}
	}
	return false
}

func countInternalLinks(page *ParsedPage) int {
	base, err := url.Parse(page.URL)
	if err != nil {
		return 0
	}
	count := 0
	page.Doc.Find("p a[href], li a[href], td a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		resolved, err := base.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		if resolved.Hostname() == base.Hostname() && resolved.Path != "" {
			count++
		}
	})
	return count
}

func hasStructuredFormats(pages []*ParsedPage, text string) bool {
	for _, p := range pages {
		if p.Doc.Find("table").Length() > 0 {
			return true
		}
	}
	return stepPatternRe.MatchString(text) || comparisonRe.MatchString(text)
}

func sectionDensityInRange(pages []*ParsedPage) (bool, int) {
	totalWords := 0
	totalSections := 0
	for _, p := range pages {
		n := p.Doc.Find("h2, h3").Length()
		if n == 0 {
			continue
		}
		totalSections += n
		totalWords += CountWords(p.MainContent)
	}
	if totalSections == 0 {
		return false, 0
	}
	avg := totalWords / totalSections
	return avg >= 100 && avg <= 200, avg
}

// answerFirstRatio measures how many H2/H3 sections open with a direct
// declarative statement rather than a meta-introduction.
func answerFirstRatio(pages []*ParsedPage) float64 {
	sections := 0
	direct := 0
	for _, p := range pages {
		p.Doc.Find("h2, h3").Each(func(_ int, s *goquery.Selection) {
			first := strings.TrimSpace(s.NextAllFiltered("p").First().Text())
			if first == "" {
				return
			}
			sections++
			if !metaIntroRe.MatchString(first) && len(strings.Fields(first)) >= 5 {
				direct++
			}
		})
	}
	if sections == 0 {
		return 0
	}
	return float64(direct) / float64(sections)
}

// extractableParagraphRatio measures how many paragraphs avoid opening
// with a backward reference or bare pronoun.
func extractableParagraphRatio(pages []*ParsedPage) float64 {
	total := 0
	clean := 0
	for _, p := range pages {
		p.Doc.Find("p").Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(strings.Fields(text)) < 5 {
				return
			}
			total++
			if !backReferenceRe.MatchString(text) {
				clean++
			}
		})
	}
	if total == 0 {
		return 0
	}
	return float64(clean) / float64(total)
}
