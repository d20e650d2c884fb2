package assessment

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// ParsePage turns raw HTML into a ParsedPage. Main content extraction
// degrades through three tiers (readability algorithm, content-area
// selectors, full body text) and never fails for a page with a body.
func ParsePage(html, pageURL string) (*ParsedPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	page := &ParsedPage{
		URL:          pageURL,
		Doc:          doc,
		JSONLDBlocks: extractJSONLD(doc),
	}
	page.MainContent, page.MainContentHTML = extractMainContent(doc, html, pageURL)

	return page, nil
}

func extractMainContent(doc *goquery.Document, html, pageURL string) (text, contentHTML string) {
	// Tier 1: readability extraction.
	if parsed, err := url.Parse(pageURL); err == nil {
		if article, err := readability.FromReader(strings.NewReader(html), parsed); err == nil {
			if t := collapseWhitespace(article.TextContent); t != "" {
				return t, article.Content
			}
		}
	}

	// Tier 2: conventional content-area selectors.
	for _, selector := range []string{"main", "article", "[role='main']", "#content", ".content"} {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 {
			if t := collapseWhitespace(sel.Text()); t != "" {
				h, _ := sel.Html()
				return t, h
			}
		}
	}

	// Tier 3: the whole body.
	body := doc.Find("body").First()
	h, _ := body.Html()
	return collapseWhitespace(body.Text()), h
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// extractJSONLD parses every <script type="application/ld+json"> block,
// flattening @graph arrays into the list. A malformed block is skipped
// without affecting the others.
func extractJSONLD(doc *goquery.Document) []JSONLD {
	var blocks []JSONLD

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}

		var decoded interface{}
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			return
		}

		switch v := decoded.(type) {
		case map[string]interface{}:
			blocks = append(blocks, flattenGraph(JSONLD(v))...)
		case []interface{}:
			for _, item := range v {
				if m, ok := item.(map[string]interface{}); ok {
					blocks = append(blocks, flattenGraph(JSONLD(m))...)
				}
			}
		}
	})

	return blocks
}

func flattenGraph(block JSONLD) []JSONLD {
	graph, ok := block["@graph"].([]interface{})
	if !ok {
		return []JSONLD{block}
	}

	blocks := make([]JSONLD, 0, len(graph))
	for _, item := range graph {
		if m, ok := item.(map[string]interface{}); ok {
			blocks = append(blocks, JSONLD(m))
		}
	}
	if len(blocks) == 0 {
		return []JSONLD{block}
	}
	return blocks
}

// SchemaTypes returns the deduplicated @type values across the page's
// JSON-LD blocks.
func (p *ParsedPage) SchemaTypes() []string {
	seen := make(map[string]bool)
	var types []string
	for _, block := range p.JSONLDBlocks {
		for _, t := range block.TypesOf() {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
	}
	return types
}

// FindSchemaByType returns the first block declaring the given @type.
func (p *ParsedPage) FindSchemaByType(t string) (JSONLD, bool) {
	for _, block := range p.JSONLDBlocks {
		if block.HasType(t) {
			return block, true
		}
	}
	return nil, false
}

// CountWords tokenizes on whitespace, counting only tokens longer than
// two characters so markup debris and stray punctuation don't inflate the
// total.
func CountWords(text string) int {
	count := 0
	for _, token := range strings.Fields(text) {
		if len(token) > 2 {
			count++
		}
	}
	return count
}
