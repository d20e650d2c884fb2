package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, html, pageURL string) *ParsedPage {
	t.Helper()
	page, err := ParsePage(html, pageURL)
	require.NoError(t, err)
	return page
}

func TestParsePageMainContent(t *testing.T) {
	html := `<html><head><title>Guide</title></head><body>
		<nav>Home About Contact</nav>
		<main>
			<h1>What is answer engine optimization?</h1>
			<p>Answer engine optimization is the practice of structuring content so AI assistants can extract and cite it accurately.</p>
		</main>
		<footer>Copyright</footer>
	</body></html>`

	page := mustParse(t, html, "https://example.com/guide")

	assert.Equal(t, "https://example.com/guide", page.URL)
	assert.NotEmpty(t, page.MainContent)
	assert.Contains(t, page.MainContent, "answer engine optimization")
	assert.NotEmpty(t, page.MainContentHTML)
}

func TestParsePageBodyFallback(t *testing.T) {
	// No main/article/content landmarks; extraction falls back to body text.
	page := mustParse(t, `<html><body><p>Plain body copy with enough words to keep.</p></body></html>`, "https://example.com")
	assert.Contains(t, page.MainContent, "Plain body copy")
}

func TestExtractJSONLD(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">{"@type":"FAQPage","mainEntity":[]}</script>
		<script type="application/ld+json">{this is not json</script>
		<script type="application/ld+json">[{"@type":"Organization","name":"Acme"},{"@type":"WebSite"}]</script>
	</head><body></body></html>`

	page := mustParse(t, html, "https://example.com")

	require.Len(t, page.JSONLDBlocks, 3, "malformed block is skipped, array blocks expand")
	assert.ElementsMatch(t, []string{"FAQPage", "Organization", "WebSite"}, page.SchemaTypes())

	org, ok := page.FindSchemaByType("Organization")
	require.True(t, ok)
	assert.Equal(t, "Acme", org["name"])

	_, ok = page.FindSchemaByType("Article")
	assert.False(t, ok)
}

func TestExtractJSONLDGraph(t *testing.T) {
	html := `<html><head><script type="application/ld+json">
		{"@context":"https://schema.org","@graph":[
			{"@type":"Organization","name":"Acme"},
			{"@type":"WebSite","url":"https://example.com"},
			{"@type":"BreadcrumbList"}
		]}
	</script></head><body></body></html>`

	page := mustParse(t, html, "https://example.com")

	assert.ElementsMatch(t, []string{"Organization", "WebSite", "BreadcrumbList"}, page.SchemaTypes())
}

func TestJSONLDPolymorphicType(t *testing.T) {
	block := JSONLD{"@type": []interface{}{"Article", "BlogPosting"}}
	assert.ElementsMatch(t, []string{"Article", "BlogPosting"}, block.TypesOf())
	assert.True(t, block.HasType("BlogPosting"))

	scalar := JSONLD{"@type": "Organization"}
	assert.Equal(t, []string{"Organization"}, scalar.TypesOf())

	assert.Nil(t, JSONLD{}.TypesOf())
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 0, CountWords("a an to of"))
	// Only tokens longer than two characters count.
	assert.Equal(t, 4, CountWords("the quick ox ran far"))
	assert.Equal(t, 2, CountWords("  answer   engines  "))
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "one two three", collapseWhitespace("  one\n\ttwo   three  "))
	assert.Equal(t, "", collapseWhitespace(" \n\t "))
}
