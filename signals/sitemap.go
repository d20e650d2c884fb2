package signals

import (
	"context"
	"encoding/xml"
	"net/http"
	"strings"
	"time"
)

const fileCheckTimeout = 5 * time.Second

// SitemapResult describes the site's sitemap.xml, if any.
type SitemapResult struct {
	Exists     bool `json:"exists"`
	URLCount   int  `json:"urlCount"`
	HasLastmod bool `json:"hasLastmod"`
}

type sitemapURLSet struct {
	XMLName xml.Name `xml:"urlset"`
	URLs    []struct {
		Loc     string `xml:"loc"`
		Lastmod string `xml:"lastmod"`
	} `xml:"url"`
}

type sitemapIndex struct {
	XMLName  xml.Name `xml:"sitemapindex"`
	Sitemaps []struct {
		Loc     string `xml:"loc"`
		Lastmod string `xml:"lastmod"`
	} `xml:"sitemap"`
}

// CheckSitemap fetches <origin>/sitemap.xml and reports whether it exists
// and roughly what shape it has. A sitemap index counts its child sitemap
// entries as URLs.
func (c *Client) CheckSitemap(ctx context.Context, origin string) SitemapResult {
	body, status, err := c.fetchText(ctx, strings.TrimSuffix(origin, "/")+"/sitemap.xml", fileCheckTimeout)
	if err != nil || status != http.StatusOK {
		return SitemapResult{}
	}

	// Some servers answer 200 with an HTML error page.
	trimmed := strings.TrimSpace(body)
	if trimmed == "" || looksLikeHTML(trimmed) {
		return SitemapResult{}
	}

	var urlset sitemapURLSet
	if err := xml.Unmarshal([]byte(body), &urlset); err == nil && len(urlset.URLs) > 0 {
		result := SitemapResult{Exists: true, URLCount: len(urlset.URLs)}
		for _, u := range urlset.URLs {
			if strings.TrimSpace(u.Lastmod) != "" {
				result.HasLastmod = true
				break
			}
		}
		return result
	}

	var index sitemapIndex
	if err := xml.Unmarshal([]byte(body), &index); err == nil && len(index.Sitemaps) > 0 {
		result := SitemapResult{Exists: true, URLCount: len(index.Sitemaps)}
		for _, s := range index.Sitemaps {
			if strings.TrimSpace(s.Lastmod) != "" {
				result.HasLastmod = true
				break
			}
		}
		return result
	}

	// Well-formed enough to exist but with no entries we can count.
	if strings.Contains(body, "<urlset") || strings.Contains(body, "<sitemapindex") {
		return SitemapResult{Exists: true}
	}
	return SitemapResult{}
}

func looksLikeHTML(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html")
}
