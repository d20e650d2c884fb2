package signals

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"
)

const pagespeedTimeout = 25 * time.Second

// PageSpeedResult holds the subset of a PageSpeed Insights v5 run the
// analyzers care about. Category scores are 0-100.
type PageSpeedResult struct {
	PerformanceScore   int              `json:"performanceScore"`
	AccessibilityScore int              `json:"accessibilityScore"`
	SEOScore           int              `json:"seoScore"`
	BestPracticesScore int              `json:"bestPracticesScore"`
	Metrics            PageSpeedMetrics `json:"metrics"`
	Audits             PageSpeedAudits  `json:"audits"`
}

// PageSpeedMetrics are lab metric values in milliseconds (CLS unitless).
type PageSpeedMetrics struct {
	FCP        float64 `json:"fcp"`
	LCP        float64 `json:"lcp"`
	CLS        float64 `json:"cls"`
	TBT        float64 `json:"tbt"`
	SpeedIndex float64 `json:"speedIndex"`
}

// PageSpeedAudits are pass/fail Lighthouse audits.
type PageSpeedAudits struct {
	Viewport        bool `json:"viewport"`
	DocumentTitle   bool `json:"documentTitle"`
	MetaDescription bool `json:"metaDescription"`
	IsIndexable     bool `json:"isIndexable"`
	Canonical       bool `json:"canonical"`
	ImageAlt        bool `json:"imageAlt"`
	LinkText        bool `json:"linkText"`
}

type psiResponse struct {
	LighthouseResult *struct {
		Categories map[string]struct {
			Score float64 `json:"score"`
		} `json:"categories"`
		Audits map[string]struct {
			Score        *float64 `json:"score"`
			NumericValue float64  `json:"numericValue"`
		} `json:"audits"`
	} `json:"lighthouseResult"`
}

// PageSpeed runs a PageSpeed Insights audit for the URL. Returns nil on
// any failure; the analyzers treat a nil result as "no data".
func (c *Client) PageSpeed(ctx context.Context, targetURL string) *PageSpeedResult {
	ctx, cancel := context.WithTimeout(ctx, pagespeedTimeout)
	defer cancel()

	apiURL := "https://www.googleapis.com/pagespeedonline/v5/runPagespeed?url=" + url.QueryEscape(targetURL) +
		"&strategy=mobile&category=performance&category=accessibility&category=seo&category=best-practices"
	if c.pagespeedKey != "" {
		apiURL += "&key=" + url.QueryEscape(c.pagespeedKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil
	}
	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("pagespeed: request failed for %s: %v", targetURL, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("pagespeed: API returned status %d for %s", resp.StatusCode, targetURL)
		return nil
	}

	var psi psiResponse
	if err := json.NewDecoder(resp.Body).Decode(&psi); err != nil || psi.LighthouseResult == nil {
		return nil
	}

	lr := psi.LighthouseResult
	result := &PageSpeedResult{}
	if cat, ok := lr.Categories["performance"]; ok {
		result.PerformanceScore = int(cat.Score * 100)
	}
	if cat, ok := lr.Categories["accessibility"]; ok {
		result.AccessibilityScore = int(cat.Score * 100)
	}
	if cat, ok := lr.Categories["seo"]; ok {
		result.SEOScore = int(cat.Score * 100)
	}
	if cat, ok := lr.Categories["best-practices"]; ok {
		result.BestPracticesScore = int(cat.Score * 100)
	}

	if audits := lr.Audits; audits != nil {
		if a, ok := audits["first-contentful-paint"]; ok {
			result.Metrics.FCP = a.NumericValue
		}
		if a, ok := audits["largest-contentful-paint"]; ok {
			result.Metrics.LCP = a.NumericValue
		}
		if a, ok := audits["cumulative-layout-shift"]; ok {
			result.Metrics.CLS = a.NumericValue
		}
		if a, ok := audits["total-blocking-time"]; ok {
			result.Metrics.TBT = a.NumericValue
		}
		if a, ok := audits["speed-index"]; ok {
			result.Metrics.SpeedIndex = a.NumericValue
		}
		result.Audits.Viewport = auditPassed(audits, "viewport")
		result.Audits.DocumentTitle = auditPassed(audits, "document-title")
		result.Audits.MetaDescription = auditPassed(audits, "meta-description")
		result.Audits.IsIndexable = auditPassed(audits, "is-crawlable")
		result.Audits.Canonical = auditPassed(audits, "canonical")
		result.Audits.ImageAlt = auditPassed(audits, "image-alt")
		result.Audits.LinkText = auditPassed(audits, "link-text")
	}

	return result
}

func auditPassed(audits map[string]struct {
	Score        *float64 `json:"score"`
	NumericValue float64  `json:"numericValue"`
}, key string) bool {
	a, ok := audits[key]
	return ok && a.Score != nil && *a.Score >= 0.9
}
