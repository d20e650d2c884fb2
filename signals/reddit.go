package signals

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"
)

const redditTimeout = 8 * time.Second

// RedditMention is one post that mentions the brand.
type RedditMention struct {
	Title     string `json:"title"`
	Subreddit string `json:"subreddit"`
	Permalink string `json:"permalink"`
}

// RedditResult summarizes brand mentions found via Reddit's public search.
type RedditResult struct {
	HasMentions    bool            `json:"hasMentions"`
	PostCount      int             `json:"postCount"`
	Subreddits     []string        `json:"subreddits"`
	RecentMentions []RedditMention `json:"recentMentions"`
}

type redditSearchResponse struct {
	Data struct {
		Children []struct {
			Data struct {
				Title     string `json:"title"`
				Subreddit string `json:"subreddit"`
				Permalink string `json:"permalink"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// SearchReddit queries Reddit's unauthenticated search endpoint for posts
// mentioning the brand within the last year. Any failure yields the empty
// result shape, never an error.
func (c *Client) SearchReddit(ctx context.Context, brand string) RedditResult {
	empty := RedditResult{Subreddits: []string{}, RecentMentions: []RedditMention{}}
	if brand == "" {
		return empty
	}

	ctx, cancel := context.WithTimeout(ctx, redditTimeout)
	defer cancel()

	apiURL := "https://www.reddit.com/search.json?limit=10&sort=new&t=year&q=" +
		url.QueryEscape(`"`+brand+`"`)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return empty
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("reddit: search failed for %q: %v", brand, err)
		return empty
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return empty
	}

	var search redditSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return empty
	}

	result := empty
	seen := make(map[string]bool)
	for _, child := range search.Data.Children {
		post := child.Data
		result.PostCount++
		if post.Subreddit != "" && !seen[post.Subreddit] {
			seen[post.Subreddit] = true
			result.Subreddits = append(result.Subreddits, post.Subreddit)
		}
		if len(result.RecentMentions) < 3 {
			result.RecentMentions = append(result.RecentMentions, RedditMention{
				Title:     post.Title,
				Subreddit: post.Subreddit,
				Permalink: "https://www.reddit.com" + post.Permalink,
			})
		}
	}
	result.HasMentions = result.PostCount > 0
	return result
}
