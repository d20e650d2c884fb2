package signals

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const knowledgeGraphTimeout = 8 * time.Second

// kgMinResultScore is the confidence floor below which a match is treated
// as noise rather than a real entity hit.
const kgMinResultScore = 10

// KnowledgeGraphResult describes a Google Knowledge Graph entity lookup.
type KnowledgeGraphResult struct {
	Found       bool   `json:"found"`
	Name        string `json:"name,omitempty"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

type kgResponse struct {
	ItemListElement []struct {
		ResultScore float64 `json:"resultScore"`
		Result      struct {
			Name        string   `json:"name"`
			Type        []string `json:"@type"`
			Description string   `json:"description"`
		} `json:"result"`
	} `json:"itemListElement"`
}

// KnowledgeGraph looks the brand up in the Google Knowledge Graph. Without
// an API key it always returns nil, which the analyzer reads as "unknown".
func (c *Client) KnowledgeGraph(ctx context.Context, query string) *KnowledgeGraphResult {
	if c.knowledgeGraphKey == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, knowledgeGraphTimeout)
	defer cancel()

	apiURL := "https://kgsearch.googleapis.com/v1/entities:search?limit=1&query=" +
		url.QueryEscape(query) + "&key=" + url.QueryEscape(c.knowledgeGraphKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil
	}
	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("knowledgegraph: request failed for %q: %v", query, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil
	}
	return ParseKnowledgeGraph(body)
}

// ParseKnowledgeGraph interprets a Knowledge Graph search response body.
// Malformed JSON yields nil; an empty result list or a top hit below
// kgMinResultScore yields an empty (not-found) result.
func ParseKnowledgeGraph(body []byte) *KnowledgeGraphResult {
	var kg kgResponse
	if err := json.Unmarshal(body, &kg); err != nil {
		return nil
	}
	if len(kg.ItemListElement) == 0 {
		return &KnowledgeGraphResult{}
	}

	top := kg.ItemListElement[0]
	if top.ResultScore < kgMinResultScore {
		return &KnowledgeGraphResult{}
	}

	result := &KnowledgeGraphResult{
		Found:       true,
		Name:        top.Result.Name,
		Description: top.Result.Description,
	}
	if len(top.Result.Type) > 0 {
		result.Type = top.Result.Type[0]
	}
	return result
}
