package signals

import (
	"bufio"
	"context"
	"net/http"
	"regexp"
	"strings"
)

// AICrawlers is the fixed list of AI assistant/training crawlers whose
// access we check in robots.txt.
var AICrawlers = []string{
	"GPTBot",
	"ChatGPT-User",
	"OAI-SearchBot",
	"ClaudeBot",
	"anthropic-ai",
	"Claude-Web",
	"PerplexityBot",
	"Google-Extended",
	"CCBot",
	"Bytespider",
	"Amazonbot",
	"cohere-ai",
	"meta-externalagent",
}

// RobotsResult describes a site's robots.txt as it affects crawlers.
type RobotsResult struct {
	Exists              bool     `json:"exists"`
	HasSitemapDirective bool     `json:"hasSitemapDirective"`
	BlockedBots         []string `json:"blockedBots"`
	AllowsAllCrawlers   bool     `json:"allowsAllCrawlers"`
	Content             string   `json:"content"`
}

// CheckRobots fetches <origin>/robots.txt and evaluates it against the AI
// crawler list.
func (c *Client) CheckRobots(ctx context.Context, origin string) RobotsResult {
	body, status, err := c.fetchText(ctx, strings.TrimSuffix(origin, "/")+"/robots.txt", fileCheckTimeout)
	if err != nil || status != http.StatusOK {
		return RobotsResult{}
	}
	if looksLikeHTML(strings.TrimSpace(body)) {
		return RobotsResult{}
	}
	return ParseRobots(body)
}

// ParseRobots evaluates robots.txt content. A bot counts as blocked only
// when its own user-agent section disallows the root path; the wildcard
// section is evaluated separately as a blanket disallow. This is a
// deliberate simplification of how different crawlers actually merge
// rules, tuned for detection rather than enforcement.
func ParseRobots(content string) RobotsResult {
	result := RobotsResult{
		Exists:      strings.Contains(strings.ToLower(content), "user-agent"),
		BlockedBots: []string{},
		Content:     content,
	}
	if !result.Exists {
		return result
	}

	lower := strings.ToLower(content)
	result.HasSitemapDirective = strings.Contains(lower, "sitemap:")

	for _, bot := range AICrawlers {
		section := agentSection(content, bot)
		if section != "" && disallowsRoot(section) {
			result.BlockedBots = append(result.BlockedBots, bot)
		}
	}

	wildcardBlocked := false
	if wildcard := agentSection(content, "*"); wildcard != "" {
		wildcardBlocked = disallowsRoot(wildcard)
	}

	result.AllowsAllCrawlers = len(result.BlockedBots) == 0 && !wildcardBlocked
	return result
}

// agentSection returns the text from the bot's User-agent directive up to
// the next User-agent directive or EOF, or "" when the bot has no section.
func agentSection(content, agent string) string {
	scanner := bufio.NewScanner(strings.NewReader(content))
	var section strings.Builder
	inSection := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if idx := strings.Index(line, "#"); idx != -1 {
			line = strings.TrimSpace(line[:idx])
		}
		lowerLine := strings.ToLower(line)

		if strings.HasPrefix(lowerLine, "user-agent:") {
			if inSection {
				break
			}
			value := strings.TrimSpace(line[len("user-agent:"):])
			if strings.EqualFold(value, agent) {
				inSection = true
			}
			continue
		}

		if inSection && line != "" {
			section.WriteString(line)
			section.WriteString("\n")
		}
	}

	if !inSection {
		return ""
	}
	return section.String()
}

var disallowRootRe = regexp.MustCompile(`(?im)^\s*disallow:\s*/\s*$`)

func disallowsRoot(section string) bool {
	return disallowRootRe.MatchString(section)
}
