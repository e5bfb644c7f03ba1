package services

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"
)

// LookupService answers reference questions against Wikipedia, the
// DuckDuckGo instant-answer API and the arXiv feed. Every failure is
// reported as a descriptive string so the agent can surface it as an
// observation instead of ending the turn.
type LookupService struct {
	client        *http.Client
	wikipediaURL  string
	duckDuckGoURL string
	arxivURL      string
}

func NewLookupService() *LookupService {
	return &LookupService{
		client:        &http.Client{Timeout: 15 * time.Second},
		wikipediaURL:  "https://en.wikipedia.org/api/rest_v1",
		duckDuckGoURL: "https://api.duckduckgo.com",
		arxivURL:      "http://export.arxiv.org/api/query",
	}
}

// Wikipedia fetches the summary of the closest matching article.
func (s *LookupService) Wikipedia(topic string) (string, error) {
	endpoint := fmt.Sprintf("%s/page/summary/%s", s.wikipediaURL, url.PathEscape(strings.ReplaceAll(strings.TrimSpace(topic), " ", "_")))

	body, err := s.get(endpoint)
	if err != nil {
		return "", fmt.Errorf("wikipedia lookup failed: %w", err)
	}

	var summary struct {
		Title       string `json:"title"`
		Extract     string `json:"extract"`
		ContentURLs struct {
			Desktop struct {
				Page string `json:"page"`
			} `json:"desktop"`
		} `json:"content_urls"`
	}
	if err := json.Unmarshal(body, &summary); err != nil {
		return "", fmt.Errorf("failed to parse wikipedia response: %w", err)
	}

	if summary.Extract == "" {
		return fmt.Sprintf("No Wikipedia summary found for '%s'.", topic), nil
	}

	result := fmt.Sprintf("Wikipedia: %s\n\n%s", summary.Title, summary.Extract)
	if summary.ContentURLs.Desktop.Page != "" {
		result += "\n\nRead more: " + summary.ContentURLs.Desktop.Page
	}
	return result, nil
}

// WebSearch queries the DuckDuckGo instant-answer endpoint.
func (s *LookupService) WebSearch(query string) (string, error) {
	endpoint := fmt.Sprintf("%s/?q=%s&format=json&no_html=1", s.duckDuckGoURL, url.QueryEscape(query))

	body, err := s.get(endpoint)
	if err != nil {
		return "", fmt.Errorf("web search failed: %w", err)
	}

	var answer struct {
		AbstractText  string         `json:"AbstractText"`
		AbstractURL   string         `json:"AbstractURL"`
		RelatedTopics []relatedTopic `json:"RelatedTopics"`
	}
	if err := json.Unmarshal(body, &answer); err != nil {
		return "", fmt.Errorf("failed to parse search response: %w", err)
	}

	if answer.AbstractText != "" {
		result := answer.AbstractText
		if answer.AbstractURL != "" {
			result += "\n\nSource: " + answer.AbstractURL
		}
		return result, nil
	}

	related := lo.FilterMap(answer.RelatedTopics, func(topic relatedTopic, _ int) (string, bool) {
		return topic.Text, topic.Text != ""
	})
	if len(related) > 3 {
		related = related[:3]
	}
	if len(related) == 0 {
		return fmt.Sprintf("No web results found for '%s'.", query), nil
	}

	return "Related results:\n- " + strings.Join(related, "\n- "), nil
}

type relatedTopic struct {
	Text string `json:"Text"`
}

type arxivFeed struct {
	Entries []struct {
		Title   string `xml:"title"`
		Summary string `xml:"summary"`
		ID      string `xml:"id"`
	} `xml:"entry"`
}

// AcademicSearch lists the top arXiv papers matching the query.
func (s *LookupService) AcademicSearch(query string) (string, error) {
	endpoint := fmt.Sprintf("%s?search_query=all:%s&start=0&max_results=3", s.arxivURL, url.QueryEscape(query))

	body, err := s.get(endpoint)
	if err != nil {
		return "", fmt.Errorf("academic search failed: %w", err)
	}

	var feed arxivFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return "", fmt.Errorf("failed to parse arxiv response: %w", err)
	}

	if len(feed.Entries) == 0 {
		return fmt.Sprintf("No academic papers found for '%s'.", query), nil
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Top papers for '%s':\n\n", query))
	for i, entry := range feed.Entries {
		summary := strings.Join(strings.Fields(entry.Summary), " ")
		if len(summary) > 300 {
			summary = summary[:300] + "..."
		}
		result.WriteString(fmt.Sprintf("%d. %s\n   %s\n   %s\n\n", i+1, strings.TrimSpace(entry.Title), summary, strings.TrimSpace(entry.ID)))
	}
	return result.String(), nil
}

func (s *LookupService) get(endpoint string) ([]byte, error) {
	log.Printf("[INFO] External lookup: %s", endpoint)

	resp, err := s.client.Get(endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
