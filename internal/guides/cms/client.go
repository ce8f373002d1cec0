package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/carelink-app/carelink-backend/internal/guides/domain"
	"github.com/carelink-app/carelink-backend/internal/logging"
)

const defaultTimeout = 15 * time.Second

// Client fetches guide content from the headless CMS over its REST API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

type tagEntry struct {
	Attributes struct {
		Name string `json:"name"`
	} `json:"attributes"`
}

type tagList struct {
	Data []tagEntry `json:"data"`
}

type guideEntry struct {
	ID         int `json:"id"`
	Attributes struct {
		Title    string  `json:"title"`
		Summary  string  `json:"summary"`
		Content  string  `json:"content"`
		Relation string  `json:"relation"`
		ImageURL string  `json:"imageUrl"`
		Tags     tagList `json:"tags"`
		HelpTags tagList `json:"help_tags"`
	} `json:"attributes"`
}

type guidesResponse struct {
	Data []guideEntry `json:"data"`
}

// FetchByRelation returns the visible guides published for one
// relation-to-patient category. Tag filtering happens locally; the CMS is
// only asked to narrow by relation and visibility.
func (c *Client) FetchByRelation(ctx context.Context, relation string) ([]domain.Guide, error) {
	logger := logging.NewLogger(ctx)
	start := time.Now()

	q := url.Values{}
	q.Set("filters[visible][$eq]", "true")
	q.Set("filters[relation][$eq]", relation)
	q.Set("populate[0]", "tags")
	q.Set("populate[1]", "help_tags")
	reqURL := c.baseURL + "/api/guides?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.LogError("cms_fetch_guides", err)
		return nil, fmt.Errorf("cms request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.LogWarnf("cms_fetch_guides", "cms returned status %d", resp.StatusCode)
		return nil, fmt.Errorf("cms returned status %d", resp.StatusCode)
	}

	var decoded guidesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode cms response: %w", err)
	}

	guides := make([]domain.Guide, 0, len(decoded.Data))
	for _, e := range decoded.Data {
		g := domain.Guide{
			ID:       e.ID,
			Title:    e.Attributes.Title,
			Summary:  e.Attributes.Summary,
			Content:  e.Attributes.Content,
			Relation: e.Attributes.Relation,
			ImageURL: e.Attributes.ImageURL,
			Tags:     tagNames(e.Attributes.Tags),
			HelpTags: tagNames(e.Attributes.HelpTags),
		}
		guides = append(guides, g)
	}

	logger.LogInfof("cms_fetch_guides", "fetched %d guides relation=%s duration_ms=%d",
		len(guides), relation, time.Since(start).Milliseconds())
	return guides, nil
}

func tagNames(l tagList) []string {
	names := make([]string, 0, len(l.Data))
	for _, t := range l.Data {
		names = append(names, t.Attributes.Name)
	}
	return names
}
