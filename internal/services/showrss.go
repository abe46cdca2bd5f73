// ShowRSS feed implementation of [Feed]
//
// The feed carries the latest ~100 episodes with magnet URIs in the item
// links; it is bounded and not paginated.
package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"

	"github.com/duskren/ytrd/internal/magnet"
	"github.com/duskren/ytrd/internal/shared"
)

type rssDocument struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
}

// ShowRSSService implements the Feed interface for a ShowRSS user feed.
type ShowRSSService struct {
	feedURL    string
	httpClient *http.Client
}

// NewShowRSSService creates a feed client for the given feed URL.
func NewShowRSSService(feedURL string, client *http.Client) *ShowRSSService {
	if client == nil {
		client = http.DefaultClient
	}

	return &ShowRSSService{
		feedURL:    feedURL,
		httpClient: client,
	}
}

func (s *ShowRSSService) Name() string {
	return "ShowRSS"
}

// Episodes fetches and parses the feed. Items whose link carries no
// urn:btih hash are dropped since they cannot be deduplicated or submitted.
func (s *ShowRSSService) Episodes(ctx context.Context) ([]Episode, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", shared.ErrFeedUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}

	var doc rssDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	var episodes []Episode
	for _, item := range doc.Channel.Items {
		hash, ok := magnet.ExtractHash(item.Link)
		if !ok {
			continue
		}

		episodes = append(episodes, Episode{
			Title:   item.Title,
			Magnet:  item.Link,
			Hash:    hash,
			PubDate: item.PubDate,
		})
	}

	return episodes, nil
}
