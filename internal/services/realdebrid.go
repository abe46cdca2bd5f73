// Real-Debrid REST implementation of [Destination]
//
// Endpoints based on https://api.real-debrid.com/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
)

const defaultRealDebridBaseURL = "https://api.real-debrid.com/rest/1.0"

// RealDebridService implements the Destination interface for the
// Real-Debrid torrents API. Requests carry the account's bearer token via
// an [oauth2] static token client.
type RealDebridService struct {
	baseURL    string
	httpClient *http.Client
}

// NewRealDebridService creates a Real-Debrid client authenticated with the
// given API token.
func NewRealDebridService(token, baseURL string) *RealDebridService {
	if baseURL == "" {
		baseURL = defaultRealDebridBaseURL
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})

	return &RealDebridService{
		baseURL:    baseURL,
		httpClient: oauth2.NewClient(context.Background(), src),
	}
}

func (r *RealDebridService) Name() string {
	return "Real-Debrid"
}

// postForm performs an authenticated form POST and decodes the JSON
// response into result when it is non-nil. Non-2xx responses are returned
// as a [StatusError] so callers can branch on 429 and 404.
func (r *RealDebridService) postForm(ctx context.Context, endpoint string, form url.Values, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// AddMagnet submits a magnet URI and returns the torrent ID assigned by
// Real-Debrid.
func (r *RealDebridService) AddMagnet(ctx context.Context, magnet string) (string, error) {
	var result struct {
		ID  string `json:"id"`
		URI string `json:"uri"`
	}

	form := url.Values{"magnet": {magnet}}
	if err := r.postForm(ctx, "/torrents/addMagnet", form, &result); err != nil {
		return "", err
	}

	return result.ID, nil
}

// SelectFiles marks every file of the torrent for download.
func (r *RealDebridService) SelectFiles(ctx context.Context, id string) error {
	form := url.Values{"files": {"all"}}
	return r.postForm(ctx, "/torrents/selectFiles/"+id, form, nil)
}

// Torrents lists items currently held by the account, active and
// completed, up to limit.
func (r *RealDebridService) Torrents(ctx context.Context, limit int) ([]DebridTorrent, error) {
	endpoint := r.baseURL + "/torrents?limit=" + strconv.Itoa(limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var torrents []DebridTorrent
	if err := json.NewDecoder(resp.Body).Decode(&torrents); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return torrents, nil
}
