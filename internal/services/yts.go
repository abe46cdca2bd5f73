// YTS API implementation of [Catalog]
//
// Response envelope based on https://yts.mx/api#list_movies
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/duskren/ytrd/internal/shared"
)

const defaultYTSBaseURL = "https://yts.lt/api/v2"

// ytsListResponse is the outer status/data envelope every YTS endpoint uses.
type ytsListResponse struct {
	Status        string      `json:"status"`
	StatusMessage string      `json:"status_message"`
	Data          ytsListData `json:"data"`
}

type ytsListData struct {
	MovieCount int     `json:"movie_count"`
	Limit      int     `json:"limit"`
	PageNumber int     `json:"page_number"`
	Movies     []Movie `json:"movies"`
}

// YTSService implements the Catalog interface against the YTS REST API.
type YTSService struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
}

// NewYTSService creates a new YTS catalog client. The page size is clamped
// to the API maximum of 50.
func NewYTSService(baseURL string, pageSize int, client *http.Client) *YTSService {
	if baseURL == "" {
		baseURL = defaultYTSBaseURL
	}
	if pageSize <= 0 || pageSize > 50 {
		pageSize = 50
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &YTSService{
		baseURL:    baseURL,
		pageSize:   pageSize,
		httpClient: client,
	}
}

func (y *YTSService) Name() string {
	return "YTS"
}

// listMovies performs a list_movies.json request with the given parameters.
func (y *YTSService) listMovies(ctx context.Context, params url.Values) (*ytsListData, error) {
	endpoint := y.baseURL + "/list_movies.json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %s", shared.ErrCatalogUnavailable, (&StatusError{Code: resp.StatusCode, Body: string(body)}).Error())
	}

	var envelope ytsListResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if envelope.Status != "ok" {
		return nil, fmt.Errorf("%w: %s", shared.ErrAPIRequest, envelope.StatusMessage)
	}

	return &envelope.Data, nil
}

// MoviesPage fetches one page of the catalog sorted by date added,
// newest first. The total page count is derived by ceiling division from
// the movie count and the limit echoed back by the server, since the
// server may clamp the requested page size.
func (y *YTSService) MoviesPage(ctx context.Context, page int, minRating float64) (*MoviePage, error) {
	params := url.Values{
		"limit":          {strconv.Itoa(y.pageSize)},
		"page":           {strconv.Itoa(page)},
		"minimum_rating": {strconv.FormatFloat(minRating, 'f', -1, 64)},
		"sort_by":        {"date_added"},
		"order_by":       {"desc"},
	}

	data, err := y.listMovies(ctx, params)
	if err != nil {
		return nil, err
	}

	effectiveLimit := data.Limit
	if effectiveLimit <= 0 {
		effectiveLimit = y.pageSize
	}

	return &MoviePage{
		Movies:     data.Movies,
		MovieCount: data.MovieCount,
		PageCount:  (data.MovieCount + effectiveLimit - 1) / effectiveLimit,
	}, nil
}

// LatestMovies fetches the most recently added titles in a single request.
func (y *YTSService) LatestMovies(ctx context.Context, limit int, minRating float64) ([]Movie, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	params := url.Values{
		"limit":          {strconv.Itoa(limit)},
		"minimum_rating": {strconv.FormatFloat(minRating, 'f', -1, 64)},
		"sort_by":        {"date_added"},
		"order_by":       {"desc"},
	}

	data, err := y.listMovies(ctx, params)
	if err != nil {
		return nil, err
	}

	return data.Movies, nil
}
