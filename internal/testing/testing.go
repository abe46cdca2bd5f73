// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/duskren/ytrd/internal/services"
)

// MockCatalog is a test double for [services.Catalog]
type MockCatalog struct {
	Pages     map[int]*services.MoviePage
	PageErr   error
	Latest    []services.Movie
	LatestErr error
}

func (m *MockCatalog) MoviesPage(ctx context.Context, page int, minRating float64) (*services.MoviePage, error) {
	if m.PageErr != nil {
		return nil, m.PageErr
	}
	if p, ok := m.Pages[page]; ok {
		return p, nil
	}
	return &services.MoviePage{}, nil
}

func (m *MockCatalog) LatestMovies(ctx context.Context, limit int, minRating float64) ([]services.Movie, error) {
	if m.LatestErr != nil {
		return nil, m.LatestErr
	}
	return m.Latest, nil
}

func (m *MockCatalog) Name() string { return "mock-catalog" }

// MockDestination is a test double for [services.Destination]
type MockDestination struct {
	Holdings  []services.DebridTorrent
	AddErr    error
	SelectErr error
	AddedURIs []string
}

func (m *MockDestination) AddMagnet(ctx context.Context, magnet string) (string, error) {
	if m.AddErr != nil {
		return "", m.AddErr
	}
	m.AddedURIs = append(m.AddedURIs, magnet)
	return "mock-id", nil
}

func (m *MockDestination) SelectFiles(ctx context.Context, id string) error {
	return m.SelectErr
}

func (m *MockDestination) Torrents(ctx context.Context, limit int) ([]services.DebridTorrent, error) {
	return m.Holdings, nil
}

func (m *MockDestination) Name() string { return "mock-destination" }

// MockFeed is a test double for [services.Feed]
type MockFeed struct {
	Items []services.Episode
	Err   error
}

func (m *MockFeed) Episodes(ctx context.Context) ([]services.Episode, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Items, nil
}

func (m *MockFeed) Name() string { return "mock-feed" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
