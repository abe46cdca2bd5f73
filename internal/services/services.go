// package services defines interfaces for the HTTP collaborators
//
// YTS catalog, ShowRSS feed, Real-Debrid
package services

import (
	"context"
)

// Catalog defines the paginated upstream movie catalog.
type Catalog interface {
	// MoviesPage retrieves one page of the catalog along with the total
	// page count derived from the server's reported movie count. A page
	// with no movies and a nil error means the catalog is genuinely empty
	// at that offset; fetch failures are returned as errors.
	MoviesPage(ctx context.Context, page int, minRating float64) (*MoviePage, error)

	// LatestMovies retrieves the most recently added titles without paging.
	LatestMovies(ctx context.Context, limit int, minRating float64) ([]Movie, error)

	// Name returns the name of the service (e.g., "YTS")
	Name() string
}

// Destination defines the download-acceleration service that accepts
// magnet submissions.
type Destination interface {
	// AddMagnet submits a magnet URI and returns the service-assigned ID.
	AddMagnet(ctx context.Context, magnet string) (string, error)

	// SelectFiles marks all files of a submitted item for download.
	SelectFiles(ctx context.Context, id string) error

	// Torrents lists items currently held by the service, up to limit.
	Torrents(ctx context.Context, limit int) ([]DebridTorrent, error)

	// Name returns the name of the service (e.g., "Real-Debrid")
	Name() string
}

// Feed defines the bounded episode RSS feed.
type Feed interface {
	// Episodes retrieves every entry in the feed (~100 most recent).
	Episodes(ctx context.Context) ([]Episode, error)

	// Name returns the name of the service (e.g., "ShowRSS")
	Name() string
}

// Movie represents one catalog title with its quality variants
type Movie struct {
	Title    string    `json:"title"`
	Year     int       `json:"year"`
	Rating   float64   `json:"rating"`
	Torrents []Torrent `json:"torrents"`
}

// Torrent represents a specific quality/size encoding of a movie
type Torrent struct {
	Quality string `json:"quality"`
	Hash    string `json:"hash"`
	Size    string `json:"size"`
}

// MoviePage represents one page of the catalog plus pagination totals
type MoviePage struct {
	Movies     []Movie
	MovieCount int // total titles reported by the server
	PageCount  int // ceil(MovieCount / effective page size)
}

// Episode represents one RSS feed entry with its extracted info hash
type Episode struct {
	Title   string
	Magnet  string
	Hash    string
	PubDate string
}

// DebridTorrent represents an item already held at the destination
type DebridTorrent struct {
	ID       string `json:"id"`
	Hash     string `json:"hash"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
}
