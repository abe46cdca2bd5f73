package tasks

import (
	"github.com/duskren/ytrd/internal/services"
)

// SelectTorrents picks the torrents of a movie matching the preferred
// quality labels: for each label in preference order, the first torrent
// with that quality, at most one per label. Labels with no match are
// skipped. Pure and deterministic; the result order follows the
// preference list, not the movie's torrent order.
func SelectTorrents(movie services.Movie, preferred []string) []services.Torrent {
	var selected []services.Torrent

	for _, quality := range preferred {
		for _, torrent := range movie.Torrents {
			if torrent.Quality == quality {
				selected = append(selected, torrent)
				break
			}
		}
	}

	return selected
}
