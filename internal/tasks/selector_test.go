package tasks

import (
	"testing"

	"github.com/duskren/ytrd/internal/services"
)

func TestSelectTorrents(t *testing.T) {
	movie := movieWith("Example", 2024,
		services.Torrent{Quality: "720p", Hash: "h720"},
		services.Torrent{Quality: "1080p", Hash: "h1080"},
		services.Torrent{Quality: "2160p", Hash: "h2160"},
	)

	t.Run("returns preference order", func(t *testing.T) {
		selected := SelectTorrents(movie, []string{"2160p", "1080p"})

		if len(selected) != 2 {
			t.Fatalf("expected 2 torrents, got %d", len(selected))
		}
		if selected[0].Hash != "h2160" || selected[1].Hash != "h1080" {
			t.Errorf("expected [h2160 h1080], got %+v", selected)
		}
	})

	t.Run("no matching quality yields empty", func(t *testing.T) {
		only720 := movieWith("Old", 1999, services.Torrent{Quality: "720p", Hash: "x"})

		if selected := SelectTorrents(only720, []string{"2160p", "1080p"}); len(selected) != 0 {
			t.Errorf("expected empty selection, got %+v", selected)
		}
	})

	t.Run("at most one torrent per label", func(t *testing.T) {
		dup := movieWith("Dup", 2020,
			services.Torrent{Quality: "1080p", Hash: "first"},
			services.Torrent{Quality: "1080p", Hash: "second"},
		)

		selected := SelectTorrents(dup, []string{"1080p"})
		if len(selected) != 1 || selected[0].Hash != "first" {
			t.Errorf("expected only the first 1080p torrent, got %+v", selected)
		}
	})

	t.Run("unmatched labels are skipped silently", func(t *testing.T) {
		selected := SelectTorrents(movie, []string{"4320p", "720p"})
		if len(selected) != 1 || selected[0].Hash != "h720" {
			t.Errorf("expected [h720], got %+v", selected)
		}
	})

	t.Run("no torrents yields empty", func(t *testing.T) {
		if selected := SelectTorrents(movieWith("Bare", 2021), []string{"1080p"}); len(selected) != 0 {
			t.Errorf("expected empty selection, got %+v", selected)
		}
	})
}
