package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/duskren/ytrd/internal/checkpoint"
	"github.com/duskren/ytrd/internal/services"
	"github.com/duskren/ytrd/internal/shared"
	"github.com/duskren/ytrd/internal/tasks"
	tu "github.com/duskren/ytrd/internal/testing"
	"github.com/urfave/cli/v3"
)

// newTestRunner builds a runner with zero-delay pacing, a temp checkpoint
// dir, and a buffer for its output.
func newTestRunner(t *testing.T, catalog services.Catalog, debrid services.Destination, feed services.Feed) (*Runner, *bytes.Buffer) {
	t.Helper()
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Catalog:     catalog,
		Debrid:      debrid,
		Feed:        feed,
		Checkpoints: checkpoint.NewStore(t.TempDir()),
		Pacer:       tasks.NopPacer{},
		Logger:      shared.NewLogger(&bytes.Buffer{}),
		Output:      output,
	})
	return runner, output
}

// runCLI dispatches args through the registered command tree, the same
// path main takes.
func runCLI(runner *Runner, args ...string) error {
	app := &cli.Command{Name: "ytrd", Commands: runner.register()}
	return app.Run(context.Background(), append([]string{"ytrd"}, args...))
}

func catalogPage(hash string) *services.MoviePage {
	return &services.MoviePage{
		Movies: []services.Movie{{
			Title:    "Example Movie",
			Year:     2024,
			Torrents: []services.Torrent{{Quality: "1080p", Hash: hash}},
		}},
		MovieCount: 1,
		PageCount:  1,
	}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			catalog := &tu.MockCatalog{}
			debrid := &tu.MockDestination{}
			feed := &tu.MockFeed{}

			runner := NewRunner(RunnerOpts{
				Config:  config,
				Logger:  logger,
				Output:  output,
				Catalog: catalog,
				Debrid:  debrid,
				Feed:    feed,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.catalog != catalog {
				t.Error("expected catalog to be set")
			}
			if runner.debrid != debrid {
				t.Error("expected debrid to be set")
			}
			if runner.feed != feed {
				t.Error("expected feed to be set")
			}
			if runner.engine == nil {
				t.Error("expected engine to be constructed")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil checkpoints uses the configured directory", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.checkpoints == nil {
				t.Error("expected a checkpoint store to be constructed")
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes formatted text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})
}

func TestSyncCommands(t *testing.T) {
	t.Run("bulk sync over a one-page catalog", func(t *testing.T) {
		catalog := &tu.MockCatalog{Pages: map[int]*services.MoviePage{1: catalogPage("abc123")}}
		debrid := &tu.MockDestination{}
		runner, output := newTestRunner(t, catalog, debrid, nil)

		if err := runCLI(runner, "sync", "bulk"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(debrid.AddedURIs) != 1 {
			t.Fatalf("expected one submission, got %d", len(debrid.AddedURIs))
		}
		if !strings.HasPrefix(debrid.AddedURIs[0], "magnet:?xt=urn:btih:abc123") {
			t.Errorf("unexpected magnet: %s", debrid.AddedURIs[0])
		}

		if !strings.Contains(output.String(), "Catalog complete.") {
			t.Errorf("expected completion summary:\n%s", output.String())
		}
		if !runner.checkpoints.Complete() {
			t.Error("expected completion marker after a full walk")
		}
	})

	t.Run("bulk sync resumes from the checkpoint with default config", func(t *testing.T) {
		catalog := &tu.MockCatalog{Pages: map[int]*services.MoviePage{
			1: {
				Movies: []services.Movie{{
					Title:    "Seen Before",
					Year:     2023,
					Torrents: []services.Torrent{{Quality: "1080p", Hash: "aaa111"}},
				}},
				MovieCount: 2,
				PageCount:  2,
			},
			2: {
				Movies: []services.Movie{{
					Title:    "Not Yet Seen",
					Year:     2024,
					Torrents: []services.Torrent{{Quality: "1080p", Hash: "bbb222"}},
				}},
				MovieCount: 2,
				PageCount:  2,
			},
		}}
		debrid := &tu.MockDestination{}
		runner, _ := newTestRunner(t, catalog, debrid, nil)

		if err := runner.checkpoints.Save(checkpoint.BatchState{
			LastCompletedPage: 1,
			LastAttemptedPage: 1,
			TotalPages:        2,
		}); err != nil {
			t.Fatalf("failed to seed checkpoint: %v", err)
		}

		if err := runCLI(runner, "sync", "bulk"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(debrid.AddedURIs) != 1 {
			t.Fatalf("expected only page 2's item, got %d submissions", len(debrid.AddedURIs))
		}
		if !strings.Contains(debrid.AddedURIs[0], "urn:btih:bbb222") {
			t.Errorf("expected page 2's magnet, got %s", debrid.AddedURIs[0])
		}
	})

	t.Run("bulk sync surfaces catalog failures", func(t *testing.T) {
		catalog := &tu.MockCatalog{PageErr: errors.New("unreachable")}
		runner, _ := newTestRunner(t, catalog, &tu.MockDestination{}, nil)

		if err := runCLI(runner, "sync", "bulk"); err == nil {
			t.Error("expected error when the catalog is unreachable")
		}
	})

	t.Run("movies sync polls the latest entries", func(t *testing.T) {
		catalog := &tu.MockCatalog{Latest: []services.Movie{{
			Title:    "Fresh",
			Year:     2026,
			Torrents: []services.Torrent{{Quality: "2160p", Hash: "def456"}},
		}}}
		debrid := &tu.MockDestination{}
		runner, output := newTestRunner(t, catalog, debrid, nil)

		if err := runCLI(runner, "sync", "movies", "--limit", "5"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(debrid.AddedURIs) != 1 {
			t.Fatalf("expected one submission, got %d", len(debrid.AddedURIs))
		}
		if !strings.Contains(output.String(), "added   1") {
			t.Errorf("expected summary with one addition:\n%s", output.String())
		}
	})

	t.Run("shows sync submits feed magnets", func(t *testing.T) {
		feed := &tu.MockFeed{Items: []services.Episode{{
			Title:  "Show 1x01",
			Magnet: "magnet:?xt=urn:btih:feed01&dn=show",
			Hash:   "feed01",
		}}}
		debrid := &tu.MockDestination{}
		runner, _ := newTestRunner(t, &tu.MockCatalog{}, debrid, feed)

		if err := runCLI(runner, "sync", "shows"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(debrid.AddedURIs) != 1 || debrid.AddedURIs[0] != feed.Items[0].Magnet {
			t.Errorf("expected the feed magnet verbatim, got %v", debrid.AddedURIs)
		}
	})

	t.Run("shows sync honors the feed flag", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/xml")
			w.Write([]byte(`<?xml version="1.0"?><rss><channel><item>` +
				`<title>Show 2x03</title>` +
				`<link>magnet:?xt=urn:btih:CAFE01&amp;dn=show</link>` +
				`</item></channel></rss>`))
		}))
		defer server.Close()

		debrid := &tu.MockDestination{}
		runner, _ := newTestRunner(t, &tu.MockCatalog{}, debrid, nil)

		if err := runCLI(runner, "sync", "shows", "--feed", server.URL); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(debrid.AddedURIs) != 1 || !strings.Contains(debrid.AddedURIs[0], "urn:btih:CAFE01") {
			t.Errorf("expected the feed item to be submitted, got %v", debrid.AddedURIs)
		}
	})

	t.Run("missing credentials fail fast", func(t *testing.T) {
		runner, _ := newTestRunner(t, &tu.MockCatalog{}, nil, nil)

		err := runCLI(runner, "sync", "bulk")

		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})
}

func TestStatusCommand(t *testing.T) {
	t.Run("without a checkpoint", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockCatalog{}, &tu.MockDestination{}, nil)

		if err := runCLI(runner, "status"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "No checkpoint found") {
			t.Errorf("unexpected status output:\n%s", output.String())
		}
	})

	t.Run("with a saved checkpoint", func(t *testing.T) {
		runner, output := newTestRunner(t, &tu.MockCatalog{}, &tu.MockDestination{}, nil)
		if err := runner.checkpoints.Save(checkpoint.BatchState{
			LastCompletedPage: 40,
			LastAttemptedPage: 40,
			TotalPages:        1200,
			Added:             55,
		}); err != nil {
			t.Fatalf("failed to seed checkpoint: %v", err)
		}

		if err := runCLI(runner, "status"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Last completed page: 40 of 1200") {
			t.Errorf("unexpected status output:\n%s", output.String())
		}
	})
}

func TestSetupCommand(t *testing.T) {
	t.Run("creates the config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")
		runner, output := newTestRunner(t, &tu.MockCatalog{}, &tu.MockDestination{}, nil)

		if err := runCLI(runner, "setup", "--config", configPath); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, configPath)
		if !strings.Contains(tu.MustReadFile(t, configPath), "[debrid]") {
			t.Error("expected the config template to contain a debrid section")
		}
		if !strings.Contains(output.String(), "Configuration ready") {
			t.Errorf("unexpected setup output:\n%s", output.String())
		}
	})

	t.Run("leaves an existing config in place", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")
		if err := os.WriteFile(configPath, []byte("# custom\n"), 0644); err != nil {
			t.Fatalf("failed to write existing config: %v", err)
		}

		runner, _ := newTestRunner(t, &tu.MockCatalog{}, &tu.MockDestination{}, nil)

		if err := runCLI(runner, "setup", "--config", configPath); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if tu.MustReadFile(t, configPath) != "# custom\n" {
			t.Error("expected existing config to be untouched")
		}
	})
}
