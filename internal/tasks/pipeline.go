package tasks

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/duskren/ytrd/internal/magnet"
	"github.com/duskren/ytrd/internal/services"
)

// submitAttempts bounds both the addMagnet and the selectFiles retry loops.
const submitAttempts = 3

// submit runs one content hash through the pipeline: dedup check, magnet
// construction, submission, file selection. The hash of an accepted item
// is recorded in the index so the same run never re-submits it.
func (e *SyncEngine) submit(ctx context.Context, hash, displayName string) Outcome {
	hash = strings.ToLower(hash)
	if hash == "" || e.index.Contains(hash) {
		return OutcomeDuplicate
	}

	return e.submitMagnet(ctx, magnet.Build(hash, displayName), hash, displayName)
}

// submitMagnet submits a ready-made magnet URI. The feed path uses it
// directly since feed items already carry a full magnet link.
func (e *SyncEngine) submitMagnet(ctx context.Context, uri, hash, displayName string) Outcome {
	id, err := e.addWithRetry(ctx, uri)
	if err != nil {
		e.logger.Error("failed to add magnet", "item", displayName, "err", err)
		return OutcomeFailed
	}

	// The destination needs a moment to register the item before its
	// files are addressable.
	if err := e.pacer.Settle(ctx); err != nil {
		return OutcomeFailed
	}

	if err := e.selectWithRetry(ctx, id); err != nil {
		// The item now exists at the destination without selected files.
		// This partial state is surfaced in the counters, not repaired.
		e.logger.Error("added but failed to select files", "item", displayName, "id", id, "err", err)
		return OutcomeFailed
	}

	e.index.Record(hash)
	return OutcomeAdded
}

// addWithRetry submits the magnet with bounded retry. Only rate limiting
// is retried, with a linearly growing wait; any other failure aborts
// immediately.
func (e *SyncEngine) addWithRetry(ctx context.Context, uri string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= submitAttempts; attempt++ {
		if err := e.pacer.Pace(ctx); err != nil {
			return "", err
		}

		id, err := e.debrid.AddMagnet(ctx, uri)
		if err == nil {
			return id, nil
		}
		lastErr = err

		if !services.IsStatus(err, http.StatusTooManyRequests) {
			return "", err
		}

		if attempt < submitAttempts {
			e.logger.Warn("rate limited, backing off", "attempt", attempt)
			if err := e.pacer.Backoff(ctx, attempt); err != nil {
				return "", err
			}
		}
	}

	return "", lastErr
}

// selectWithRetry marks all files for download with bounded retry. A 404
// (item not yet visible) and transport errors are retried after a fixed
// delay; any other HTTP failure aborts immediately.
func (e *SyncEngine) selectWithRetry(ctx context.Context, id string) error {
	var lastErr error

	for attempt := 1; attempt <= submitAttempts; attempt++ {
		err := e.debrid.SelectFiles(ctx, id)
		if err == nil {
			return nil
		}
		lastErr = err

		var se *services.StatusError
		if errors.As(err, &se) && se.Code != http.StatusNotFound {
			return err
		}

		if attempt < submitAttempts {
			if err := e.pacer.RetryDelay(ctx); err != nil {
				return err
			}
		}
	}

	return lastErr
}
