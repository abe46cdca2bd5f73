package tasks

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/duskren/ytrd/internal/shared"
)

// Pacer spaces out calls to the destination service. The sync loop is
// strictly sequential, so pacing is the only rate control: a minimum
// interval between submissions plus longer waits when the service pushes
// back. Injected so tests can run with zero delay.
type Pacer interface {
	// Pace blocks until the minimum inter-call interval has elapsed.
	Pace(ctx context.Context) error

	// Backoff blocks for attempt * backoff unit, used after a 429.
	Backoff(ctx context.Context, attempt int) error

	// Settle blocks for the short delay the destination needs to register
	// a freshly added item before its files can be selected.
	Settle(ctx context.Context) error

	// RetryDelay blocks for the fixed short delay between file-selection
	// retries.
	RetryDelay(ctx context.Context) error
}

const (
	defaultSubmitInterval = 2 * time.Second
	defaultBackoffUnit    = 10 * time.Second
	defaultSettleDelay    = 1 * time.Second
	defaultRetryDelay     = 2 * time.Second
)

type intervalPacer struct {
	limiter     *rate.Limiter
	backoffUnit time.Duration
	settleDelay time.Duration
	retryDelay  time.Duration
}

// NewPacer creates a Pacer from the pacing configuration. Zero values fall
// back to the defaults observed to keep Real-Debrid happy.
func NewPacer(cfg shared.PacingConfig) Pacer {
	interval := defaultSubmitInterval
	if cfg.SubmitInterval > 0 {
		interval = time.Duration(cfg.SubmitInterval) * time.Second
	}

	backoff := defaultBackoffUnit
	if cfg.BackoffUnit > 0 {
		backoff = time.Duration(cfg.BackoffUnit) * time.Second
	}

	settle := defaultSettleDelay
	if cfg.SettleDelay > 0 {
		settle = time.Duration(cfg.SettleDelay) * time.Second
	}

	return &intervalPacer{
		limiter:     rate.NewLimiter(rate.Every(interval), 1),
		backoffUnit: backoff,
		settleDelay: settle,
		retryDelay:  defaultRetryDelay,
	}
}

func (p *intervalPacer) Pace(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

func (p *intervalPacer) Backoff(ctx context.Context, attempt int) error {
	return sleep(ctx, time.Duration(attempt)*p.backoffUnit)
}

func (p *intervalPacer) Settle(ctx context.Context) error {
	return sleep(ctx, p.settleDelay)
}

func (p *intervalPacer) RetryDelay(ctx context.Context) error {
	return sleep(ctx, p.retryDelay)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NopPacer never waits. Test runs use it in place of real delays.
type NopPacer struct{}

func (NopPacer) Pace(context.Context) error         { return nil }
func (NopPacer) Backoff(context.Context, int) error { return nil }
func (NopPacer) Settle(context.Context) error       { return nil }
func (NopPacer) RetryDelay(context.Context) error   { return nil }
