// Package refresh keeps reference documents warm by rebuilding lookup
// tables on a fixed interval. When the document source sits behind a
// cache each rebuild repopulates it, so interactive lookups rarely pay
// for a cold fetch.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/AusClimateService/gwls/internal/domain"
	"github.com/AusClimateService/gwls/internal/observability"
)

// TableBuilder builds the full lookup table for one CMIP phase.
type TableBuilder interface {
	LookupTable(ctx context.Context, phase string) (domain.Table, error)
}

// Refresher rebuilds lookup tables for the configured phases until its
// context is cancelled.
type Refresher struct {
	builder  TableBuilder
	phases   []string
	interval time.Duration
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool
}

// New creates a Refresher covering the given phases.
func New(builder TableBuilder, phases []string, interval time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Refresher {
	return &Refresher{
		builder:  builder,
		phases:   phases,
		interval: interval,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness returns nil once at least one full refresh cycle has
// completed, or an error describing why the service is not yet ready.
func (r *Refresher) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no refresh cycle has completed yet")
	}
	return nil
}

// Run executes refresh cycles until the context is cancelled.
func (r *Refresher) Run(ctx context.Context) error {
	r.logger.Info("refresher started", "phases", r.phases, "interval", r.interval)
	r.metrics.RefreshRunning.Set(1)
	defer r.metrics.RefreshRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	// Keeps retries prompt after a transient source outage without
	// hammering the upstream host.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("refresher stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if err := r.refreshAll(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			r.logger.Error("refresh cycle failed", "error", err)
			r.metrics.RefreshCycles.WithLabelValues("error").Inc()
			if !r.backoffOrStop(ctx, &backoff, maxBackoff) {
				return nil
			}
			continue
		}

		r.metrics.RefreshCycles.WithLabelValues("success").Inc()
		r.ready.Store(true)
		backoff = 200 * time.Millisecond

		if !sleepWithContext(ctx, r.interval) {
			r.logger.Info("refresher stopping", "reason", ctx.Err())
			return nil
		}
	}
}

// refreshAll rebuilds the table for every configured phase. A failure on
// any phase fails the whole cycle so the backoff path retries all of them.
func (r *Refresher) refreshAll(ctx context.Context) error {
	for _, phase := range r.phases {
		start := time.Now()
		table, err := r.builder.LookupTable(ctx, phase)
		if err != nil {
			return fmt.Errorf("refresh %s: %w", phase, err)
		}
		r.logger.Info("lookup table refreshed",
			"phase", phase,
			"rows", len(table.Rows),
			"duration", time.Since(start),
		)
	}
	return nil
}

// backoffOrStop checks for context cancellation, sleeps with the current
// backoff, and advances the backoff. Returns false if the refresher should stop.
func (r *Refresher) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
