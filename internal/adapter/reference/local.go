package reference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/AusClimateService/gwls/internal/observability"
)

// LocalSource reads reference documents from a local checkout of the
// upstream repository. It serves air-gapped deployments and acts as the
// fallback when the raw-content host is unreachable.
type LocalSource struct {
	dir     string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewLocalSource creates a source reading from a checkout rooted at dir.
func NewLocalSource(dir string, logger *slog.Logger, metrics *observability.Metrics) *LocalSource {
	return &LocalSource{dir: dir, logger: logger, metrics: metrics}
}

// Fetch returns the raw document text for a phase from the checkout.
// A missing checkout or document is a NotProvisionedError; any other read
// failure is an ordinary I/O error.
func (s *LocalSource) Fetch(_ context.Context, phase string) (string, error) {
	rel := DocumentPath(phase)
	path := filepath.Join(s.dir, filepath.FromSlash(rel))

	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		s.metrics.SourceFetches.WithLabelValues("local", "error").Inc()
		if errors.Is(err, os.ErrNotExist) {
			return "", &NotProvisionedError{Dir: s.dir, Path: rel}
		}
		return "", fmt.Errorf("read local document: %w", err)
	}

	s.metrics.SourceFetches.WithLabelValues("local", "success").Inc()
	s.metrics.SourceFetchDuration.WithLabelValues("local").Observe(time.Since(start).Seconds())
	s.logger.Debug("reference document read from local checkout",
		"phase", phase,
		"path", path,
		"bytes", len(data),
	)
	return string(data), nil
}
