package reference

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/AusClimateService/gwls/internal/observability"
)

// GitHubSource fetches reference documents from the raw-content mirror of
// the upstream GitHub repository.
type GitHubSource struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewGitHubSource creates a source reading from baseURL. An empty baseURL
// means the upstream raw-content host.
func NewGitHubSource(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *GitHubSource {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GitHubSource{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// Fetch returns the raw document text for a phase.
func (s *GitHubSource) Fetch(ctx context.Context, phase string) (string, error) {
	fullURL := fmt.Sprintf("%s/%s", s.baseURL, DocumentPath(phase))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.metrics.SourceFetches.WithLabelValues("github", "error").Inc()
		return "", fmt.Errorf("reference request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		s.metrics.SourceFetches.WithLabelValues("github", "error").Inc()
		return "", &StatusError{URL: fullURL, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.metrics.SourceFetches.WithLabelValues("github", "error").Inc()
		return "", fmt.Errorf("read response: %w", err)
	}

	s.metrics.SourceFetches.WithLabelValues("github", "success").Inc()
	s.metrics.SourceFetchDuration.WithLabelValues("github").Observe(time.Since(start).Seconds())
	s.logger.Debug("reference document fetched",
		"phase", phase,
		"url", fullURL,
		"bytes", len(body),
	)
	return string(body), nil
}
