package reference

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AusClimateService/gwls/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = `warming_level_20:
  - {model: ACCESS-ESM1-5, ensemble: r1i1p1f1, exp: ssp585, start_year: 2032, end_year: 2051}
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func testGitHubSource(baseURL string) *GitHubSource {
	return &GitHubSource{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     testLogger(),
		metrics:    testMetrics(),
	}
}

func TestDocumentPath(t *testing.T) {
	assert.Equal(t,
		"warming_levels/cmip5_all_ens/cmip5_warming_levels_all_ens_1850_1900.yml",
		DocumentPath("cmip5"))
	assert.Equal(t,
		"warming_levels/cmip6_all_ens/cmip6_warming_levels_all_ens_1850_1900.yml",
		DocumentPath("cmip6"))
}

func TestGitHubSource_Fetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/warming_levels/cmip6_all_ens/cmip6_warming_levels_all_ens_1850_1900.yml", r.URL.Path)
		_, _ = w.Write([]byte(testDocument))
	}))
	defer srv.Close()

	s := testGitHubSource(srv.URL)
	text, err := s.Fetch(context.Background(), "cmip6")

	require.NoError(t, err)
	assert.Equal(t, testDocument, text)
}

func TestGitHubSource_Fetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("404: Not Found"))
	}))
	defer srv.Close()

	s := testGitHubSource(srv.URL)
	_, err := s.Fetch(context.Background(), "cmip5")

	require.Error(t, err)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Contains(t, se.URL, "cmip5_all_ens")
	assert.Contains(t, err.Error(), "404")
}

func TestGitHubSource_Fetch_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	s := testGitHubSource(srv.URL)
	_, err := s.Fetch(context.Background(), "cmip6")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reference request")
}

func TestGitHubSource_Fetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := &GitHubSource{
		baseURL:    srv.URL,
		httpClient: &http.Client{Timeout: 50 * time.Millisecond},
		logger:     testLogger(),
		metrics:    testMetrics(),
	}

	_, err := s.Fetch(context.Background(), "cmip6")
	require.Error(t, err)
}

func TestNewGitHubSource_DefaultBaseURL(t *testing.T) {
	s := NewGitHubSource("", 30*time.Second, testLogger(), testMetrics())
	assert.Equal(t, DefaultBaseURL, s.baseURL)

	s = NewGitHubSource("http://mirror.internal", 30*time.Second, testLogger(), testMetrics())
	assert.Equal(t, "http://mirror.internal", s.baseURL)
}
