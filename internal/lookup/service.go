package lookup

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/AusClimateService/gwls/internal/domain"
	"github.com/AusClimateService/gwls/internal/observability"
)

// Source produces the raw reference document text for a CMIP phase.
// Implemented by the reference adapters.
type Source interface {
	Fetch(ctx context.Context, phase string) (string, error)
}

// Metric label values for lookup operations and outcomes.
const (
	opResolve = "resolve"
	opTable   = "table"

	outcomeSuccess           = "success"
	outcomeInvalidArgument   = "invalid_argument"
	outcomeUnknownModel      = "unknown_model"
	outcomeNotCalculated     = "not_calculated"
	outcomeAmbiguous         = "ambiguous_entry"
	outcomeNotReached        = "not_reached"
	outcomeParseError        = "parse_error"
	outcomeSourceUnavailable = "source_unavailable"
)

// Service resolves warming-level queries against reference documents
// produced by a Source. It holds no state of its own: every call fetches
// the document it needs, possibly through a cache, and parses it fresh.
type Service struct {
	source  Source
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewService creates a lookup service over the given document source.
func NewService(source Source, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		source:  source,
		logger:  logger,
		metrics: metrics,
	}
}

// ResolveYearRange resolves the 20-year window during which the queried
// simulation first crosses the warming level. The query is validated
// before the reference document is fetched.
func (s *Service) ResolveYearRange(ctx context.Context, q domain.Query) (domain.YearRange, error) {
	start := time.Now()

	q, err := q.Normalize()
	if err != nil {
		s.metrics.Lookups.WithLabelValues(opResolve, outcomeFor(err)).Inc()
		return domain.YearRange{}, err
	}

	doc, err := s.document(ctx, q.Phase, opResolve)
	if err != nil {
		return domain.YearRange{}, err
	}

	window, err := domain.ResolveYearRange(doc, q)
	if err != nil {
		s.metrics.Lookups.WithLabelValues(opResolve, outcomeFor(err)).Inc()
		return domain.YearRange{}, err
	}

	s.metrics.Lookups.WithLabelValues(opResolve, outcomeSuccess).Inc()
	s.metrics.LookupDuration.WithLabelValues(opResolve).Observe(time.Since(start).Seconds())
	s.logger.Debug("year range resolved",
		"phase", q.Phase,
		"model", q.Model,
		"ensemble", q.Ensemble,
		"pathway", q.Pathway,
		"gwl", q.Level,
		"start_year", window.Start,
		"end_year", window.End,
	)
	return window, nil
}

// LookupTable builds the flat warming-level table for a phase.
func (s *Service) LookupTable(ctx context.Context, phase string) (domain.Table, error) {
	start := time.Now()

	phase = strings.ToLower(strings.TrimSpace(phase))
	if !domain.ValidPhase(phase) {
		err := &domain.InvalidArgumentError{Field: "cmip", Value: phase, Allowed: domain.Phases}
		s.metrics.Lookups.WithLabelValues(opTable, outcomeInvalidArgument).Inc()
		return domain.Table{}, err
	}

	doc, err := s.document(ctx, phase, opTable)
	if err != nil {
		return domain.Table{}, err
	}

	table := domain.BuildTable(doc)
	s.metrics.Lookups.WithLabelValues(opTable, outcomeSuccess).Inc()
	s.metrics.LookupDuration.WithLabelValues(opTable).Observe(time.Since(start).Seconds())
	s.logger.Debug("lookup table built", "phase", phase, "rows", len(table.Rows))
	return table, nil
}

// document fetches and parses one phase's reference document, recording
// the failure outcome under the calling operation's label.
func (s *Service) document(ctx context.Context, phase, op string) (*domain.Document, error) {
	text, err := s.source.Fetch(ctx, phase)
	if err != nil {
		s.metrics.Lookups.WithLabelValues(op, outcomeSourceUnavailable).Inc()
		return nil, &SourceError{Phase: phase, Err: err}
	}

	doc, err := domain.ParseDocument(text, phase)
	if err != nil {
		s.metrics.Lookups.WithLabelValues(op, outcomeParseError).Inc()
		return nil, err
	}
	return doc, nil
}

// outcomeFor maps a lookup failure to its metric label.
func outcomeFor(err error) string {
	switch {
	case domain.IsInvalidArgument(err):
		return outcomeInvalidArgument
	case domain.IsUnknownModel(err):
		return outcomeUnknownModel
	case domain.IsNotCalculated(err):
		return outcomeNotCalculated
	case domain.IsAmbiguousEntry(err):
		return outcomeAmbiguous
	case domain.IsThresholdNotReached(err):
		return outcomeNotReached
	case domain.IsParseFailure(err):
		return outcomeParseError
	default:
		return outcomeSourceUnavailable
	}
}
