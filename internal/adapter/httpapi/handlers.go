package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AusClimateService/gwls/internal/domain"
	"github.com/AusClimateService/gwls/internal/lookup"
)

// yearsResponse reports a resolved crossing window. The date fields are the
// inclusive calendar bounds of the window, ready for dataset slicing.
type yearsResponse struct {
	Phase     string  `json:"cmip"`
	Model     string  `json:"model"`
	Ensemble  string  `json:"ensemble"`
	Pathway   string  `json:"pathway"`
	GWL       float64 `json:"gwl"`
	StartYear int     `json:"start_year"`
	EndYear   int     `json:"end_year"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
}

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	q, err := queryFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	// Normalized up front so the response echoes canonical spellings.
	q, err = q.Normalize()
	if err != nil {
		writeError(w, err)
		return
	}

	window, err := s.service.ResolveYearRange(r.Context(), q)
	if err != nil {
		s.logger.Debug("year range request failed", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, yearsResponse{
		Phase:     q.Phase,
		Model:     q.Model,
		Ensemble:  q.Ensemble,
		Pathway:   q.Pathway,
		GWL:       q.Level,
		StartYear: window.Start,
		EndYear:   window.End,
		StartDate: window.StartDate().Format("2006-01-02"),
		EndDate:   window.EndDate().Format("2006-01-02"),
	})
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	table, err := s.service.LookupTable(r.Context(), r.URL.Query().Get("cmip"))
	if err != nil {
		s.logger.Debug("table request failed", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, table)
}

// queryFromRequest reads the lookup parameters from the URL query string.
// Only the gwl number needs parsing here; everything else is validated by
// Query.Normalize.
func queryFromRequest(r *http.Request) (domain.Query, error) {
	params := r.URL.Query()

	raw := params.Get("gwl")
	level, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return domain.Query{}, &domain.InvalidArgumentError{Field: "gwl", Value: raw, Allowed: domain.LevelStrings()}
	}

	return domain.Query{
		Phase:    params.Get("cmip"),
		Model:    params.Get("model"),
		Ensemble: params.Get("ensemble"),
		Pathway:  params.Get("pathway"),
		Level:    level,
	}, nil
}

// writeError renders a lookup failure with the status its family maps to.
// Unknown-model failures carry the bucket's model list so callers can
// correct their spelling without a second round trip.
func writeError(w http.ResponseWriter, err error) {
	body := map[string]any{"error": err.Error()}

	var unknown *domain.UnknownModelError
	if errors.As(err, &unknown) {
		body["known_models"] = unknown.Known
	}

	writeJSON(w, statusFor(err), body)
}

// statusFor maps the lookup error families onto HTTP statuses. Bad queries
// are the caller's fault, absent data is 404, data defects upstream are
// distinguishable from our own failures.
func statusFor(err error) int {
	switch {
	case domain.IsInvalidArgument(err):
		return http.StatusBadRequest
	case domain.IsUnknownModel(err), domain.IsNotCalculated(err):
		return http.StatusNotFound
	case domain.IsThresholdNotReached(err):
		return http.StatusUnprocessableEntity
	case domain.IsAmbiguousEntry(err):
		return http.StatusConflict
	case domain.IsParseFailure(err):
		return http.StatusBadGateway
	case lookup.IsSourceUnavailable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
