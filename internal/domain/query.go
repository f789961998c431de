package domain

import (
	"slices"
	"strconv"
	"strings"
)

// Supported CMIP phases.
const (
	PhaseCMIP5 = "cmip5"
	PhaseCMIP6 = "cmip6"
)

var (
	// Phases lists the CMIP phases with published reference documents.
	Phases = []string{PhaseCMIP5, PhaseCMIP6}

	// Pathways lists the supported emissions pathways across both phases:
	// RCPs for CMIP5, SSPs for CMIP6.
	Pathways = []string{"rcp26", "rcp45", "rcp85", "ssp126", "ssp245", "ssp370", "ssp585"}

	// Levels lists the warming levels (°C above the 1850-1900 baseline)
	// published in the reference documents.
	Levels = []float64{1.0, 1.2, 1.5, 2.0, 3.0, 4.0}
)

// Query identifies one simulation and warming level to resolve.
type Query struct {
	Phase    string  `json:"phase"`
	Model    string  `json:"model"`
	Ensemble string  `json:"ensemble"`
	Pathway  string  `json:"pathway"`
	Level    float64 `json:"gwl"`
}

// Normalize validates the query and returns a canonical copy: phase and
// pathway trimmed and lowercased, model and ensemble trimmed but otherwise
// untouched (upstream spellings are case-sensitive). The first violation
// returns an InvalidArgumentError. Normalize never consults a reference
// document, so invalid queries are rejected before any fetch.
func (q Query) Normalize() (Query, error) {
	q.Phase = strings.ToLower(strings.TrimSpace(q.Phase))
	if !slices.Contains(Phases, q.Phase) {
		return Query{}, &InvalidArgumentError{Field: "cmip", Value: q.Phase, Allowed: Phases}
	}

	q.Pathway = strings.ToLower(strings.TrimSpace(q.Pathway))
	if !slices.Contains(Pathways, q.Pathway) {
		return Query{}, &InvalidArgumentError{Field: "pathway", Value: q.Pathway, Allowed: Pathways}
	}

	// Exact membership: the query either names one of the published levels
	// or it is invalid. Tolerance would turn typos into wrong buckets.
	if !slices.Contains(Levels, q.Level) {
		return Query{}, &InvalidArgumentError{Field: "gwl", Value: formatLevel(q.Level), Allowed: LevelStrings()}
	}

	q.Model = strings.TrimSpace(q.Model)
	q.Ensemble = strings.TrimSpace(q.Ensemble)
	return q, nil
}

// ValidPhase reports whether the (case-insensitive) phase name is supported.
func ValidPhase(phase string) bool {
	return slices.Contains(Phases, strings.ToLower(strings.TrimSpace(phase)))
}

// formatLevel renders a warming level for messages and labels: published
// levels print with one decimal ("2.0"), anything else in full ("2.25").
func formatLevel(level float64) string {
	if slices.Contains(Levels, level) {
		return strconv.FormatFloat(level, 'f', 1, 64)
	}
	return strconv.FormatFloat(level, 'g', -1, 64)
}

// LevelStrings renders the published warming levels the way formatLevel
// does, for error messages and argument lists.
func LevelStrings() []string {
	out := make([]string, len(Levels))
	for i, l := range Levels {
		out[i] = strconv.FormatFloat(l, 'f', 1, 64)
	}
	return out
}
