package domain

import (
	"errors"
	"fmt"
	"strings"
)

// InvalidArgumentError reports a query field outside its supported set.
type InvalidArgumentError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %q: must be one of %s", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

// ParseError reports a reference document that failed to parse after
// tidying. It is fatal: the upstream format has changed, and every lookup
// against the document would be suspect.
type ParseError struct {
	Phase string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s reference document: %v", e.Phase, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingBucketError reports a validated warming level whose bucket is
// absent from the parsed document. Like ParseError it signals upstream
// format drift, not a bad query.
type MissingBucketError struct {
	Phase  string
	Bucket string
}

func (e *MissingBucketError) Error() string {
	return fmt.Sprintf("%s reference document has no %s bucket", e.Phase, e.Bucket)
}

// UnknownModelError reports a model absent from the consulted bucket.
type UnknownModelError struct {
	Phase string
	Model string
	Known []string // distinct model names in the bucket, sorted
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("no %s data for model %q: known models are %s", e.Phase, e.Model, strings.Join(e.Known, ", "))
}

// NotCalculatedError reports a (model, ensemble, pathway) tuple with no
// entry in the warming level's bucket: the model is known, but the upstream
// dataset never computed this combination.
type NotCalculatedError struct {
	Query Query
}

func (e *NotCalculatedError) Error() string {
	return fmt.Sprintf("no %s°C warming level data for %s, %s, %s",
		formatLevel(e.Query.Level), e.Query.Model, e.Query.Ensemble, e.Query.Pathway)
}

// AmbiguousEntryError reports several bucket entries for one (model,
// ensemble, pathway) tuple. The tuple is supposed to be unique per bucket,
// so this is an upstream data defect; picking one entry would hide it.
type AmbiguousEntryError struct {
	Query Query
	Count int
}

func (e *AmbiguousEntryError) Error() string {
	return fmt.Sprintf("%d entries for %s, %s, %s at %s°C: expected exactly one",
		e.Count, e.Query.Model, e.Query.Ensemble, e.Query.Pathway, formatLevel(e.Query.Level))
}

// ThresholdNotReachedError reports a simulation that never crosses the
// queried warming level within its run.
type ThresholdNotReachedError struct {
	Query Query
}

func (e *ThresholdNotReachedError) Error() string {
	return fmt.Sprintf("%s, %s, %s does not reach a global warming level of %s°C",
		e.Query.Model, e.Query.Ensemble, e.Query.Pathway, formatLevel(e.Query.Level))
}

// IsInvalidArgument reports whether err is a query validation failure.
func IsInvalidArgument(err error) bool {
	var e *InvalidArgumentError
	return errors.As(err, &e)
}

// IsParseFailure reports whether err means the reference document could not
// be understood, covering both ParseError and MissingBucketError.
func IsParseFailure(err error) bool {
	var pe *ParseError
	var mbe *MissingBucketError
	return errors.As(err, &pe) || errors.As(err, &mbe)
}

// IsUnknownModel reports whether err is an unknown-model lookup failure.
func IsUnknownModel(err error) bool {
	var e *UnknownModelError
	return errors.As(err, &e)
}

// IsNotCalculated reports whether err is a missing-combination lookup failure.
func IsNotCalculated(err error) bool {
	var e *NotCalculatedError
	return errors.As(err, &e)
}

// IsAmbiguousEntry reports whether err is a duplicate-entry data defect.
func IsAmbiguousEntry(err error) bool {
	var e *AmbiguousEntryError
	return errors.As(err, &e)
}

// IsThresholdNotReached reports whether err means the simulation never
// crosses the queried level.
func IsThresholdNotReached(err error) bool {
	var e *ThresholdNotReachedError
	return errors.As(err, &e)
}
