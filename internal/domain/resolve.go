package domain

import (
	"fmt"
	"math"
	"strings"
)

// BucketName returns the document key for a warming level:
// 1.5 → "warming_level_15".
func BucketName(level float64) string {
	return fmt.Sprintf("warming_level_%d", LevelKey(level))
}

// LevelKey converts a warming level in °C to the integer used in bucket
// names (ten times the level). Rounded rather than truncated: 1.2*10 can
// evaluate just below 12 in floating point.
func LevelKey(level float64) int {
	return int(math.Round(level * 10))
}

// GWLLabel derives the short row label from a bucket name:
// "warming_level_20" → "gwl20".
func GWLLabel(bucketName string) string {
	return strings.Replace(bucketName, "warming_level_", "gwl", 1)
}

// ResolveYearRange finds the 20-year window during which one simulation
// first crosses a warming level, within an already parsed document.
//
// The query is normalized first, so direct callers get the same argument
// checking as the service layer. Resolution is pure and deterministic:
// the same document text and query always produce the same answer.
func ResolveYearRange(doc *Document, q Query) (YearRange, error) {
	q, err := q.Normalize()
	if err != nil {
		return YearRange{}, err
	}

	name := BucketName(q.Level)
	bucket, ok := doc.Bucket(name)
	if !ok {
		return YearRange{}, &MissingBucketError{Phase: doc.Phase, Bucket: name}
	}

	if !bucket.HasModel(q.Model) {
		return YearRange{}, &UnknownModelError{Phase: doc.Phase, Model: q.Model, Known: bucket.Models()}
	}

	matches := bucket.Filter(q.Model, q.Ensemble, q.Pathway)
	if len(matches) == 0 {
		return YearRange{}, &NotCalculatedError{Query: q}
	}
	if len(matches) > 1 {
		return YearRange{}, &AmbiguousEntryError{Query: q, Count: len(matches)}
	}

	window, reached := matches[0].Window()
	if !reached {
		return YearRange{}, &ThresholdNotReachedError{Query: q}
	}
	return window, nil
}

// BuildTable flattens every bucket of a parsed document into one table.
// Rows keep document order: bucket by bucket, records in bucket order.
// The same simulation legitimately appears once per bucket it reaches, so
// there is no cross-bucket deduplication.
func BuildTable(doc *Document) Table {
	table := Table{Phase: doc.Phase, GeneratedAt: clock.Now().UTC()}
	for _, bucket := range doc.Buckets {
		label := GWLLabel(bucket.Name)
		for _, r := range bucket.Records {
			table.Rows = append(table.Rows, TableRow{
				GWL:       label,
				Model:     r.Model,
				Ensemble:  r.Ensemble,
				Pathway:   r.Pathway,
				StartYear: r.StartYear,
				EndYear:   r.EndYear,
			})
		}
	}
	return table
}
