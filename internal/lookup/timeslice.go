package lookup

import (
	"context"
	"time"

	"github.com/AusClimateService/gwls/internal/domain"
)

// Sliceable is a time-indexed dataset that can produce an inclusive
// sub-range of itself between two instants.
type Sliceable[T any] interface {
	SelectRange(start, end time.Time) T
}

// Timeslice resolves the query's crossing window and returns the dataset's
// slice from January 1 of the start year through December 31 of the end
// year, both inclusive. Resolution failures propagate unchanged, and the
// dataset is never consulted for a query that does not resolve.
func Timeslice[T Sliceable[T]](ctx context.Context, s *Service, dataset T, q domain.Query) (T, error) {
	window, err := s.ResolveYearRange(ctx, q)
	if err != nil {
		var zero T
		return zero, err
	}
	return dataset.SelectRange(window.StartDate(), window.EndDate()), nil
}
