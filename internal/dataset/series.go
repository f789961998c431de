// Package dataset provides a minimal annual/daily series container that
// satisfies the lookup package's Sliceable contract. Callers with richer
// dataset types (gridded archives, external stores) implement SelectRange
// themselves; Series exists so the time-slicing path has a concrete,
// testable implementation.
package dataset

import (
	"sort"
	"time"
)

// Point is a single timestamped value.
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// Series is an ordered sequence of points sharing one name.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// New builds a series from points in any order. The input slice is copied
// so the caller keeps ownership of its backing array.
func New(name string, points []Point) Series {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})
	return Series{Name: name, Points: sorted}
}

// SelectRange returns the points falling between start and end inclusive,
// compared at UTC calendar-date resolution. A point stamped anywhere on the
// end date is included. An empty result is a valid empty series.
func (s Series) SelectRange(start, end time.Time) Series {
	startDay := dateOf(start)
	endDay := dateOf(end)

	var kept []Point
	for _, p := range s.Points {
		day := dateOf(p.Time)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		kept = append(kept, p)
	}
	return Series{Name: s.Name, Points: kept}
}

// dateOf truncates a timestamp to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
