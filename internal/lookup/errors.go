package lookup

import (
	"errors"
	"fmt"
)

// SourceError reports that a phase's reference document could not be
// obtained at all, as opposed to fetched but unusable. The cause is one
// of the reference adapter errors, or a bare transport error when no
// fallback is configured.
type SourceError struct {
	Phase string
	Err   error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("fetch %s reference document: %v", e.Phase, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// IsSourceUnavailable reports whether err stems from a failed document fetch.
func IsSourceUnavailable(err error) bool {
	var se *SourceError
	return errors.As(err, &se)
}
