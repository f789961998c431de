package reference

import (
	"errors"
	"fmt"
)

// NotProvisionedError reports a local checkout that was expected but is not
// there: the checkout directory or the phase document inside it is missing.
// It carries remediation guidance because provisioning is a deliberate setup
// step, unlike a transient read failure.
type NotProvisionedError struct {
	Dir  string
	Path string // repository-relative document path
}

func (e *NotProvisionedError) Error() string {
	return fmt.Sprintf("reference: no local copy of %s under %s (clone https://github.com/%s there to provision one)", e.Path, e.Dir, Repo)
}

// StatusError reports a non-200 response from the raw-content host.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string // leading bytes of the response body
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("reference: GET %s: status %d: %s", e.URL, e.StatusCode, e.Body)
}

// UnavailableError reports that no configured source could produce the
// reference document. The per-source causes stay reachable through
// errors.Is and errors.As.
type UnavailableError struct {
	Phase  string
	Remote error
	Local  error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("reference: %s document unavailable: remote: %v; local: %v", e.Phase, e.Remote, e.Local)
}

func (e *UnavailableError) Unwrap() []error {
	return []error{e.Remote, e.Local}
}

// IsNotProvisioned reports whether err means a local checkout is missing.
func IsNotProvisioned(err error) bool {
	var e *NotProvisionedError
	return errors.As(err, &e)
}

// IsUnavailable reports whether err means every configured source failed.
func IsUnavailable(err error) bool {
	var e *UnavailableError
	return errors.As(err, &e)
}
