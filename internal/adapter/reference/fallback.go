package reference

import (
	"context"
	"log/slog"
)

// Fallback tries the remote source first and the local checkout second.
// It answers from the first source that succeeds; when both fail it reports
// an UnavailableError carrying both causes. Falling back changes where the
// same document comes from, never what is answered.
type Fallback struct {
	remote Source
	local  Source
	logger *slog.Logger
}

// NewFallback creates a fallback chain over a remote and a local source.
func NewFallback(remote, local Source, logger *slog.Logger) *Fallback {
	return &Fallback{remote: remote, local: local, logger: logger}
}

// Fetch returns the raw document text for a phase.
func (f *Fallback) Fetch(ctx context.Context, phase string) (string, error) {
	text, remoteErr := f.remote.Fetch(ctx, phase)
	if remoteErr == nil {
		return text, nil
	}

	f.logger.Warn("remote reference source failed, trying local checkout",
		"phase", phase,
		"error", remoteErr,
	)

	text, localErr := f.local.Fetch(ctx, phase)
	if localErr == nil {
		return text, nil
	}

	return "", &UnavailableError{Phase: phase, Remote: remoteErr, Local: localErr}
}
