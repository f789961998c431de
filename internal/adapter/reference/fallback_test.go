package reference

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- stub for fallback and cache tests ---

type stubSource struct {
	text  string
	err   error
	calls int
}

func (s *stubSource) Fetch(_ context.Context, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func TestFallback_RemoteSuccess(t *testing.T) {
	remote := &stubSource{text: testDocument}
	local := &stubSource{text: "stale local copy"}
	f := NewFallback(remote, local, testLogger())

	text, err := f.Fetch(context.Background(), "cmip6")

	require.NoError(t, err)
	assert.Equal(t, testDocument, text)
	assert.Equal(t, 1, remote.calls)
	assert.Equal(t, 0, local.calls, "local checkout should not be consulted when the remote answers")
}

func TestFallback_LocalAfterRemoteFailure(t *testing.T) {
	remote := &stubSource{err: errors.New("connection refused")}
	local := &stubSource{text: testDocument}
	f := NewFallback(remote, local, testLogger())

	text, err := f.Fetch(context.Background(), "cmip6")

	require.NoError(t, err)
	assert.Equal(t, testDocument, text)
	assert.Equal(t, 1, remote.calls)
	assert.Equal(t, 1, local.calls)
}

func TestFallback_BothFail(t *testing.T) {
	remoteErr := errors.New("connection refused")
	localErr := &NotProvisionedError{Dir: "/data/checkout", Path: DocumentPath("cmip6")}

	f := NewFallback(&stubSource{err: remoteErr}, &stubSource{err: localErr}, testLogger())
	_, err := f.Fetch(context.Background(), "cmip6")

	require.Error(t, err)
	assert.True(t, IsUnavailable(err))

	// Both causes stay reachable through the wrapper.
	assert.True(t, errors.Is(err, remoteErr))
	assert.True(t, IsNotProvisioned(err))

	var ue *UnavailableError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "cmip6", ue.Phase)
}
