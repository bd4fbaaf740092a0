// Package mock provides test doubles for consult interfaces using function
// fields. Set the function fields for the methods a test needs; unset
// required fields panic to catch missing setup.
package mock

import (
	"context"
	"io"

	"github.com/visitnotes/consult"
)

// Interface compliance checks.
var (
	_ consult.Transport        = (*Transport)(nil)
	_ consult.FrameStream      = (*FrameStream)(nil)
	_ consult.CredentialSource = (*CredentialSource)(nil)
)

// Transport is a test double for consult.Transport.
// Set OpenFn before calling Open.
type Transport struct {
	OpenFn func(ctx context.Context, req consult.ConsultationRequest, credential string) (consult.FrameStream, error)
}

// Open delegates to OpenFn.
func (t *Transport) Open(ctx context.Context, req consult.ConsultationRequest, credential string) (consult.FrameStream, error) {
	return t.OpenFn(ctx, req, credential)
}

// FrameStream is a test double for consult.FrameStream. NextFn panics when
// nil. CloseFn is nil-safe because test code commonly defers Close without
// caring about it.
type FrameStream struct {
	NextFn  func() ([]byte, error)
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *FrameStream) Next() ([]byte, error) {
	return s.NextFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *FrameStream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// CredentialSource is a test double for consult.CredentialSource.
// Set CredentialFn before calling Credential.
type CredentialSource struct {
	CredentialFn func(ctx context.Context) (string, error)
}

// Credential delegates to CredentialFn.
func (c *CredentialSource) Credential(ctx context.Context) (string, error) {
	return c.CredentialFn(ctx)
}

// ScriptedStream returns a FrameStream that replays frames in order and then
// reports io.EOF.
func ScriptedStream(frames ...string) *FrameStream {
	i := 0
	return &FrameStream{
		NextFn: func() ([]byte, error) {
			if i >= len(frames) {
				return nil, io.EOF
			}
			frame := frames[i]
			i++
			return []byte(frame), nil
		},
	}
}

// ScriptedTransport returns a Transport whose Open always succeeds with a
// stream replaying frames.
func ScriptedTransport(frames ...string) *Transport {
	return &Transport{
		OpenFn: func(context.Context, consult.ConsultationRequest, string) (consult.FrameStream, error) {
			return ScriptedStream(frames...), nil
		},
	}
}
