// Package consult defines the domain types and interfaces for the streaming
// consultation-summary client: the submission request, the framed stream
// protocol, the validated payload, and the transport seams the session
// depends on. Adapters and orchestration live in subpackages.
package consult

import "context"

// Transport opens one push connection to the generation service per session.
// It is a strategy pattern interface: the production implementation speaks
// HTTP server-sent events, tests substitute function-field doubles.
//
// Retry and backoff are the transport's concern, not the session's; a failed
// Open or a broken stream is terminal for the session that observed it.
type Transport interface {
	Open(ctx context.Context, req ConsultationRequest, credential string) (FrameStream, error)
}

// FrameStream is a pull-based iterator over raw pushed frames. Next blocks
// until the next frame arrives and returns io.EOF when the server closes the
// stream cleanly. Cancellation flows through the context passed to Open and
// is checked between frames, not mid-frame.
type FrameStream interface {
	Next() ([]byte, error)
	Close() error
}

// CredentialSource supplies the bearer credential at session start. It is
// the seam to the external identity collaborator; when it yields nothing the
// session fails as unauthenticated without attempting a connection.
type CredentialSource interface {
	Credential(ctx context.Context) (string, error)
}

// CredentialFunc adapts a function to a CredentialSource.
type CredentialFunc func(ctx context.Context) (string, error)

// Credential calls f.
func (f CredentialFunc) Credential(ctx context.Context) (string, error) { return f(ctx) }

// StaticCredential returns a CredentialSource that always yields token.
func StaticCredential(token string) CredentialSource {
	return CredentialFunc(func(context.Context) (string, error) { return token, nil })
}
