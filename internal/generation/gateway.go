package generation

import "context"

// Gateway defines the boundary between the generation core and the external
// text-generation API. Implementations own transport concerns (endpoints,
// authentication, per-call timeouts) and surface failures using the package's
// error taxonomy: StatusError for HTTP-status-equivalent failures and
// ErrTransport-wrapped errors for connection or timeout failures.
type Gateway interface {
	// Send submits a prompt and returns the model's raw text response.
	// Exactly one outcome resolves per call: the text or an error.
	Send(ctx context.Context, prompt string) (string, error)
}
