// Package llm provides chat-completion clients for the model providers the
// pipeline can run against. Both clients expose the same Completer surface:
// one prompt in, one text response out. Retries and JSON recovery live with
// the callers; this package only moves text over the wire.
package llm

import (
	"context"
	"net/http"
	"time"
)

// Completer issues a single completion request against a model provider.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const (
	defaultTimeout     = 60 * time.Second
	defaultMaxTokens   = 4096
	defaultTemperature = 0.2
)

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}
