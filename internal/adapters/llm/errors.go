package llm

import "errors"

var (
	// ErrEmptyResponse indicates the provider returned no usable text.
	ErrEmptyResponse = errors.New("empty model response")
	// ErrRequestFailed indicates a non-2xx status from the provider.
	ErrRequestFailed = errors.New("model request failed")
	// ErrUnsupportedProvider indicates an unknown provider name in config.
	ErrUnsupportedProvider = errors.New("unsupported model provider")
	// ErrMissingAPIKey indicates the provider requires a key that was not set.
	ErrMissingAPIKey = errors.New("missing model api key")
)
