package app

import "errors"

// ErrNilConfig indicates the service was constructed without configuration.
var ErrNilConfig = errors.New("nil config")
