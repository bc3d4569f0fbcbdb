package pipeline

import "errors"

// ErrNoCompleter indicates the runner was built without a model client.
var ErrNoCompleter = errors.New("pipeline requires a completer")
