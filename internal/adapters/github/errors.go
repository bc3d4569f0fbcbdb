package github

import "errors"

// ErrRequestFailed indicates an unexpected status from the GitHub API.
// 404 and 403 are not errors; they map to empty results.
var ErrRequestFailed = errors.New("github request failed")
