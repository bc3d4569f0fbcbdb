package gitroll

import "errors"

var (
	// ErrScanFailed indicates the scan request was rejected.
	ErrScanFailed = errors.New("gitroll scan request failed")
	// ErrNoScanID indicates the scan response carried no identifier.
	ErrNoScanID = errors.New("gitroll response missing scan id")
)
