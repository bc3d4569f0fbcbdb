package extract

import "errors"

var (
	// ErrUnsupportedFormat indicates a file extension outside the supported set.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrNoBinaryExtractor indicates a binary format with no extractor wired.
	ErrNoBinaryExtractor = errors.New("no binary extractor configured")
)
