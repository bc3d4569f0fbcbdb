// Package extract turns uploaded deck files into plain text. Plain-text
// formats are handled directly; binary formats (pdf, pptx, docx) are
// recognized and routed to an injected BinaryExtractor so the analysis
// service itself carries no document-parsing machinery.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/deckray/deckray/internal/domain/model"
)

// BinaryExtractor extracts plain text from a binary document format.
type BinaryExtractor interface {
	Extract(ctx context.Context, content []byte, format model.Format) (string, error)
}

// Extractor resolves an uploaded file to deck text.
type Extractor struct {
	binary BinaryExtractor
}

// Option applies a configuration option to the extractor.
type Option func(*Extractor)

// WithBinaryExtractor supplies the handler for pdf, pptx, and docx files.
func WithBinaryExtractor(b BinaryExtractor) Option {
	return func(e *Extractor) {
		e.binary = b
	}
}

// New creates an extractor. Without a binary extractor, binary formats are
// rejected with ErrNoBinaryExtractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var formatByExt = map[string]model.Format{
	".pdf":      model.FormatPDF,
	".pptx":     model.FormatPPTX,
	".docx":     model.FormatDOCX,
	".txt":      model.FormatTXT,
	".md":       model.FormatMarkdown,
	".markdown": model.FormatMarkdown,
}

// DetectFormat maps a filename extension to a deck format.
func DetectFormat(filename string) (model.Format, bool) {
	format, ok := formatByExt[strings.ToLower(filepath.Ext(filename))]
	return format, ok
}

// Text extracts plain text from an uploaded file. Unknown extensions yield
// ErrUnsupportedFormat.
func (e *Extractor) Text(ctx context.Context, content []byte, filename string) (string, model.Format, error) {
	format, ok := DetectFormat(filename)
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}

	switch format {
	case model.FormatTXT, model.FormatMarkdown:
		return decodeText(content), format, nil
	default:
		if e.binary == nil {
			return "", format, fmt.Errorf("%w: %s", ErrNoBinaryExtractor, format)
		}
		text, err := e.binary.Extract(ctx, content, format)
		if err != nil {
			return "", format, fmt.Errorf("extracting %s: %w", format, err)
		}
		return text, format, nil
	}
}

// decodeText interprets content as UTF-8, falling back to Latin-1 when the
// bytes are not valid UTF-8. Decks exported from older tooling still show
// up in legacy encodings.
func decodeText(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}

	runes := make([]rune, len(content))
	for i, b := range content {
		runes[i] = rune(b)
	}
	return string(runes)
}
