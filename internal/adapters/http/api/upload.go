package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/deckray/deckray/internal/adapters/extract"
)

// maxUploadBytes bounds one deck upload.
const maxUploadBytes = 20 << 20

// UploadHandler handles deck upload and analysis requests.
type UploadHandler struct {
	analyzer Analyzer
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(analyzer Analyzer) *UploadHandler {
	return &UploadHandler{analyzer: analyzer}
}

// HandleUpload handles POST /analysis/upload requests. The request is
// multipart form data with a "file" part and an optional "project_name"
// field. The full report is returned synchronously.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_multipart", errors.New("expected multipart form data with a file part"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing_file", errors.New("missing file part"))
		return
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable_file", err)
		return
	}

	projectName := strings.TrimSpace(r.FormValue("project_name"))

	report, err := h.analyzer.Analyze(r.Context(), content, header.Filename, projectName)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedFormat) || errors.Is(err, extract.ErrNoBinaryExtractor) {
			writeError(w, http.StatusUnsupportedMediaType, "unsupported_format", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "analysis_failed", err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
