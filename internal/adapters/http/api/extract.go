package api

import (
	"errors"
	"io"
	"net/http"
)

const uploadField = "file"

// ExtractHandler handles document upload requests.
type ExtractHandler struct {
	deps  ExtractDependencies
	limit int64
}

// NewExtractHandler creates a new extract handler.
func NewExtractHandler(deps ExtractDependencies, limit int64) *ExtractHandler {
	return &ExtractHandler{deps: deps, limit: limit}
}

type extractResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Text        string `json:"text"`
}

// HandlePostExtract handles POST /v1/extract multipart uploads.
func (h *ExtractHandler) HandlePostExtract(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_extract"
	if !allowMethod(w, r, op, http.MethodPost) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.limit)
	// Keep at most 1 MiB of the form in memory; the rest spills to disk.
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeFailure(w, WrapKind(op, ErrTooLarge, err))
			return
		}
		writeFailure(w, WrapKind(op, ErrUnsupportedMedia, err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	text, kind, err := h.deps.Extract(r.Context(), data, header.Filename)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, extractResponse{
		Filename:    header.Filename,
		ContentType: string(kind),
		Text:        text,
	})
}
