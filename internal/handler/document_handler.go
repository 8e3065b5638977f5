package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"pdf-chatbot-api/internal/domain"
	apperrors "pdf-chatbot-api/pkg/errors"

	"github.com/gorilla/mux"
)

const (
	multipartMemory   = 32 << 20
	multipartOverhead = 1 << 20
)

type DocumentHandler struct {
	documentService domain.DocumentService
	maxFileSize     int64
	logger          domain.Logger
}

func NewDocumentHandler(documentService domain.DocumentService, maxFileSize int64, logger domain.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		maxFileSize:     maxFileSize,
		logger:          logger,
	}
}

// UploadPDF handles multipart uploads in the "file" field
func (h *DocumentHandler) UploadPDF(w http.ResponseWriter, r *http.Request) {
	if h.maxFileSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeAppError(w, r, h.logger, apperrors.NewValidationError("File too large", fmt.Sprintf("max %d bytes", h.maxFileSize)))
			return
		}
		writeAppError(w, r, h.logger, apperrors.NewValidationError("Invalid multipart form", err.Error()))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeAppError(w, r, h.logger, apperrors.NewValidationError("File is required"))
		return
	}
	defer file.Close()

	h.logger.Info("Upload received", "filename", header.Filename, "size", header.Size)

	result, err := h.documentService.Upload(r.Context(), header.Filename, file)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ServeStatic streams a stored file back as audio/mpeg
func (h *DocumentHandler) ServeStatic(w http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]

	rc, err := h.documentService.OpenFile(r.Context(), filename)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn("Failed to stream file", "filename", filename, "error", err)
	}
}
