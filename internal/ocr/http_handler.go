package ocr

import (
	"io"
	"log"
	"net/http"

	"booktracker/internal/httpx"
)

type HTTPHandler struct {
	extractor Extractor
}

func NewHTTPHandler(extractor Extractor) *HTTPHandler {
	return &HTTPHandler{extractor: extractor}
}

// Analyze handles POST /api/ocr/analyze. It expects a multipart form
// with the image under the "image" field.
func (h *HTTPHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxImageBytes)
	if err := r.ParseMultipartForm(MaxImageBytes); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "No image file provided", nil)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "No image file provided", nil)
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read image", nil)
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(imageData)
	}

	details, err := h.extractor.ExtractBookDetails(r.Context(), imageData, mimeType)
	if err != nil {
		log.Printf("ocr analysis failed: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		httpx.JSONError(w, http.StatusInternalServerError, "EXTERNAL_SERVICE_ERROR", "Failed to analyze image", nil)
		return
	}

	httpx.JSON(w, http.StatusOK, details)
}
