package cover

import (
	"errors"
	"net/http"

	"booktracker/internal/book"
	"booktracker/internal/httpx"
)

type HTTPHandler struct {
	books   *book.Service
	service *Service
}

func NewHTTPHandler(books *book.Service, service *Service) *HTTPHandler {
	return &HTTPHandler{books: books, service: service}
}

// GetCover handles GET /api/books/{id}/cover
func (h *HTTPHandler) GetCover(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	b, err := h.books.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, book.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch book", nil)
		return
	}

	httpx.JSON(w, http.StatusOK, h.service.Resolve(r.Context(), b))
}
