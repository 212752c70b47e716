package book

import (
	"encoding/json"
	"errors"
	"net/http"

	"booktracker/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type createBookReq struct {
	Title  string  `json:"title" validate:"required"`
	Author *string `json:"author"`
	IsRead *bool   `json:"isRead"`
}

type updateBookReq struct {
	Title *string `json:"title"`
	// Author distinguishes absent (nil), explicit null, and a string value.
	Author json.RawMessage `json:"author"`
	IsRead *bool           `json:"isRead"`
}

type checkDuplicateReq struct {
	Title  string  `json:"title" validate:"required"`
	Author *string `json:"author"`
}

// List handles GET /api/books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch books", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// GetByID handles GET /api/books/{id}
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch book", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Create handles POST /api/books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid book data", details)
		return
	}

	b, err := h.service.Create(r.Context(), NewBookInput{
		Title:  req.Title,
		Author: req.Author,
		IsRead: req.IsRead,
	})
	if err != nil {
		if errors.Is(err, ErrEmptyTitle) {
			httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid book data", []httpx.ErrorDetail{
				{Field: "title", Message: "title must not be empty"},
			})
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create book", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, b)
}

// Update handles PUT /api/books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	patch := Patch{
		Title:  req.Title,
		IsRead: req.IsRead,
	}
	if len(req.Author) > 0 {
		if string(req.Author) == "null" {
			patch.ClearAuthor = true
		} else {
			var author string
			if err := json.Unmarshal(req.Author, &author); err != nil {
				httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid book data", []httpx.ErrorDetail{
					{Field: "author", Message: "author must be a string or null"},
				})
				return
			}
			patch.Author = &author
		}
	}

	b, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		case errors.Is(err, ErrEmptyTitle):
			httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid book data", []httpx.ErrorDetail{
				{Field: "title", Message: "title must not be empty"},
			})
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update book", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Delete handles DELETE /api/books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete book", nil)
		return
	}
	httpx.NoContent(w)
}

// Search handles GET /api/books/search/{query}
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.Search(r.Context(), r.PathValue("query"))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to search books", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// CheckDuplicate handles POST /api/books/check-duplicate
func (h *HTTPHandler) CheckDuplicate(w http.ResponseWriter, r *http.Request) {
	var req checkDuplicateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Title is required", details)
		return
	}

	result, err := h.service.CheckDuplicate(r.Context(), req.Title, req.Author)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check for duplicates", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}
