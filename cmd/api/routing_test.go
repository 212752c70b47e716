package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"booktracker/internal/book"
	"booktracker/internal/cover"
	"booktracker/internal/ocr"
	"booktracker/internal/platform/gemini"
	"booktracker/internal/platform/openlibrary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *http.ServeMux {
	bookService := book.NewService(book.NewMemoryRepository())
	geminiClient := gemini.NewClient("")
	openLibraryClient := openlibrary.NewClient("booktracker-test/1.0", 100)
	coverService := cover.NewService(openLibraryClient, geminiClient)

	return newRouter(
		book.NewHTTPHandler(bookService),
		ocr.NewHTTPHandler(geminiClient),
		cover.NewHTTPHandler(bookService, coverService),
	)
}

func TestRouting(t *testing.T) {
	router := newTestRouter()

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var r *http.Request
		if body != "" {
			r = httptest.NewRequest(method, path, strings.NewReader(body))
			r.Header.Set("Content-Type", "application/json")
		} else {
			r = httptest.NewRequest(method, path, nil)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		return w
	}

	t.Run("health", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/healthz", "").Code)
	})

	t.Run("book lifecycle over routes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/books", "").Code)

		created := do(http.MethodPost, "/api/books", `{"title":"Dune","author":"Frank Herbert"}`)
		require.Equal(t, http.StatusCreated, created.Code)

		assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/api/books/missing", "").Code)
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/books/search/dune", "").Code)

		dup := do(http.MethodPost, "/api/books/check-duplicate", `{"title":"dune "}`)
		require.Equal(t, http.StatusOK, dup.Code)
		assert.Contains(t, dup.Body.String(), `"isDuplicate":true`)

		assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/api/books/missing", "").Code)
	})

	t.Run("cover route checks book first", func(t *testing.T) {
		// Unknown id fails before any external call is made.
		assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/api/books/missing/cover", "").Code)
	})

	t.Run("ocr requires multipart upload", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/api/ocr/analyze", `{"image":"nope"}`).Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		assert.Equal(t, http.StatusMethodNotAllowed, do(http.MethodPatch, "/api/books", "").Code)
	})
}
