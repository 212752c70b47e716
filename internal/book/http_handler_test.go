package book

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"booktracker/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() (*HTTPHandler, *Service) {
	svc := NewService(NewMemoryRepository())
	return NewHTTPHandler(svc), svc
}

func TestHTTPHandler_List(t *testing.T) {
	handler, svc := newTestHandler()

	_, err := svc.Create(context.Background(), NewBookInput{Title: "Dune"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := testutil.NewRequest(http.MethodGet, "/api/books", nil)

	handler.List(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var books []Book
	require.NoError(t, json.NewDecoder(w.Body).Decode(&books))
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestHTTPHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		rawBody        string
		expectedStatus int
	}{
		{
			name:           "success",
			body:           map[string]interface{}{"title": "Dune", "author": "Frank Herbert"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "success - title only",
			body:           map[string]interface{}{"title": "Foo"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing title",
			body:           map[string]interface{}{"author": "Frank Herbert"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "whitespace-only title",
			body:           map[string]interface{}{"title": "   "},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			rawBody:        "{not json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestHandler()

			w := httptest.NewRecorder()
			var r *http.Request
			if tt.rawBody != "" {
				r = httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(tt.rawBody))
				r.Header.Set("Content-Type", "application/json")
			} else {
				r = testutil.NewRequest(http.MethodPost, "/api/books", tt.body)
			}

			handler.Create(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestHTTPHandler_Create_ResponseShape(t *testing.T) {
	handler, _ := newTestHandler()

	w := httptest.NewRecorder()
	r := testutil.NewRequest(http.MethodPost, "/api/books", map[string]interface{}{"title": "Foo"})

	handler.Create(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := testutil.RecordHTTPResponse(w)
	assert.NotEmpty(t, resp.Body["id"])
	assert.Equal(t, "Foo", resp.Body["title"])
	assert.Nil(t, resp.Body["author"])
	assert.Equal(t, false, resp.Body["isRead"])
	assert.NotEmpty(t, resp.Body["createdAt"])
}

func TestHTTPHandler_GetByID(t *testing.T) {
	handler, svc := newTestHandler()

	created, err := svc.Create(context.Background(), NewBookInput{Title: "Dune"})
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/api/books/"+created.ID, nil)
		r.SetPathValue("id", created.ID)

		handler.GetByID(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/api/books/missing", nil)
		r.SetPathValue("id", "missing")

		handler.GetByID(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHTTPHandler_Update(t *testing.T) {
	handler, svc := newTestHandler()

	created, err := svc.Create(context.Background(), NewBookInput{
		Title:  "Dune",
		Author: strPtr("Frank Herbert"),
	})
	require.NoError(t, err)

	t.Run("partial update changes only supplied fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/api/books/"+created.ID, map[string]interface{}{"isRead": true})
		r.SetPathValue("id", created.ID)

		handler.Update(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var updated Book
		require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
		assert.True(t, updated.IsRead)
		assert.Equal(t, "Dune", updated.Title)
		require.NotNil(t, updated.Author)
		assert.Equal(t, "Frank Herbert", *updated.Author)
	})

	t.Run("explicit null clears author", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/api/books/"+created.ID, map[string]interface{}{"author": nil})
		r.SetPathValue("id", created.ID)

		handler.Update(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var updated Book
		require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
		assert.Nil(t, updated.Author)
	})

	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/api/books/missing", map[string]interface{}{"isRead": true})
		r.SetPathValue("id", "missing")

		handler.Update(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("author must be string or null", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/api/books/"+created.ID, map[string]interface{}{"author": 42})
		r.SetPathValue("id", created.ID)

		handler.Update(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_Delete(t *testing.T) {
	handler, svc := newTestHandler()
	ctx := context.Background()

	created, err := svc.Create(ctx, NewBookInput{Title: "Gone"})
	require.NoError(t, err)

	deleteBook := func(id string) int {
		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodDelete, "/api/books/"+id, nil)
		r.SetPathValue("id", id)
		handler.Delete(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, deleteBook(created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Idempotent: a second delete is still 204.
	assert.Equal(t, http.StatusNoContent, deleteBook(created.ID))
}

func TestHTTPHandler_Search(t *testing.T) {
	handler, svc := newTestHandler()
	ctx := context.Background()

	_, err := svc.Create(ctx, NewBookInput{Title: "The Hobbit", Author: strPtr("J.R.R. Tolkien")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, NewBookInput{Title: "Dune"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := testutil.NewRequest(http.MethodGet, "/api/books/search/tolkien", nil)
	r.SetPathValue("query", "tolkien")

	handler.Search(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var books []Book
	require.NoError(t, json.NewDecoder(w.Body).Decode(&books))
	require.Len(t, books, 1)
	assert.Equal(t, "The Hobbit", books[0].Title)
}

func TestHTTPHandler_CheckDuplicate(t *testing.T) {
	handler, svc := newTestHandler()

	_, err := svc.Create(context.Background(), NewBookInput{
		Title:  "Dune",
		Author: strPtr("Frank Herbert"),
	})
	require.NoError(t, err)

	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
		wantDup        bool
	}{
		{
			name:           "duplicate by title",
			body:           map[string]interface{}{"title": "dune "},
			expectedStatus: http.StatusOK,
			wantDup:        true,
		},
		{
			name:           "duplicate despite different author",
			body:           map[string]interface{}{"title": "Dune", "author": "Someone Else"},
			expectedStatus: http.StatusOK,
			wantDup:        true,
		},
		{
			name:           "not a duplicate",
			body:           map[string]interface{}{"title": "Dune 2"},
			expectedStatus: http.StatusOK,
			wantDup:        false,
		},
		{
			name:           "missing title",
			body:           map[string]interface{}{"author": "Frank Herbert"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := testutil.NewRequest(http.MethodPost, "/api/books/check-duplicate", tt.body)

			handler.CheckDuplicate(w, r)

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var result DuplicateResult
			require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
			assert.Equal(t, tt.wantDup, result.IsDuplicate)
		})
	}
}
