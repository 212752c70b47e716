package book

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory implementation of Repository.
//
// All records live for the process lifetime only. Returned books are
// value copies; callers never observe later mutations without re-fetching.
type MemoryRepository struct {
	mu      sync.RWMutex
	books   map[string]Book
	lastSeq uint64

	now   func() time.Time
	newID func() string
}

// NewMemoryRepository constructs an empty in-memory book repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		books: make(map[string]Book),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Create stores a new book with a generated ID and creation timestamp.
func (r *MemoryRepository) Create(_ context.Context, input NewBookInput) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastSeq++
	b := Book{
		ID:        r.newID(),
		Title:     input.Title,
		Author:    copyAuthor(input.Author),
		CreatedAt: r.now(),
		seq:       r.lastSeq,
	}
	if input.IsRead != nil {
		b.IsRead = *input.IsRead
	}

	r.books[b.ID] = b
	return b, nil
}

// GetByID retrieves a book by its ID.
func (r *MemoryRepository) GetByID(_ context.Context, id string) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return snapshot(b), nil
}

// List returns all books ordered newest-first. Books created at the same
// instant are ordered by insertion sequence, latest insertion first.
func (r *MemoryRepository) List(_ context.Context) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Book, 0, len(r.books))
	for _, b := range r.books {
		result = append(result, snapshot(b))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].seq > result[j].seq
	})

	return result, nil
}

// Update merges the supplied patch into an existing book. ID and
// CreatedAt are never affected.
func (r *MemoryRepository) Update(_ context.Context, id string, patch Patch) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}

	if patch.Title != nil {
		b.Title = *patch.Title
	}
	switch {
	case patch.ClearAuthor:
		b.Author = nil
	case patch.Author != nil:
		b.Author = copyAuthor(patch.Author)
	}
	if patch.IsRead != nil {
		b.IsRead = *patch.IsRead
	}

	r.books[id] = b
	return snapshot(b), nil
}

// Delete removes a book. Deleting an unknown ID is a no-op.
func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.books, id)
	return nil
}

// Search returns all books whose title or author contains the query,
// case-insensitively, in the same order as List. An empty query matches
// every book.
func (r *MemoryRepository) Search(ctx context.Context, query string) ([]Book, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	result := make([]Book, 0, len(all))
	for _, b := range all {
		if strings.Contains(strings.ToLower(b.Title), q) {
			result = append(result, b)
			continue
		}
		if b.Author != nil && strings.Contains(strings.ToLower(*b.Author), q) {
			result = append(result, b)
		}
	}

	return result, nil
}

func snapshot(b Book) Book {
	b.Author = copyAuthor(b.Author)
	return b
}

func copyAuthor(a *string) *string {
	if a == nil {
		return nil
	}
	v := *a
	return &v
}
