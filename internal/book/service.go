package book

import (
	"context"
	"strings"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the input and stores a new book.
func (s *Service) Create(ctx context.Context, input NewBookInput) (Book, error) {
	if strings.TrimSpace(input.Title) == "" {
		return Book{}, ErrEmptyTitle
	}
	return s.repo.Create(ctx, input)
}

// List returns all books, newest first.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

// GetByID returns a book by its ID.
func (s *Service) GetByID(ctx context.Context, id string) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial update to an existing book.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Book, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return Book{}, ErrEmptyTitle
	}
	return s.repo.Update(ctx, id, patch)
}

// Delete removes a book. Unknown IDs are ignored.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Search returns all books matching the query, newest first.
func (s *Service) Search(ctx context.Context, query string) ([]Book, error) {
	return s.repo.Search(ctx, query)
}

// CheckDuplicate decides whether a candidate title/author pair is already
// in the library.
func (s *Service) CheckDuplicate(ctx context.Context, title string, author *string) (DuplicateResult, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return DuplicateResult{}, err
	}
	return CheckDuplicate(title, author, all), nil
}
