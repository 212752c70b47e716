package book

import (
	"context"
)

// Repository defines the contract for book storage.
type Repository interface {
	Create(ctx context.Context, input NewBookInput) (Book, error)
	GetByID(ctx context.Context, id string) (Book, error)
	List(ctx context.Context) ([]Book, error)
	Update(ctx context.Context, id string, patch Patch) (Book, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]Book, error)
}
