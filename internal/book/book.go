package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// ErrEmptyTitle is returned when a title is empty or whitespace-only.
var ErrEmptyTitle = errors.New("title must not be empty")

// Book represents a book in the library.
//
// Author is nil when no author is known. An empty string is a present
// but blank author; both count as "no author" when matching.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    *string   `json:"author"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`

	// seq is the insertion sequence number. It breaks ordering ties
	// between books created at the same instant and is never serialized.
	seq uint64
}

// NewBookInput carries the caller-supplied fields for creating a book.
// Author defaults to nil and IsRead to false when not supplied.
type NewBookInput struct {
	Title  string
	Author *string
	IsRead *bool
}

// Patch is a partial update. Nil fields are left unchanged.
// ClearAuthor removes the author entirely (an explicit null).
type Patch struct {
	Title       *string
	Author      *string
	ClearAuthor bool
	IsRead      *bool
}
