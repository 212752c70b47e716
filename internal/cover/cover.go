package cover

import (
	"context"

	"booktracker/internal/platform/gemini"
)

// Source identifies where a resolved cover came from.
const (
	SourceOpenLibrary = "openlibrary"
	SourceAIGenerated = "ai-generated"
)

// Result is what the UI renders for a book's cover: either an image URL
// from Open Library, or a generated description with a confidence score.
type Result struct {
	CoverURL    string   `json:"coverUrl,omitempty"`
	Description string   `json:"description,omitempty"`
	Confidence  *float64 `json:"confidence,omitempty"`
	Source      string   `json:"source"`
}

// CoverLookup finds a cover image URL by title/author. An empty URL with
// a nil error means no cover is known.
type CoverLookup interface {
	FindCoverURL(ctx context.Context, title, author string) (string, error)
}

// Describer generates a textual cover description as a fallback.
type Describer interface {
	DescribeCover(ctx context.Context, title, author string) (gemini.CoverDescription, error)
}
