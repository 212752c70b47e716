package cover

import (
	"context"
	"log"

	"booktracker/internal/book"
)

// Service resolves a display cover for a book. Every call is a fresh
// round trip; there is no caching or retrying here.
type Service struct {
	lookup    CoverLookup
	describer Describer
}

// NewService creates a new cover resolution service.
func NewService(lookup CoverLookup, describer Describer) *Service {
	return &Service{lookup: lookup, describer: describer}
}

// Resolve tries an Open Library cover lookup first and falls back to a
// generated description. A failed fallback degrades to a zero-confidence
// result rather than an error, so the UI can always render something.
func (s *Service) Resolve(ctx context.Context, b book.Book) Result {
	author := ""
	if b.Author != nil {
		author = *b.Author
	}

	coverURL, err := s.lookup.FindCoverURL(ctx, b.Title, author)
	if err != nil {
		log.Printf("cover lookup failed: title=%q error=%v", b.Title, err)
	} else if coverURL != "" {
		return Result{
			CoverURL: coverURL,
			Source:   SourceOpenLibrary,
		}
	}

	desc, err := s.describer.DescribeCover(ctx, b.Title, author)
	if err != nil {
		log.Printf("cover description failed: title=%q error=%v", b.Title, err)
		zero := 0.0
		return Result{
			Confidence: &zero,
			Source:     SourceAIGenerated,
		}
	}

	return Result{
		Description: desc.Description,
		Confidence:  &desc.Confidence,
		Source:      SourceAIGenerated,
	}
}
