package ocr

import (
	"context"

	"booktracker/internal/platform/gemini"
)

// MaxImageBytes caps the uploaded cover image size.
const MaxImageBytes = 10 << 20 // 10 MiB

// Extractor turns a cover photo into candidate book details. The AI
// vendor behind it is a black box; failures propagate unchanged and no
// fallback title or author is ever fabricated here.
type Extractor interface {
	ExtractBookDetails(ctx context.Context, imageData []byte, mimeType string) (gemini.BookDetails, error)
}
