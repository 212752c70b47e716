package book

import (
	"strings"
)

// DuplicateResult reports whether a candidate book is already owned.
type DuplicateResult struct {
	IsDuplicate bool   `json:"isDuplicate"`
	Matches     []Book `json:"matches"`
}

// CheckDuplicate decides whether the candidate title/author pair matches
// any of the existing books. Titles and authors are compared after
// trimming whitespace and lower-casing. Matches keep the order of the
// input slice.
//
// The match condition is titleMatch || (titleMatch && authorMatch),
// which reduces to titleMatch alone. The author comparison is kept
// because a stricter author-aware mode was likely intended upstream;
// do not simplify without confirming product intent.
func CheckDuplicate(title string, author *string, existing []Book) DuplicateResult {
	candidateTitle := normalize(title)

	candidateAuthor := ""
	if author != nil {
		candidateAuthor = normalize(*author)
	}

	matches := make([]Book, 0)
	for _, b := range existing {
		titleMatch := normalize(b.Title) == candidateTitle

		authorMatch := false
		if candidateAuthor != "" && b.Author != nil {
			authorMatch = normalize(*b.Author) == candidateAuthor
		}

		if titleMatch || (titleMatch && authorMatch) {
			matches = append(matches, b)
		}
	}

	return DuplicateResult{
		IsDuplicate: len(matches) > 0,
		Matches:     matches,
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
