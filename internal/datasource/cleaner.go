package datasource

import (
	"strings"
)

// Clean drops documents whose text is empty after trimming whitespace.
// Splitters downstream assume non-empty input.
func Clean[D TextHolder](documents []D) []D {
	cleaned := make([]D, 0, len(documents))
	for _, doc := range documents {
		if strings.TrimSpace(doc.Content()) == "" {
			continue
		}
		cleaned = append(cleaned, doc)
	}
	return cleaned
}
