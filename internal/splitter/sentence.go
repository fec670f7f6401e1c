package splitter

import (
	"github.com/tmc/langchaingo/textsplitter"
)

// SentenceSplitter breaks a single oversized text into token-bounded
// sub-texts, preferring sentence boundaries and repeating the configured
// overlap between consecutive sub-texts.
type SentenceSplitter interface {
	SplitText(text string) ([]string, error)
}

func newSentenceSplitter(chunkSize, chunkOverlap int, lenFunc func(string) int) textsplitter.RecursiveCharacter {
	return textsplitter.NewRecursiveCharacter(
		textsplitter.WithSeparators([]string{
			"\n\n",
			"\n",
			". ", "! ", "? ",
			" ",
			"",
		}),
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
		textsplitter.WithLenFunc(lenFunc),
	)
}
