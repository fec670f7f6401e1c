package splitter

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const approxCharsPerToken = 4

// TokenizeFunc converts text into model tokens. Only the length of the
// result is ever read.
type TokenizeFunc func(text string) []int

// newEncoder resolves the encoder for a model, falling back to the
// cl100k_base encoding when the model is unknown. Stubbed in tests.
var newEncoder = func(model string) (*tiktoken.Tiktoken, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return tiktoken.GetEncoding("cl100k_base")
	}
	return enc, nil
}

var (
	encodersMu sync.Mutex
	encoders   = map[string]*tiktoken.Tiktoken{}
)

// TiktokenFunc returns a TokenizeFunc for the given model. Encoders are
// loaded once per model and cached for the process; a nil encoder (no
// vocabulary available) degrades to a character estimate so token counts
// stay positive.
func TiktokenFunc(model string) TokenizeFunc {
	encodersMu.Lock()
	enc, ok := encoders[model]
	if !ok {
		loaded, err := newEncoder(model)
		if err == nil {
			enc = loaded
		}
		encoders[model] = enc
	}
	encodersMu.Unlock()

	return func(text string) []int {
		if enc != nil {
			return enc.Encode(text, nil, nil)
		}
		n := len(text) / approxCharsPerToken
		if n < 1 && text != "" {
			n = 1
		}
		return make([]int, n)
	}
}

// CountFunc adapts a TokenizeFunc to the length function langchaingo
// splitters expect.
func CountFunc(tokenize TokenizeFunc) func(string) int {
	return func(text string) int { return len(tokenize(text)) }
}
