// Package tokens provides best-effort token counting for chat text.
//
// The count is only used when the provider omits usage metadata in its
// response, so precision is not critical. When the cl100k_base encoding
// is available it is used; otherwise a character-count heuristic stands
// in.
package tokens

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// charsPerToken is the heuristic ratio used when no encoder is
// available: roughly four characters per token for English text.
const charsPerToken = 4

var (
	encOnce sync.Once
	enc     *tiktoken.Tiktoken
)

func encoder() *tiktoken.Tiktoken {
	encOnce.Do(func() {
		// Loading the encoding can fail (for example with no network
		// access to fetch the BPE ranks). The heuristic covers that case.
		e, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			enc = e
		}
	})
	return enc
}

// Estimate returns an approximate token count for the given text.
// It never fails; an empty string estimates to zero.
func Estimate(text string) int {
	if text == "" {
		return 0
	}
	if e := encoder(); e != nil {
		return len(e.Encode(text, nil, nil))
	}
	n := utf8.RuneCountInString(text) / charsPerToken
	if n < 1 {
		return 1
	}
	return n
}
