package textsplitter

import (
	"unicode/utf8"

	"github.com/sevigo/listingkit/dictionary"
)

// Tokenize splits segment into dictionary terms and single runes using
// greedy longest-match from left to right. Tokens are byte slices of
// segment, so they always concatenate back to it, invalid UTF-8 included.
func Tokenize(dict *dictionary.Dictionary, segment string) []Token {
	tokens := make([]Token, 0, utf8.RuneCountInString(segment))

	maxTerm := 0
	if dict != nil {
		maxTerm = dict.MaxTermLen()
	}
	// ends[k] is the byte offset just past the (k+1)th rune from i.
	ends := make([]int, 0, maxTerm)

	for i := 0; i < len(segment); {
		ends = ends[:0]
		for j := i; j < len(segment) && len(ends) < maxTerm; {
			_, size := utf8.DecodeRuneInString(segment[j:])
			j += size
			ends = append(ends, j)
		}

		matched := false
		for l := len(ends); l >= dictionary.MinTermLen; l-- {
			candidate := segment[i:ends[l-1]]
			if !dict.Contains(candidate) {
				continue
			}
			tokens = append(tokens, Token{
				Text:     candidate,
				Len:      l,
				Category: dict.IsCategory(candidate),
			})
			i = ends[l-1]
			matched = true
			break
		}

		if !matched {
			_, size := utf8.DecodeRuneInString(segment[i:])
			tokens = append(tokens, Token{Text: segment[i : i+size], Len: 1})
			i += size
		}
	}

	return tokens
}

func totalLen(tokens []Token) int {
	total := 0
	for _, t := range tokens {
		total += t.Len
	}
	return total
}
