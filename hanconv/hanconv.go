// Package hanconv converts simplified Chinese to traditional characters.
// Whole words from a phrase table are matched first, longest first; every
// other rune goes through a character table. Runes without an entry, and
// bytes that are not valid UTF-8, pass through unchanged.
package hanconv

import (
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// Converter maps simplified text to its traditional form.
type Converter struct {
	table     map[rune]rune
	phrases   map[string]string
	maxPhrase int
}

// Option configures a Converter.
type Option func(*Converter)

// WithPairs adds or overrides mappings. pairs alternates simplified and
// traditional runes; a trailing unpaired rune is ignored.
func WithPairs(pairs string) Option {
	return func(c *Converter) {
		addPairs(c.table, pairs)
	}
}

// WithoutRunes drops the mappings for the given simplified runes.
func WithoutRunes(simplified string) Option {
	return func(c *Converter) {
		for _, r := range simplified {
			delete(c.table, r)
		}
	}
}

// WithPhrases adds or overrides word mappings. An empty traditional form
// removes the word. Words shorter than two runes are ignored.
func WithPhrases(phrases map[string]string) Option {
	return func(c *Converter) {
		for simplified, traditional := range phrases {
			if utf8.RuneCountInString(simplified) < 2 {
				continue
			}
			if traditional == "" {
				delete(c.phrases, simplified)
				continue
			}
			c.phrases[simplified] = traditional
		}
	}
}

// New creates a converter seeded with the built-in tables.
func New(opts ...Option) *Converter {
	c := &Converter{
		table:   make(map[rune]rune, len(simplifiedToTraditional)/2),
		phrases: make(map[string]string, len(simplifiedPhrases)),
	}
	addPairs(c.table, simplifiedToTraditional)
	for k, v := range simplifiedPhrases {
		c.phrases[k] = v
	}
	for _, opt := range opts {
		opt(c)
	}
	for k := range c.phrases {
		c.maxPhrase = max(c.maxPhrase, utf8.RuneCountInString(k))
	}
	return c
}

func addPairs(table map[rune]rune, pairs string) {
	rs := []rune(pairs)
	for i := 0; i+1 < len(rs); i += 2 {
		if rs[i] == rs[i+1] {
			delete(table, rs[i])
			continue
		}
		table[rs[i]] = rs[i+1]
	}
}

// Transformer returns a transform.Transformer that applies the tables, so the
// conversion can be chained with other golang.org/x/text transforms.
func (c *Converter) Transformer() transform.Transformer {
	return &transformer{c: c}
}

// Convert returns s with every known simplified word and rune replaced.
func (c *Converter) Convert(s string) string {
	out, _, err := transform.String(c.Transformer(), s)
	if err != nil {
		return s
	}
	return out
}

// Len reports the number of mapped runes.
func (c *Converter) Len() int {
	return len(c.table)
}

// Phrases reports the number of mapped words.
func (c *Converter) Phrases() int {
	return len(c.phrases)
}

type transformer struct {
	c       *Converter
	ends    []int
	scratch [utf8.UTFMax]byte
}

func (t *transformer) Reset() {}

func (t *transformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	lookahead := max(t.c.maxPhrase, 1)

	for nSrc < len(src) {
		rest := src[nSrc:]

		// ends[k] is the byte offset just past the (k+1)th rune of rest.
		t.ends = t.ends[:0]
		for j := 0; j < len(rest) && len(t.ends) < lookahead; {
			if !atEOF && !utf8.FullRune(rest[j:]) {
				break
			}
			_, size := utf8.DecodeRune(rest[j:])
			j += size
			t.ends = append(t.ends, j)
		}
		if !atEOF && len(t.ends) < lookahead {
			return nDst, nSrc, transform.ErrShortSrc
		}

		out, size := t.next(rest)
		if nDst+len(out) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], out)
		nSrc += size
	}
	return nDst, nSrc, nil
}

// next converts the word or rune at the start of b and reports how many
// bytes of b it consumed.
func (t *transformer) next(b []byte) ([]byte, int) {
	for k := len(t.ends); k >= 2; k-- {
		if traditional, ok := t.c.phrases[string(b[:t.ends[k-1]])]; ok {
			return []byte(traditional), t.ends[k-1]
		}
	}

	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError && size <= 1 {
		return b[:1], 1
	}
	if mapped, ok := t.c.table[r]; ok {
		n := utf8.EncodeRune(t.scratch[:], mapped)
		return t.scratch[:n], size
	}
	return b[:size], size
}

var defaultConverter = New()

// ToTraditional converts s with the built-in tables.
func ToTraditional(s string) string {
	return defaultConverter.Convert(s)
}
