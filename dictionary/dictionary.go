// Package dictionary holds the term lists that guide Chinese title chunking.
//
// A Dictionary is built once and is read-only afterwards, so it can be shared
// between goroutines without locking.
package dictionary

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed cosmetics.yaml
var cosmeticsYAML []byte

// MinTermLen is the shortest term, in runes, a dictionary accepts.
const MinTermLen = 2

var (
	ErrEmptyDictionary = errors.New("dictionary has no terms")
	ErrTermTooShort    = errors.New("dictionary term is too short")
)

// Dictionary is a set of indivisible terms. Category terms are a subset that
// must end the chunk containing them.
type Dictionary struct {
	terms    map[string]struct{}
	category map[string]struct{}
	order    []string
	maxLen   int
}

// fileFormat is the YAML layout accepted by Load.
type fileFormat struct {
	Terms         []string `yaml:"terms"`
	CategoryTerms []string `yaml:"category_terms"`
}

// New builds a dictionary. Category terms are added to the term set when they
// are not already part of it. Blank entries are ignored; duplicates are kept once.
func New(terms, categoryTerms []string) (*Dictionary, error) {
	d := &Dictionary{
		terms:    make(map[string]struct{}, len(terms)+len(categoryTerms)),
		category: make(map[string]struct{}, len(categoryTerms)),
	}

	for _, t := range terms {
		if err := d.add(t); err != nil {
			return nil, err
		}
	}
	for _, t := range categoryTerms {
		if err := d.add(t); err != nil {
			return nil, err
		}
		if t = strings.TrimSpace(t); t != "" {
			d.category[t] = struct{}{}
		}
	}

	if len(d.order) == 0 {
		return nil, ErrEmptyDictionary
	}
	return d, nil
}

func (d *Dictionary) add(term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	n := utf8.RuneCountInString(term)
	if n < MinTermLen {
		return fmt.Errorf("%w: %q has %d rune(s), need at least %d", ErrTermTooShort, term, n, MinTermLen)
	}
	if _, ok := d.terms[term]; ok {
		return nil
	}
	d.terms[term] = struct{}{}
	d.order = append(d.order, term)
	if n > d.maxLen {
		d.maxLen = n
	}
	return nil
}

// Load decodes a YAML document with "terms" and "category_terms" lists.
func Load(r io.Reader) (*Dictionary, error) {
	var f fileFormat
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDictionary
		}
		return nil, fmt.Errorf("failed to decode dictionary: %w", err)
	}
	return New(f.Terms, f.CategoryTerms)
}

// Default returns the built-in cosmetics dictionary.
func Default() *Dictionary {
	d, err := Load(bytes.NewReader(cosmeticsYAML))
	if err != nil {
		panic(fmt.Sprintf("dictionary: embedded cosmetics dictionary is invalid: %v", err))
	}
	return d
}

// Contains reports whether term is a dictionary term.
func (d *Dictionary) Contains(term string) bool {
	_, ok := d.terms[term]
	return ok
}

// IsCategory reports whether term is a category term.
func (d *Dictionary) IsCategory(term string) bool {
	_, ok := d.category[term]
	return ok
}

// MaxTermLen is the rune length of the longest term.
func (d *Dictionary) MaxTermLen() int {
	return d.maxLen
}

// Len returns the number of distinct terms.
func (d *Dictionary) Len() int {
	return len(d.order)
}

// Terms returns the terms in the order they were added.
func (d *Dictionary) Terms() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// CategoryTerms returns the category terms in the order they were added.
func (d *Dictionary) CategoryTerms() []string {
	out := make([]string, 0, len(d.category))
	for _, t := range d.order {
		if _, ok := d.category[t]; ok {
			out = append(out, t)
		}
	}
	return out
}
