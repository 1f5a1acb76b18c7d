// Package titles formats marketplace product titles: it separates a leading
// Latin brand, splits Chinese runs into short space-separated groups and keeps
// counts attached to their measure words.
package titles

import (
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"

	"github.com/sevigo/listingkit/hanconv"
	"github.com/sevigo/listingkit/textsplitter"
)

var ErrNilSplitter = errors.New("title splitter cannot be nil")

var (
	brandPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9\s&-]*`)
	digitsOnly   = regexp.MustCompile(`^[0-9]+$`)
)

// measureWords are the leading runes that pull a preceding count into the
// same token, e.g. "10" + "色眼影盤" becomes "10色眼影盤".
const measureWords = "排色盒支條瓶包袋盤張只片組雙層"

// Formatter rewrites product titles. It is safe for concurrent use.
type Formatter struct {
	splitter  *textsplitter.ChineseTitle
	converter *hanconv.Converter
	narrow    bool
	logger    *slog.Logger
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithTraditional converts simplified characters before spacing.
func WithTraditional(c *hanconv.Converter) Option {
	return func(f *Formatter) {
		if c == nil {
			c = hanconv.New()
		}
		f.converter = c
	}
}

// WithoutWidthFolding keeps full-width Latin letters and digits as typed.
func WithoutWidthFolding() Option {
	return func(f *Formatter) {
		f.narrow = false
	}
}

// NewFormatter creates a title formatter around splitter.
func NewFormatter(splitter *textsplitter.ChineseTitle, logger *slog.Logger, opts ...Option) (*Formatter, error) {
	if splitter == nil {
		return nil, ErrNilSplitter
	}
	if logger == nil {
		logger = slog.Default()
	}

	f := &Formatter{
		splitter: splitter,
		narrow:   true,
		logger:   logger.With("component", "title_formatter"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Format returns the spaced title. The brand is upper-cased with its spaces
// removed and written directly before the first group.
func (f *Formatter) Format(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}

	if f.narrow {
		if folded, _, err := transform.String(width.Narrow, title); err == nil {
			title = folded
		}
	}
	if f.converter != nil {
		title = f.converter.Convert(title)
	}

	brand, rest := f.splitBrand(title)
	tokens := mergeCounts(f.tokenize(stripSpaces(rest)))
	body := strings.Join(tokens, " ")

	f.logger.Debug("Formatted title", "brand", brand, "groups", len(tokens))
	return brand + body
}

func (f *Formatter) splitBrand(title string) (string, string) {
	loc := brandPattern.FindStringIndex(title)
	if loc == nil {
		return "", title
	}
	// Casers keep state, so each call gets its own.
	brand := cases.Upper(language.Und).String(stripSpaces(title[:loc[1]]))
	return brand, title[loc[1]:]
}

// tokenize cuts s into Han and non-Han runs; Han runs are chunked further.
func (f *Formatter) tokenize(s string) []string {
	var (
		tokens  []string
		buf     strings.Builder
		inHan   bool
		started bool
	)

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		run := buf.String()
		buf.Reset()
		if inHan {
			tokens = append(tokens, f.splitter.Chunk(run)...)
			return
		}
		if t := strings.TrimSpace(run); t != "" {
			tokens = append(tokens, t)
		}
	}

	for _, r := range s {
		han := IsHan(r)
		if started && han != inHan {
			flush()
		}
		inHan = han
		started = true
		buf.WriteRune(r)
	}
	flush()

	return tokens
}

// IsHan reports whether r is in the CJK Unified Ideographs block.
func IsHan(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

func mergeCounts(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		cur := tokens[i]
		if i+1 < len(tokens) && digitsOnly.MatchString(cur) && startsWithMeasure(tokens[i+1]) {
			out = append(out, cur+tokens[i+1])
			i++
			continue
		}
		out = append(out, cur)
	}
	return out
}

func startsWithMeasure(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && r != utf8.RuneError && strings.ContainsRune(measureWords, r)
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
