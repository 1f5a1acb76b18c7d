package textsplitter

import "errors"

// Constants for title chunking parameters
const (
	defaultMinChunkLen = 4
	defaultMaxChunkLen = 8

	// chunk lengths are counted in runes
	maxAllowedChunkLen = 64
)

var (
	ErrInvalidChunkLen   = errors.New("invalid chunk length")
	ErrNilDictionary     = errors.New("dictionary cannot be nil")
	ErrMissingSourceText = errors.New("document has no content")
)

// Token is one unit of a tokenized segment: either a dictionary term or a
// single rune that no term covered.
type Token struct {
	Text     string
	Len      int
	Category bool
}

// chunkingParameters holds the effective length bounds for one splitter.
type chunkingParameters struct {
	MinChunkLen int
	MaxChunkLen int
}
