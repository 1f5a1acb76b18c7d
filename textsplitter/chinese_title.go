package textsplitter

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"unicode/utf8"

	"github.com/sevigo/listingkit/dictionary"
	"github.com/sevigo/listingkit/schema"
)

// ChineseTitle splits an unspaced run of Chinese characters into short
// groups for display in a product title. Dictionary terms are never split
// and category terms always end the group they are in.
//
// ChineseTitle is immutable after construction and safe for concurrent use.
type ChineseTitle struct {
	dict      *dictionary.Dictionary
	logger    *slog.Logger
	params    chunkingParameters
	separator string
}

var _ TextSplitter = (*ChineseTitle)(nil)

// NewChineseTitle creates a title splitter over dict.
func NewChineseTitle(dict *dictionary.Dictionary, logger *slog.Logger, opts ...Option) (*ChineseTitle, error) {
	if dict == nil {
		return nil, ErrNilDictionary
	}
	if logger == nil {
		logger = slog.Default()
	}

	o := options{
		minChunkLen: defaultMinChunkLen,
		maxChunkLen: defaultMaxChunkLen,
		separator:   " ",
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := validateOptions(o); err != nil {
		return nil, err
	}

	return &ChineseTitle{
		dict:   dict,
		logger: logger.With("component", "chinese_title_splitter"),
		params: chunkingParameters{
			MinChunkLen: o.minChunkLen,
			MaxChunkLen: o.maxChunkLen,
		},
		separator: o.separator,
	}, nil
}

// Dictionary returns the dictionary the splitter was built with.
func (c *ChineseTitle) Dictionary() *dictionary.Dictionary {
	return c.dict
}

// Chunk partitions segment. The returned chunks always concatenate to
// segment; when no valid partition exists segment comes back whole.
func (c *ChineseTitle) Chunk(segment string) []string {
	if utf8.RuneCountInString(segment) <= c.params.MaxChunkLen {
		return []string{segment}
	}

	tokens := Tokenize(c.dict, segment)
	if totalLen(tokens) <= c.params.MaxChunkLen {
		return []string{segment}
	}

	if chunks, ok := partition(tokens, c.params, false); ok {
		return chunks
	}
	if chunks, ok := partition(tokens, c.params, true); ok {
		return chunks
	}

	c.logger.Debug("No valid partition, keeping segment whole", "segment", segment, "tokens", len(tokens))
	return []string{segment}
}

// SplitText chunks text. It never fails.
func (c *ChineseTitle) SplitText(_ context.Context, text string) ([]string, error) {
	return c.Chunk(text), nil
}

// Join chunks segment and joins the result with the configured separator.
func (c *ChineseTitle) Join(segment string) string {
	return strings.Join(c.Chunk(segment), c.separator)
}

// SplitDocuments chunks the content of each document. Every chunk becomes a
// document that inherits the source metadata plus a "chunk_index".
func (c *ChineseTitle) SplitDocuments(ctx context.Context, docs []schema.Document) ([]schema.Document, error) {
	finalDocs := make([]schema.Document, 0, len(docs))
	for _, doc := range docs {
		chunks, err := c.splitSingleDocument(doc)
		if err != nil {
			c.logger.WarnContext(ctx, "Could not split document, using original.", "source", doc.Metadata["source"], "error", err)
			finalDocs = append(finalDocs, doc)
			continue
		}
		finalDocs = append(finalDocs, chunks...)
	}
	return finalDocs, nil
}

func (c *ChineseTitle) splitSingleDocument(doc schema.Document) ([]schema.Document, error) {
	if doc.PageContent == "" {
		return nil, fmt.Errorf("%w: source %v", ErrMissingSourceText, doc.Metadata["source"])
	}

	chunks := c.Chunk(doc.PageContent)
	splitDocs := make([]schema.Document, 0, len(chunks))
	for i, chunk := range chunks {
		newMetadata := make(map[string]any, len(doc.Metadata)+1)
		maps.Copy(newMetadata, doc.Metadata)
		newMetadata["chunk_index"] = i
		splitDocs = append(splitDocs, schema.NewDocument(chunk, newMetadata))
	}
	return splitDocs, nil
}
