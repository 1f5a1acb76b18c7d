package textsplitter

// options holds configuration settings for the title splitter.
type options struct {
	minChunkLen int
	maxChunkLen int
	separator   string
}

// Option is a function type for configuring the splitter.
type Option func(*options)

// WithMinChunkLen sets the shortest chunk, in runes, the strict pass accepts.
func WithMinChunkLen(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.minChunkLen = n
		}
	}
}

// WithMaxChunkLen sets the longest chunk, in runes. Segments at or under this
// length are never split.
func WithMaxChunkLen(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxChunkLen = n
		}
	}
}

// WithSeparator sets the string Join puts between chunks.
func WithSeparator(sep string) Option {
	return func(o *options) {
		o.separator = sep
	}
}
