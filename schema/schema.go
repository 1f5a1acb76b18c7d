package schema

import (
	"context"
)

type Document struct {
	PageContent string
	Metadata    map[string]any
}

func (d Document) String() string {
	return d.PageContent
}

func NewDocument(content string, metadata map[string]any) Document {
	if metadata == nil {
		metadata = make(map[string]any)
	}
	return Document{
		PageContent: content,
		Metadata:    metadata,
	}
}

// TextFetcher retrieves the body of a URL as text.
type TextFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}
