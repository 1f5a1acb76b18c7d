package listing

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Line breaks inside a paragraph are kept, since sellers write one fact per
// line.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
		html.WithXHTML(),
	),
)

// MarkdownToHTML renders a Markdown description as rich-text HTML.
func MarkdownToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// ApplyDescriptionMarkdown renders src and wraps it like ApplyDescriptionHTML.
func ApplyDescriptionMarkdown(src string, profile StoreProfile) (string, error) {
	body, err := MarkdownToHTML(src)
	if err != nil {
		return "", err
	}
	return ApplyDescriptionHTML(body, profile), nil
}
