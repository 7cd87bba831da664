package htmlsanitize

import (
	"bytes"
	"errors"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Raw HTML in the source is passed through; the output is meant to be fed to
// a Cleaner.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
		extension.Linkify,
	),
	goldmark.WithRendererOptions(
		gmhtml.WithUnsafe(),
	),
)

// MarkdownToRawHTML converts src to unsanitized HTML.
func MarkdownToRawHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", errors.Join(ErrRenderMarkdown, err)
	}
	return buf.String(), nil
}

// CleanMarkdown renders src and sanitizes the result.
func (c *Cleaner) CleanMarkdown(src string) (string, error) {
	raw, err := MarkdownToRawHTML(src)
	if err != nil {
		return "", err
	}
	return c.Clean(raw)
}
