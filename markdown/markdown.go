// Package markdown converts article bodies to HTML.
//
// Parsing is delegated to goldmark with the GFM extension set, so tables,
// fenced code blocks, strikethrough, and autolinks all work the way article
// authors expect.
package markdown

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var engine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithUnsafe(),
	),
)

// Render converts md to HTML.
func Render(md string) (string, error) {
	var buf bytes.Buffer
	if err := engine.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Component returns a templ.Component that renders md as HTML.
func Component(md string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		html, err := Render(md)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, html)
		return err
	})
}
