// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package markdown provides a label converter that converts Markdown labels
// to HTML.
package markdown

import (
	"bytes"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Converter converts Markdown labels to HTML.
type Converter struct {
	md goldmark.Markdown
}

// New returns a new Converter. Raw HTML in the labels is omitted.
func New() *Converter {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
		goldmark.WithParserOptions(parser.WithAttribute()),
	)
	return &Converter{md: md}
}

// Convert converts the Markdown label src to HTML and writes it to out.
// A label made of a single paragraph is written without the enclosing
// paragraph element, so it can be placed inline.
func (c *Converter) Convert(src []byte, out io.Writer) error {
	var b bytes.Buffer
	if err := c.md.Convert(src, &b); err != nil {
		return err
	}
	html := bytes.TrimSuffix(b.Bytes(), []byte("\n"))
	if inner, ok := paragraph(html); ok {
		html = inner
	}
	_, err := out.Write(html)
	return err
}

// paragraph returns the content of html if it is a single paragraph.
func paragraph(html []byte) ([]byte, bool) {
	if !bytes.HasPrefix(html, []byte("<p>")) || !bytes.HasSuffix(html, []byte("</p>")) {
		return nil, false
	}
	inner := html[len("<p>") : len(html)-len("</p>")]
	if bytes.Contains(inner, []byte("<p>")) {
		return nil, false
	}
	return inner, true
}
