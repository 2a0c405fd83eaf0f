// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
)

var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "td": true, "th": true, "caption": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"pre": true, "blockquote": true, "dt": true, "dd": true, "address": true,
	"title": true, "figcaption": true, "section": true, "article": true,
	"header": true, "footer": true, "main": true, "aside": true, "tr": true,
	"table": true, "ul": true, "ol": true, "dl": true, "body": true, "form": true,
}

// HTML is an HTML page. Block elements that contain no other block element are its
// paragraphs.
type HTML struct {
	root       *html.Node
	paragraphs []*htmlBlock
}

type htmlBlock struct {
	node *html.Node
}

func (b *htmlBlock) Text() string {
	var sb strings.Builder
	collectText(b.node, &sb)
	return sb.String()
}

// SetText drops the inline markup of the block and keeps one text node.
func (b *htmlBlock) SetText(text string) {
	if text == b.Text() {
		return
	}
	for c := b.node.FirstChild; c != nil; {
		next := c.NextSibling
		b.node.RemoveChild(c)
		c = next
	}
	b.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func collectText(n *html.Node, sb *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			sb.WriteString(c.Data)
		case c.Type == html.ElementNode && (c.Data == "script" || c.Data == "style"):
		case c.Type == html.ElementNode && c.Data == "br":
			sb.WriteString("\n")
		default:
			collectText(c, sb)
		}
	}
}

func hasBlockChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (blockElements[c.Data] || hasBlockChild(c)) {
			return true
		}
	}
	return false
}

// OpenHTML reads an HTML file.
func OpenHTML(path string) (*HTML, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open HTML file: %w", err)
	}
	defer f.Close()
	return ParseHTML(f)
}

// ParseHTML parses an HTML page.
func ParseHTML(r io.Reader) (*HTML, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc := &HTML{root: root}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && blockElements[n.Data] && !hasBlockChild(n) {
			if strings.TrimSpace((&htmlBlock{node: n}).Text()) != "" {
				doc.paragraphs = append(doc.paragraphs, &htmlBlock{node: n})
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return doc, nil
}

func (h *HTML) Format() Format { return FormatHTML }

func (h *HTML) Paragraphs() []Paragraph {
	out := make([]Paragraph, len(h.paragraphs))
	for i, p := range h.paragraphs {
		out[i] = p
	}
	return out
}

func (h *HTML) Render(w io.Writer) error {
	return html.Render(w, h.root)
}

func (h *HTML) Save(path string) error {
	return writeAtomic(path, func(w io.Writer) error {
		if err := h.Render(w); err != nil {
			return fmt.Errorf("failed to render HTML: %w", err)
		}
		return nil
	})
}
