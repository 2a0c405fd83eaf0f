// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Text is a plain text file with one paragraph per line.
type Text struct {
	lines   []*line
	newline string
}

type line struct {
	text string
}

func (l *line) Text() string { return l.text }

func (l *line) SetText(text string) { l.text = text }

// OpenText reads a plain text file. CRLF line endings are kept on save.
func OpenText(path string) (*Text, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}
	return ParseText(string(data)), nil
}

// ParseText splits content into line paragraphs.
func ParseText(content string) *Text {
	t := &Text{newline: "\n"}
	if strings.Contains(content, "\r\n") {
		t.newline = "\r\n"
		content = strings.ReplaceAll(content, "\r\n", "\n")
	}
	for _, s := range strings.Split(content, "\n") {
		t.lines = append(t.lines, &line{text: s})
	}
	return t
}

func (t *Text) Format() Format { return FormatText }

func (t *Text) Paragraphs() []Paragraph {
	out := make([]Paragraph, len(t.lines))
	for i, l := range t.lines {
		out[i] = l
	}
	return out
}

// String joins the lines back together.
func (t *Text) String() string {
	parts := make([]string, len(t.lines))
	for i, l := range t.lines {
		parts[i] = l.text
	}
	return strings.Join(parts, t.newline)
}

func (t *Text) Save(path string) error {
	return writeAtomic(path, func(w io.Writer) error {
		if _, err := io.WriteString(w, t.String()); err != nil {
			return fmt.Errorf("failed to write text file: %w", err)
		}
		return nil
	})
}
