// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package document reads documents as ordered paragraphs and writes them back after
// their text has been replaced. Each format keeps as much of its structure as the
// replacement allows: a rewritten DOCX paragraph keeps its paragraph properties but
// loses its run formatting and hyperlinks.
package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a supported document format.
type Format string

const (
	FormatDOCX Format = "docx"
	FormatText Format = "txt"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// ErrUnsupported is returned for files whose format cannot be read.
var ErrUnsupported = errors.New("unsupported document format")

// Paragraph is one unit of text.
type Paragraph interface {
	Text() string
	// SetText replaces the paragraph content with a single plain run of text.
	SetText(text string)
}

// Document is an ordered collection of paragraphs backed by a file.
type Document interface {
	Format() Format
	// Paragraphs returns every paragraph in document order: body, tables, then
	// headers, footers and notes where the format has them.
	Paragraphs() []Paragraph
	// Save writes the document to path. The file appears atomically.
	Save(path string) error
}

// FormatOf returns the format implied by the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return FormatDOCX, nil
	case ".txt", ".text", ".md":
		return FormatText, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

// OutputExtension is the extension a processed document is saved with. PDF input is
// written as plain text.
func (f Format) OutputExtension() string {
	if f == FormatPDF {
		return ".txt"
	}
	return "." + string(f)
}

// Open reads the document at path.
func Open(path string) (Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatDOCX:
		return OpenDOCX(path)
	case FormatHTML:
		return OpenHTML(path)
	case FormatPDF:
		return OpenPDF(path)
	default:
		return OpenText(path)
	}
}

// Texts returns the text of every paragraph of doc.
func Texts(doc Document) []string {
	paras := doc.Paragraphs()
	out := make([]string, len(paras))
	for i, p := range paras {
		out[i] = p.Text()
	}
	return out
}

// writeAtomic writes to a temporary file next to path and renames it into place, so
// a failed write never leaves a partial document behind.
func writeAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}
