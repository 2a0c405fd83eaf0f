// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// DOCX is a Word document. The package is kept in memory; only the XML parts that
// carry paragraphs are rewritten on save, every other entry is copied unchanged.
type DOCX struct {
	entries []*docxEntry
	parts   []*docxPart
}

type docxEntry struct {
	header zip.FileHeader
	data   []byte
	part   *docxPart
}

// docxPart is one XML part with its paragraphs located by byte offsets.
type docxPart struct {
	name       string
	data       []byte
	paragraphs []*docxParagraph
}

type docxParagraph struct {
	part *docxPart

	start, end int
	openTag    string
	props      string
	nested     bool

	text    string
	newText string
	dirty   bool
}

func (p *docxParagraph) Text() string {
	if p.dirty {
		return p.newText
	}
	return p.text
}

// SetText replaces the runs of the paragraph. Paragraphs that hold other paragraphs
// (text boxes) are left alone so the inner content survives.
func (p *docxParagraph) SetText(text string) {
	if p.nested || text == p.Text() {
		return
	}
	p.newText = text
	p.dirty = true
}

// isParagraphPart selects the main document, headers, footers, footnotes and
// endnotes.
func isParagraphPart(name string) bool {
	if !strings.HasPrefix(name, "word/") || !strings.HasSuffix(name, ".xml") || strings.Count(name, "/") != 1 {
		return false
	}
	base := strings.TrimSuffix(strings.TrimPrefix(name, "word/"), ".xml")
	switch {
	case base == "document", base == "footnotes", base == "endnotes":
		return true
	case strings.HasPrefix(base, "header"), strings.HasPrefix(base, "footer"):
		return true
	}
	return false
}

// partOrder puts the main document first, then headers, footers and notes.
func partOrder(name string) int {
	switch {
	case name == "word/document.xml":
		return 0
	case strings.HasPrefix(name, "word/header"):
		return 1
	case strings.HasPrefix(name, "word/footer"):
		return 2
	default:
		return 3
	}
}

// OpenDOCX reads a Word document.
func OpenDOCX(path string) (*DOCX, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open DOCX archive: %w", err)
	}
	defer reader.Close()

	doc := &DOCX{}
	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
		}

		entry := &docxEntry{header: file.FileHeader, data: data}
		if isParagraphPart(file.Name) {
			part, err := parseDOCXPart(file.Name, data)
			if err != nil {
				return nil, err
			}
			entry.part = part
			doc.parts = append(doc.parts, part)
		}
		doc.entries = append(doc.entries, entry)
	}
	if len(doc.parts) == 0 {
		return nil, fmt.Errorf("%w: no word/document.xml in %s", ErrUnsupported, path)
	}
	sort.SliceStable(doc.parts, func(i, j int) bool {
		return partOrder(doc.parts[i].name) < partOrder(doc.parts[j].name)
	})
	return doc, nil
}

func (d *DOCX) Format() Format { return FormatDOCX }

func (d *DOCX) Paragraphs() []Paragraph {
	var out []Paragraph
	for _, part := range d.parts {
		for _, p := range part.paragraphs {
			out = append(out, p)
		}
	}
	return out
}

// Save writes the package with the entries in their original order.
func (d *DOCX) Save(path string) error {
	return writeAtomic(path, func(w io.Writer) error {
		zw := zip.NewWriter(w)
		for _, entry := range d.entries {
			data := entry.data
			if entry.part != nil {
				data = entry.part.render()
			}
			header := entry.header
			fw, err := zw.CreateHeader(&header)
			if err != nil {
				return fmt.Errorf("failed to create ZIP entry for %s: %w", header.Name, err)
			}
			if _, err := fw.Write(data); err != nil {
				return fmt.Errorf("failed to write content for %s: %w", header.Name, err)
			}
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("failed to finish DOCX archive: %w", err)
		}
		return nil
	})
}

// paragraphFrame tracks one open <w:p> while a part is scanned.
type paragraphFrame struct {
	para      *docxParagraph
	depth     int
	runDepth  int
	inText    bool
	propStart int
	text      strings.Builder
}

func isW(name xml.Name, local string) bool {
	return name.Space == "w" && name.Local == local
}

// parseDOCXPart locates every <w:p> of a part. The text of a paragraph is the
// content of its own runs, with <w:tab/> read as a tab and <w:br/> as a line break.
func parseDOCXPart(name string, data []byte) (*docxPart, error) {
	part := &docxPart{name: name, data: data}
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false

	var stack []*paragraphFrame
	depth := 0
	for {
		offset := int(dec.InputOffset())
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		var top *paragraphFrame
		if len(stack) > 0 {
			top = stack[len(stack)-1]
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case isW(t.Name, "p"):
				if top != nil {
					top.para.nested = true
				}
				p := &docxParagraph{part: part, start: offset}
				p.openTag = string(data[offset:int(dec.InputOffset())])
				stack = append(stack, &paragraphFrame{para: p, depth: depth, propStart: -1})
				part.paragraphs = append(part.paragraphs, p)
			case top == nil:
			case isW(t.Name, "pPr") && depth == top.depth+1:
				top.propStart = offset
			case isW(t.Name, "r"):
				top.runDepth++
			case isW(t.Name, "t") && top.runDepth > 0:
				top.inText = true
			case isW(t.Name, "tab") && top.runDepth > 0:
				top.text.WriteByte('\t')
			case (isW(t.Name, "br") || isW(t.Name, "cr")) && top.runDepth > 0:
				top.text.WriteByte('\n')
			}
		case xml.EndElement:
			switch {
			case top == nil:
			case isW(t.Name, "p") && depth == top.depth:
				top.para.end = int(dec.InputOffset())
				top.para.text = top.text.String()
				stack = stack[:len(stack)-1]
			case isW(t.Name, "pPr") && depth == top.depth+1 && top.propStart >= 0:
				top.para.props = string(data[top.propStart:int(dec.InputOffset())])
			case isW(t.Name, "r") && top.runDepth > 0:
				top.runDepth--
			case isW(t.Name, "t"):
				top.inText = false
			}
			depth--
		case xml.CharData:
			if top != nil && top.inText {
				top.text.Write(t)
			}
		}
	}
	return part, nil
}

// render rebuilds the part with every changed paragraph replaced by its properties
// and one run.
func (part *docxPart) render() []byte {
	var buf bytes.Buffer
	pos := 0
	for _, p := range part.paragraphs {
		if !p.dirty || p.start < pos {
			continue
		}
		buf.Write(part.data[pos:p.start])
		open := p.openTag
		if strings.HasSuffix(open, "/>") {
			open = strings.TrimSuffix(open, "/>") + ">"
		}
		buf.WriteString(open)
		buf.WriteString(p.props)
		writeRun(&buf, p.newText)
		buf.WriteString("</w:p>")
		pos = p.end
	}
	buf.Write(part.data[pos:])
	return buf.Bytes()
}

// writeRun emits text as a single run, turning tabs and line breaks back into their
// elements.
func writeRun(buf *bytes.Buffer, text string) {
	if text == "" {
		return
	}
	buf.WriteString("<w:r>")
	var seg strings.Builder
	flush := func() {
		if seg.Len() == 0 {
			return
		}
		buf.WriteString(`<w:t xml:space="preserve">`)
		xml.EscapeText(buf, []byte(seg.String()))
		buf.WriteString("</w:t>")
		seg.Reset()
	}
	for _, r := range text {
		switch r {
		case '\t':
			flush()
			buf.WriteString("<w:tab/>")
		case '\n':
			flush()
			buf.WriteString("<w:br/>")
		default:
			seg.WriteRune(r)
		}
	}
	flush()
	buf.WriteString("</w:r>")
}
