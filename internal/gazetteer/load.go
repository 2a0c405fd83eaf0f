// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package gazetteer

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DefaultFileName is the conventional name of the JSON names library.
const DefaultFileName = "cz_names.v1.json"

// ErrNotFound is returned by Locate when no candidate path exists.
var ErrNotFound = errors.New("names library not found")

// namesLibrary is the JSON layout of the names library. Names under firstnames are
// display forms; names under firstnames_no_diac are already in matching form.
type namesLibrary struct {
	FirstNames       map[string][]string `json:"firstnames"`
	FirstNamesNoDiac map[string][]string `json:"firstnames_no_diac"`
}

// LoadJSON reads a names library.
func LoadJSON(r io.Reader) (*Gazetteer, error) {
	var lib namesLibrary
	if err := json.NewDecoder(r).Decode(&lib); err != nil {
		return nil, fmt.Errorf("failed to decode names library: %w", err)
	}
	g := New()
	for _, gender := range []string{"M", "F"} {
		for _, name := range lib.FirstNames[gender] {
			g.Add(name)
		}
		for _, name := range lib.FirstNamesNoDiac[gender] {
			g.addNormalized(strings.ToLower(strings.TrimSpace(name)))
		}
	}
	return g, nil
}

// LoadCSV reads names from the first column of a CSV file. Lines starting with '#'
// are comments; a header row whose first cell is "name" or "jmeno" is skipped.
// encoding is any WHATWG label ("utf-8", "windows-1250", "iso-8859-2"); empty means
// UTF-8.
func LoadCSV(r io.Reader, encoding string) (*Gazetteer, error) {
	if encoding != "" && !strings.EqualFold(encoding, "utf-8") && !strings.EqualFold(encoding, "utf8") {
		enc, err := htmlindex.Get(encoding)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", encoding, err)
		}
		r = transform.NewReader(r, enc.NewDecoder())
	}

	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	g := New()
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read names csv: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		cell := strings.TrimSpace(record[0])
		if first {
			first = false
			if h := strings.ToLower(cell); h == "name" || h == "jmeno" || h == "jméno" {
				continue
			}
		}
		g.Add(cell)
	}
	return g, nil
}

// LoadFile loads a names file. format is "json", "csv" or "auto" (by extension).
func LoadFile(path, format, encoding string) (*Gazetteer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open names file: %w", err)
	}
	defer f.Close()

	if format == "" || format == "auto" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv", ".txt":
			format = "csv"
		default:
			format = "json"
		}
	}

	switch format {
	case "json":
		return LoadJSON(f)
	case "csv":
		return LoadCSV(f, encoding)
	default:
		return nil, fmt.Errorf("unknown names file format %q", format)
	}
}

// Locate resolves a names file. An absolute or existing relative path is used as is;
// a bare file name is looked up next to the executable and then in the working
// directory.
func Locate(name string) (string, error) {
	if name == "" {
		name = DefaultFileName
	}
	if fileExists(name) {
		return name, nil
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	var candidates []string
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), name))
	}
	if wd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(wd, name))
	}
	for _, c := range candidates {
		if fileExists(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Options selects where names come from.
type Options struct {
	Path        string
	Format      string
	Encoding    string
	UseEmbedded bool
}

// Load assembles the gazetteer from the embedded list and an optional names file.
// A missing or unreadable file is not fatal: the returned warnings describe it and
// the result holds whatever could be loaded, possibly nothing.
func Load(opts Options) (*Gazetteer, []string) {
	var warnings []string
	g := New()

	if opts.UseEmbedded {
		if emb, err := Embedded(); err != nil {
			warnings = append(warnings, fmt.Sprintf("embedded names unavailable: %v", err))
		} else {
			g.Merge(emb)
		}
	}

	path, err := Locate(opts.Path)
	if err != nil {
		// the default library is optional when the embedded list is in use
		if opts.Path != "" || !opts.UseEmbedded {
			warnings = append(warnings, fmt.Sprintf("%v; name detection will be limited", err))
		}
		return g, warnings
	}

	loaded, err := LoadFile(path, opts.Format, opts.Encoding)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("names file %s ignored: %v", path, err))
		return g, warnings
	}
	g.Merge(loaded)
	return g, warnings
}
