// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package gazetteer

import (
	"bufio"
	"bytes"
	"compress/gzip"
	_ "embed"
	"fmt"
	"strings"
	"sync"
)

// Embedded compressed list of common Czech first names, one per line.
//
//go:embed data/first_names.txt.gz
var firstNamesDataGZ []byte

var (
	embedded     *Gazetteer
	embeddedOnce sync.Once
	embeddedErr  error
)

// Embedded returns the built-in first-name list. The data is decompressed once.
func Embedded() (*Gazetteer, error) {
	embeddedOnce.Do(func() {
		embedded, embeddedErr = loadEmbedded(firstNamesDataGZ)
	})
	return embedded, embeddedErr
}

func loadEmbedded(compressed []byte) (*Gazetteer, error) {
	reader, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer reader.Close()

	g := New()
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			g.Add(name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read embedded names: %w", err)
	}
	return g, nil
}
