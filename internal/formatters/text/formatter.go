// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"czanon/internal/formatters"
	"czanon/internal/registry"

	"github.com/fatih/color"
)

// sectionTitles are the report headings, one per category.
var sectionTitles = map[registry.Category]string{
	registry.Person:        "OSOBY",
	registry.BirthID:       "RODNÁ ČÍSLA",
	registry.ICO:           "IČO",
	registry.DIC:           "DIČ",
	registry.EmpID:         "OSOBNÍ ČÍSLA ZAMĚSTNANCŮ",
	registry.Bank:          "BANKOVNÍ ÚČTY",
	registry.IBAN:          "IBAN",
	registry.BIC:           "BIC/SWIFT",
	registry.Card:          "PLATEBNÍ KARTY",
	registry.Phone:         "TELEFONY",
	registry.Email:         "EMAILY",
	registry.IDCard:        "OBČANSKÉ PRŮKAZY",
	registry.DriverLicense: "ŘIDIČSKÉ PRŮKAZY",
	registry.LicensePlate:  "POZNÁVACÍ ZNAČKY (SPZ/RZ)",
	registry.VIN:           "VIN (VOZIDLA)",
	registry.InsuranceID:   "ČÍSLA POJIŠTĚNCŮ",
	registry.RFID:          "RFID KARTY",
	registry.IP:            "IP ADRESY",
	registry.Username:      "USERNAMES/ÚČTY",
	registry.Password:      "HESLA",
	registry.APIKey:        "API KLÍČE",
	registry.Amount:        "ČÁSTKY",
	registry.Date:          "DATA",
	registry.Address:       "ADRESY",
	registry.Place:         "MÍSTA NAROZENÍ",
}

// Title returns the report heading of a category.
func Title(c registry.Category) string {
	if t, ok := sectionTitles[c]; ok {
		return t
	}
	return string(c)
}

// Formatter writes the grouped human-readable report
type Formatter struct{}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable report grouped by category"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

// Format writes one section per category that has tags. Person sections list the
// canonical name on the tag line and the other recorded forms indented below it.
func (f *Formatter) Format(report formatters.Report, options formatters.FormatterOptions) (string, error) {
	heading := color.New(color.FgCyan, color.Bold)
	tagColor := color.New(color.FgYellow)
	if options.NoColor {
		heading.DisableColor()
		tagColor.DisableColor()
	} else {
		heading.EnableColor()
		tagColor.EnableColor()
	}

	tags := make([]string, 0, len(report.TagMap))
	for tag := range report.TagMap {
		tags = append(tags, tag)
	}
	tags = registry.SortedTags(tags)

	var builder strings.Builder
	for _, c := range registry.Categories {
		var items []string
		for _, tag := range tags {
			if !registry.HasCategory(tag, c) {
				continue
			}
			values := report.TagMap[tag]
			if c == registry.Person && len(values) > 0 {
				items = append(items, fmt.Sprintf("%s: %s", tagColor.Sprint(tag), values[0]))
				for _, v := range values[1:] {
					items = append(items, "  - "+v)
				}
				continue
			}
			for _, v := range values {
				items = append(items, fmt.Sprintf("%s: %s", tagColor.Sprint(tag), v))
			}
		}
		if len(items) == 0 {
			continue
		}
		title := Title(c)
		builder.WriteString(heading.Sprint(title))
		builder.WriteString("\n")
		builder.WriteString(strings.Repeat("-", utf8.RuneCountInString(title)))
		builder.WriteString("\n")
		builder.WriteString(strings.Join(items, "\n"))
		builder.WriteString("\n\n")
	}
	return builder.String(), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
