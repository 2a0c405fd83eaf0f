// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"regexp"
	"strconv"
	"strings"
)

// Category is the kind of personal data a tag stands for.
type Category string

const (
	Person        Category = "PERSON"
	Address       Category = "ADDRESS"
	Place         Category = "PLACE"
	Date          Category = "DATE"
	BirthID       Category = "BIRTH_ID"
	IDCard        Category = "ID_CARD"
	ICO           Category = "ICO"
	DIC           Category = "DIC"
	EmpID         Category = "EMP_ID"
	Bank          Category = "BANK"
	IBAN          Category = "IBAN"
	BIC           Category = "BIC"
	Card          Category = "CARD"
	Phone         Category = "PHONE"
	Email         Category = "EMAIL"
	DriverLicense Category = "DRIVER_LICENSE"
	LicensePlate  Category = "LICENSE_PLATE"
	VIN           Category = "VIN"
	InsuranceID   Category = "INSURANCE_ID"
	RFID          Category = "RFID"
	IP            Category = "IP"
	Username      Category = "USERNAME"
	Password      Category = "PASSWORD"
	APIKey        Category = "API_KEY"
	Amount        Category = "AMOUNT"
)

// Categories lists every category in report order.
var Categories = []Category{
	Person, BirthID, ICO, DIC, EmpID, Bank, IBAN, BIC, Card, Phone, Email, IDCard,
	DriverLicense, LicensePlate, VIN, InsuranceID, RFID, IP, Username, Password,
	APIKey, Amount, Date, Address, Place,
}

// IsSecret reports whether values of the category must never be stored.
func (c Category) IsSecret() bool {
	return c == Password || c == APIKey
}

// SecretPlaceholder is the only value ever stored for a secret tag.
const SecretPlaceholder = "********"

// Tag renders the placeholder token of the n-th tag of the category.
func Tag(c Category, n int) string {
	return "[[" + string(c) + "_" + strconv.Itoa(n) + "]]"
}

// TagPattern matches any rendered tag; group 1 is the category, group 2 the number.
var TagPattern = regexp.MustCompile(`\[\[([A-Z]+(?:_[A-Z]+)*)_(\d+)\]\]`)

// ParseTag splits a rendered tag.
func ParseTag(tag string) (Category, int, bool) {
	m := TagPattern.FindStringSubmatch(tag)
	if m == nil || m[0] != tag {
		return "", 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return Category(m[1]), n, true
}

// HasCategory reports whether tag belongs to c.
func HasCategory(tag string, c Category) bool {
	return strings.HasPrefix(tag, "[["+string(c)+"_")
}
