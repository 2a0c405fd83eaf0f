// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package security holds matched sensitive values outside of Go strings so they can
// be scrubbed once a report has been produced.
package security

import "unicode/utf8"

// SecureString wraps a sensitive value with best-effort memory scrubbing on Clear.
//
// The garbage collector may copy memory at any time and every String call creates
// an immutable copy, so Clear narrows the window of exposure without guaranteeing
// that no copy survives.
type SecureString struct {
	data []byte
}

// NewSecureString copies s into a mutable byte slice.
func NewSecureString(s string) *SecureString {
	data := make([]byte, len(s))
	copy(data, s)
	return &SecureString{data: data}
}

// String returns the value. A nil or cleared SecureString is "".
func (ss *SecureString) String() string {
	if ss == nil {
		return ""
	}
	return string(ss.data)
}

// Prefix returns at most n leading runes of the value, for reports that must hint
// at a value without repeating it.
func (ss *SecureString) Prefix(n int) string {
	if ss == nil {
		return ""
	}
	end := 0
	for i := 0; i < n && end < len(ss.data); i++ {
		_, size := utf8.DecodeRune(ss.data[end:])
		end += size
	}
	return string(ss.data[:end])
}

// Len is the length of the value in bytes.
func (ss *SecureString) Len() int {
	if ss == nil {
		return 0
	}
	return len(ss.data)
}

// Clear zeroes the value and releases it. Calling it twice is harmless.
func (ss *SecureString) Clear() {
	if ss == nil || ss.data == nil {
		return
	}
	for i := range ss.data {
		ss.data[i] = 0
	}
	ss.data = nil
}
