// token.go: The Token abstraction format patterns compile into
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

import "strings"

// RequiredField identifies a LogRecord field a token or sink needs
// populated before it can render or accept a record.
type RequiredField int

// The fields a token can declare a dependency on.
const (
	FieldNone RequiredField = iota
	FieldTimestamp
	FieldProcessID
	FieldThread
	FieldClass
	FieldMethod
	FieldFile
	FieldLine
	FieldLevel
	FieldMessage
	FieldException
)

// RequiredFieldSet is a small bitset of RequiredField values, cheap enough
// to compute per level and union across every active sink.
type RequiredFieldSet uint32

// Add returns the set with f included.
func (s RequiredFieldSet) Add(f RequiredField) RequiredFieldSet {
	if f == FieldNone {
		return s
	}
	return s | (1 << uint(f))
}

// Has reports whether f is present in the set.
func (s RequiredFieldSet) Has(f RequiredField) bool {
	return s&(1<<uint(f)) != 0
}

// Union returns the set containing every field in either s or other.
func (s RequiredFieldSet) Union(other RequiredFieldSet) RequiredFieldSet {
	return s | other
}

// NeedsCaller reports whether any class/method/file/line field is set,
// the trigger for the dispatcher to acquire a caller frame at all.
func (s RequiredFieldSet) NeedsCaller() bool {
	return s.Has(FieldClass) || s.Has(FieldMethod) || s.Has(FieldFile) || s.Has(FieldLine)
}

// NeedsFullFrame reports whether method/file/line are needed, which forces
// a full caller-frame resolution rather than the class-name-only fast path.
func (s RequiredFieldSet) NeedsFullFrame() bool {
	return s.Has(FieldMethod) || s.Has(FieldFile) || s.Has(FieldLine)
}

// Token renders one piece of a format pattern's output for a LogRecord into
// a reusable buffer, and declares which record fields it depends on so the
// dispatcher can skip acquiring fields nothing asks for.
type Token interface {
	// Render appends this token's text for record into buf.
	Render(buf *strings.Builder, record *LogRecord)
	// RequiredFields returns the record fields this token consumes.
	RequiredFields() RequiredFieldSet
}

// literalToken renders a fixed run of pattern text verbatim.
type literalToken struct{ text string }

func (t literalToken) Render(buf *strings.Builder, _ *LogRecord) { buf.WriteString(t.text) }
func (t literalToken) RequiredFields() RequiredFieldSet          { return 0 }

// FormatPattern is a precompiled sequence of tokens. Rendering it against a
// record concatenates every token's output, in order.
type FormatPattern struct {
	tokens   []Token
	required RequiredFieldSet
}

// Render concatenates every token's rendering for record into buf.
func (p *FormatPattern) Render(buf *strings.Builder, record *LogRecord) {
	for _, t := range p.tokens {
		t.Render(buf, record)
	}
}

// RequiredFields returns the union of every token's required fields.
func (p *FormatPattern) RequiredFields() RequiredFieldSet {
	return p.required
}

// Tokens returns the pattern's compiled token sequence.
func (p *FormatPattern) Tokens() []Token {
	return p.tokens
}
