// pattern_test.go: Test suite for format-pattern compilation and rendering
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

import (
	"strings"
	"testing"
	"time"
)

func TestCompilePatternUnrecognizedToken(t *testing.T) {
	_, err := CompilePattern("{bogus}", -1)
	if err == nil {
		t.Fatal("expected an error for an unrecognized token")
	}
	if GetErrorCode(err) != ErrCodeConfigError {
		t.Errorf("expected ErrCodeConfigError, got %s", GetErrorCode(err))
	}
}

func TestCompilePatternRendersLiteralsAndTokens(t *testing.T) {
	pattern, err := CompilePattern("[{level}] {class_name}: {message}", -1)
	if err != nil {
		t.Fatalf("CompilePattern: %v", err)
	}

	record := &LogRecord{
		Level:           Info,
		Caller:          Caller{Class: "github.com/acme/api/handlers"},
		RenderedMessage: "request handled",
	}

	var buf strings.Builder
	pattern.Render(&buf, record)

	want := "[INFO] handlers: request handled\n"
	if got := buf.String(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestCompilePatternRequiredFieldsUnion(t *testing.T) {
	pattern, err := CompilePattern("{date} {level} {message}", -1)
	if err != nil {
		t.Fatalf("CompilePattern: %v", err)
	}

	required := pattern.RequiredFields()
	for _, f := range []RequiredField{FieldTimestamp, FieldLevel, FieldMessage} {
		if !required.Has(f) {
			t.Errorf("expected required fields to include %d", f)
		}
	}
}

func TestDateTokenCustomLayout(t *testing.T) {
	pattern, err := CompilePattern("{date:yyyy-MM-dd}", -1)
	if err != nil {
		t.Fatalf("CompilePattern: %v", err)
	}

	ts := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	record := &LogRecord{Timestamp: ts}

	var buf strings.Builder
	pattern.Render(&buf, record)

	want := "2026-03-05\n"
	if got := buf.String(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRequiredFieldSet(t *testing.T) {
	var s RequiredFieldSet
	s = s.Add(FieldClass)
	if !s.Has(FieldClass) {
		t.Error("expected FieldClass to be present")
	}
	if s.NeedsFullFrame() {
		t.Error("class alone should not need a full frame")
	}
	if !s.NeedsCaller() {
		t.Error("class alone should still need a caller")
	}

	s = s.Add(FieldLine)
	if !s.NeedsFullFrame() {
		t.Error("expected line to force a full frame")
	}
}
