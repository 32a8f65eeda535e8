// tokens_builtin.go: Built-in format-pattern tokens
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

import (
	"strconv"
	"strings"
	"time"
)

// defaultDatePattern is used by the "date" token when no explicit pattern
// option is given.
const defaultDatePattern = "2006-01-02T15:04:05.000Z07:00"

type pidToken struct{}

func (pidToken) Render(buf *strings.Builder, r *LogRecord) { buf.WriteString(r.ProcessID) }
func (pidToken) RequiredFields() RequiredFieldSet          { return RequiredFieldSet(0).Add(FieldProcessID) }

type threadToken struct{}

func (threadToken) Render(buf *strings.Builder, r *LogRecord) { buf.WriteString(r.ThreadName) }
func (threadToken) RequiredFields() RequiredFieldSet {
	return RequiredFieldSet(0).Add(FieldThread)
}

type threadIDToken struct{}

func (threadIDToken) Render(buf *strings.Builder, r *LogRecord) {
	buf.WriteString(strconv.FormatInt(r.ThreadID, 10))
}
func (threadIDToken) RequiredFields() RequiredFieldSet {
	return RequiredFieldSet(0).Add(FieldThread)
}

type classToken struct{}

func (classToken) Render(buf *strings.Builder, r *LogRecord) { buf.WriteString(r.Caller.Class) }
func (classToken) RequiredFields() RequiredFieldSet {
	return RequiredFieldSet(0).Add(FieldClass)
}

type packageToken struct{}

func (packageToken) Render(buf *strings.Builder, r *LogRecord) { buf.WriteString(r.Caller.Package()) }
func (packageToken) RequiredFields() RequiredFieldSet {
	return RequiredFieldSet(0).Add(FieldClass)
}

type classNameToken struct{}

func (classNameToken) Render(buf *strings.Builder, r *LogRecord) {
	buf.WriteString(r.Caller.ClassName())
}
func (classNameToken) RequiredFields() RequiredFieldSet {
	return RequiredFieldSet(0).Add(FieldClass)
}

type methodToken struct{}

func (methodToken) Render(buf *strings.Builder, r *LogRecord) { buf.WriteString(r.Caller.Method) }
func (methodToken) RequiredFields() RequiredFieldSet {
	return RequiredFieldSet(0).Add(FieldMethod)
}

type fileToken struct{}

func (fileToken) Render(buf *strings.Builder, r *LogRecord) { buf.WriteString(r.Caller.File) }
func (fileToken) RequiredFields() RequiredFieldSet {
	return RequiredFieldSet(0).Add(FieldFile)
}

type lineToken struct{}

func (lineToken) Render(buf *strings.Builder, r *LogRecord) {
	buf.WriteString(strconv.Itoa(r.Caller.Line))
}
func (lineToken) RequiredFields() RequiredFieldSet {
	return RequiredFieldSet(0).Add(FieldLine)
}

type levelToken struct{}

func (levelToken) Render(buf *strings.Builder, r *LogRecord) { buf.WriteString(r.Level.String()) }
func (levelToken) RequiredFields() RequiredFieldSet {
	return RequiredFieldSet(0).Add(FieldLevel)
}

// dateToken renders the record timestamp using a Go reference-time layout
// translated from the pattern's date option, or defaultDatePattern if none
// was given.
type dateToken struct{ layout string }

func newDateToken(option string) dateToken {
	if option == "" {
		return dateToken{layout: defaultDatePattern}
	}
	return dateToken{layout: translateDateLayout(option)}
}

func (t dateToken) Render(buf *strings.Builder, r *LogRecord) {
	buf.WriteString(r.Timestamp.Format(t.layout))
}
func (dateToken) RequiredFields() RequiredFieldSet {
	return RequiredFieldSet(0).Add(FieldTimestamp)
}

// translateDateLayout maps a small set of common Java/Joda-style date
// pattern letters onto Go's reference-time layout, covering the patterns
// the testable properties exercise (e.g. "yyyy"). Unrecognized characters
// pass through unchanged, so a caller who already wrote a Go layout still
// gets sensible output.
func translateDateLayout(pattern string) string {
	replacer := strings.NewReplacer(
		"yyyy", "2006",
		"yy", "06",
		"MM", "01",
		"dd", "02",
		"HH", "15",
		"mm", "04",
		"ss", "05",
		"SSS", "000",
	)
	return replacer.Replace(pattern)
}

// messageToken renders the record's rendered message, followed by the
// attached exception's stack trace (bounded by maxStackTraceElements) when
// one is present.
type messageToken struct{ maxStackTraceElements int }

func (t messageToken) Render(buf *strings.Builder, r *LogRecord) {
	buf.WriteString(r.RenderedMessage)
	if r.Exception != nil {
		if trace := exceptionStackTrace(2, t.maxStackTraceElements); trace != "" {
			buf.WriteByte('\n')
			buf.WriteString(trace)
		}
	}
}

func (messageToken) RequiredFields() RequiredFieldSet {
	return RequiredFieldSet(0).Add(FieldMessage).Add(FieldException)
}

// lineTerminatorToken appends the platform line terminator, the implicit
// final token every compiled pattern carries per §4.1 step 7.
type lineTerminatorToken struct{}

func (lineTerminatorToken) Render(buf *strings.Builder, _ *LogRecord) { buf.WriteByte('\n') }
func (lineTerminatorToken) RequiredFields() RequiredFieldSet          { return 0 }
