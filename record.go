// record.go: The immutable log record assembled by the dispatcher
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

import "time"

// Caller identifies the user source site an emission is attributed to.
//
// A Caller is produced by one of the strategies in the stack-frame provider
// ladder (see caller.go) and is always attached to a fully resolved
// class/package/method/file/line tuple, even when only partial information
// could be captured cheaply — unresolved fields fall back to sentinel
// values ("<unknown>", line -1) rather than being left zero-valued, so
// tokens can render them unconditionally.
type Caller struct {
	// Class is the caller's fully qualified Go import path, standing in for
	// spec.md's "class" (Go has no classes; see SPEC_FULL.md GLOSSARY).
	Class string
	// Method is the function name, unqualified.
	Method string
	// File is the absolute or relative source file path.
	File string
	// Line is the 1-based source line, or -1 if unknown.
	Line int
	// OnlyClassName reports whether Method/File/Line were left unresolved
	// because the caller only asked for the class name (the fast path of
	// §4.2 strategy 2).
	OnlyClassName bool
}

// Package returns the package portion of Class (everything but the last
// path element), or "" for a top-level caller.
func (c Caller) Package() string {
	idx := lastSlash(c.Class)
	if idx < 0 {
		return ""
	}
	return c.Class[:idx]
}

// ClassName returns the unqualified last element of Class.
func (c Caller) ClassName() string {
	idx := lastSlash(c.Class)
	if idx < 0 {
		return c.Class
	}
	return c.Class[idx+1:]
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}

// LogRecord is the immutable value every sink receives.
//
// All fields except Level are optional: the dispatcher only populates the
// fields that Configuration.RequiredFields(level) demands for the record's
// level (spec.md §4.1 step 4). A field's presence is therefore gated by
// what the active sinks declared they need, not by what was technically
// available to capture.
//
// LogRecord is born fully populated in dispatcher assembly and is never
// mutated after a sink first sees it; per-sink rendering produces a
// logically distinct Text for each sink rather than editing the shared
// record.
type LogRecord struct {
	// Level is the only field guaranteed to be present.
	Level Level

	Timestamp  time.Time
	ProcessID  string
	ThreadName string
	ThreadID   int64

	Caller Caller

	// Message is the raw value passed to the emission call (a string,
	// arbitrary value, or absent — MessagePresent reports which).
	Message        interface{}
	MessagePresent bool

	// RenderedMessage is Message after placeholder substitution / textual
	// conversion (spec.md §4.1 step 5).
	RenderedMessage string

	// Exception is the attached error, after running through the
	// sanitizer plugin chain (spec.md §4.1 step 6), if any.
	Exception error

	// Text is the final per-sink rendered bytes, set once per sink right
	// before that sink's Write is invoked (spec.md §4.1 step 7). Each sink
	// is handed its own copy of the record carrying its own Text; no record
	// or Text is reused across the per-sink loop.
	Text string
}
