// sink_console.go: A sink writing pre-rendered text to an io.Writer
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

import "io"

// ConsoleSink writes each record's pre-rendered text to an underlying
// writer, typically os.Stdout or os.Stderr. It declares no field
// requirements of its own beyond what the configured FormatPattern already
// demands — the dispatcher only ever hands it a record whose Text was
// rendered from that pattern.
type ConsoleSink struct {
	out   WriteSyncer
	floor Level
}

// NewConsoleSink creates a ConsoleSink writing to w. floor is the sink's
// own severity floor; pass Off for no additional floor beyond the global or
// per-class level.
func NewConsoleSink(w io.Writer, floor Level) *ConsoleSink {
	return &ConsoleSink{out: WrapWriter(w), floor: floor}
}

// RequiredFields implements Sink. A console sink's only dependency is the
// pre-rendered Text field, which the dispatcher always populates.
func (s *ConsoleSink) RequiredFields() RequiredFieldSet { return 0 }

// SeverityFloor implements Sink.
func (s *ConsoleSink) SeverityFloor() Level { return s.floor }

// Init implements Sink. ConsoleSink needs no setup against the
// configuration that installs it.
func (s *ConsoleSink) Init(cfg *Configuration) error { return nil }

// Write implements Sink.
func (s *ConsoleSink) Write(record *LogRecord) error {
	_, err := s.out.Write([]byte(record.Text))
	return err
}

// Flush implements Sink.
func (s *ConsoleSink) Flush() error { return s.out.Sync() }

// Close implements Sink. A console sink does not own the underlying
// stream's lifetime (closing os.Stdout would be a mistake), so Close is a
// no-op.
func (s *ConsoleSink) Close() error { return nil }
