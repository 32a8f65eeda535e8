// sink_file.go: A sink writing pre-rendered text to a file
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

import "os"

// FileSink writes each record's pre-rendered text to a single open file.
// It does not rotate; a rotating variant is a separate collaborator built
// on the same Sink contract.
type FileSink struct {
	file  *os.File
	floor Level
}

// NewFileSink opens path for append (creating it if necessary) and returns
// a FileSink writing to it. floor is the sink's own severity floor; pass Off
// for no floor beyond the global or per-class level.
func NewFileSink(path string, floor Level) (*FileSink, error) {
	// #nosec G304 - path is supplied by the embedding application, not by untrusted input.
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, WrapBeaconError(err, ErrCodeConfigError, "failed to open file sink")
	}
	return &FileSink{file: file, floor: floor}, nil
}

// RequiredFields implements Sink.
func (s *FileSink) RequiredFields() RequiredFieldSet { return 0 }

// SeverityFloor implements Sink.
func (s *FileSink) SeverityFloor() Level { return s.floor }

// Init implements Sink.
func (s *FileSink) Init(cfg *Configuration) error { return nil }

// Write implements Sink.
func (s *FileSink) Write(record *LogRecord) error {
	_, err := s.file.WriteString(record.Text)
	return err
}

// Flush implements Sink.
func (s *FileSink) Flush() error { return s.file.Sync() }

// Close implements Sink.
func (s *FileSink) Close() error { return s.file.Close() }
