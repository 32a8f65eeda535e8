// sink.go: The Sink contract and the WriteSyncer I/O primitives it builds on
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

import (
	"io"
	"os"
)

// Sink is the contract every downstream consumer of records implements.
// init runs exactly once, before a sink's first write, when the
// configuration that installs it is activated. flush and close run only as
// part of writing-thread shutdown or explicit caller action; a sink removed
// by a configuration swap is not closed by the swap itself.
type Sink interface {
	// RequiredFields declares which LogRecord fields this sink consumes.
	RequiredFields() RequiredFieldSet
	// SeverityFloor returns the minimum level this sink accepts, or Off to
	// mean "no floor beyond the global/per-class level".
	SeverityFloor() Level
	// Init is called once, before the first Write, with the Configuration
	// that installed this sink.
	Init(cfg *Configuration) error
	// Write delivers a fully rendered record. May return an error, which
	// the dispatcher reports per-sink without interrupting fan-out to the
	// remaining sinks.
	Write(record *LogRecord) error
	// Flush forces any buffered output to its destination.
	Flush() error
	// Close releases the sink's resources. Called only during
	// writing-thread shutdown or explicit caller action.
	Close() error
}

// WriteSyncer combines io.Writer with the ability to synchronize written
// data to persistent storage. Reference sinks that wrap a byte stream are
// built on this rather than directly on io.Writer, so a file-backed sink's
// Flush can force a real fsync.
type WriteSyncer interface {
	io.Writer
	Sync() error
}

// nopSyncer wraps a Writer that needs no explicit sync (in-memory buffers,
// network connections, or anything syncing at a different layer).
type nopSyncer struct{ io.Writer }

func (n nopSyncer) Sync() error { return nil }

// fileSyncer wraps *os.File to force a real fsync on Sync.
type fileSyncer struct{ *os.File }

func (f fileSyncer) Sync() error { return f.File.Sync() }

// WrapWriter converts any io.Writer into a WriteSyncer: an *os.File gets a
// real fsync, an existing WriteSyncer passes through unchanged, and
// anything else gets a no-op Sync.
func WrapWriter(w io.Writer) WriteSyncer {
	switch t := w.(type) {
	case *os.File:
		return fileSyncer{t}
	case WriteSyncer:
		return t
	default:
		return nopSyncer{w}
	}
}

// multiSyncer fans a single Write/Sync call out to several WriteSyncers,
// preserving the first error encountered while still attempting every
// destination.
type multiSyncer struct{ ws []WriteSyncer }

// MultiWriteSyncer duplicates writes across several WriteSyncers.
func MultiWriteSyncer(writers ...WriteSyncer) WriteSyncer {
	cp := make([]WriteSyncer, 0, len(writers))
	for _, w := range writers {
		if w != nil {
			cp = append(cp, w)
		}
	}
	return &multiSyncer{ws: cp}
}

func (m *multiSyncer) Write(p []byte) (int, error) {
	var firstErr error
	for _, w := range m.ws {
		if _, err := w.Write(p); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return 0, firstErr
	}
	return len(p), nil
}

func (m *multiSyncer) Sync() error {
	var firstErr error
	for _, w := range m.ws {
		if err := w.Sync(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
