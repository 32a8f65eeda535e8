// level.go: Severity level definitions for the beacon dispatch pipeline
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Level represents the severity of a log record.
//
// Levels form a total order: Trace < Debug < Info < Warning < Error < Off.
// Off never matches a real record. As the global level it disables output
// entirely; as a per-sink floor it means "no floor of the sink's own", and
// passing it to AddOverride removes a class/package override.
//
// Performance Notes:
// - Level is implemented as int32 for fast comparisons
// - Atomic operations used for thread-safe level changes
// - Zero allocation for level checks via inlined comparisons
type Level int32

// Levels in order of increasing severity.
const (
	Trace   Level = iota - 2 // Fine-grained diagnostic detail, always the first to be filtered out
	Debug                    // Debug information, typically disabled in production
	Info                     // General information messages
	Warning                  // Warning messages for potentially harmful situations
	Error                    // Error messages for failure conditions
	Off                      // Disables output entirely; compares greater than every real level
)

// levelNamesMap provides reverse lookup from string to level.
var levelNamesMap = map[string]Level{
	"trace":   Trace,
	"debug":   Debug,
	"info":    Info,
	"warning": Warning,
	"warn":    Warning, // Alias for warning
	"error":   Error,
	"err":     Error, // Alias for error
	"off":     Off,
	"":        Info, // Empty string defaults to Info
}

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case Trace:
		return "TRACE"
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Off:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// Enabled reports whether this level is enabled given a minimum level.
func (l Level) Enabled(min Level) bool {
	return l >= min
}

// IsValid reports whether the level is one of the predefined constants.
func (l Level) IsValid() bool {
	return l >= Trace && l <= Off
}

// ParseLevel parses a string representation of a level, case-insensitively,
// accepting the common "warn"/"err" aliases. Empty input defaults to Info.
func ParseLevel(s string) (Level, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))

	if level, exists := levelNamesMap[normalized]; exists {
		return level, nil
	}

	return Info, fmt.Errorf("beacon: unknown level %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !l.IsValid() {
		return nil, fmt.Errorf("beacon: cannot marshal invalid level %d", int32(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(b []byte) error {
	if l == nil {
		return fmt.Errorf("beacon: cannot unmarshal into nil Level pointer")
	}

	parsed, err := ParseLevel(string(b))
	if err != nil {
		return err
	}

	*l = parsed
	return nil
}

// AtomicLevel provides lock-free atomic reads/writes of a Level.
//
// This exists for callers that only need a single watched threshold (tests,
// simple embedders) without paying for a full Configuration swap.
type AtomicLevel struct {
	level int32
}

// NewAtomicLevel creates an AtomicLevel initialized to the given level.
func NewAtomicLevel(level Level) *AtomicLevel {
	return &AtomicLevel{level: int32(level)}
}

// Level returns the current level.
func (al *AtomicLevel) Level() Level {
	return Level(atomic.LoadInt32(&al.level))
}

// SetLevel atomically updates the level.
func (al *AtomicLevel) SetLevel(level Level) {
	atomic.StoreInt32(&al.level, int32(level))
}

// Enabled reports whether the given level clears the current threshold.
func (al *AtomicLevel) Enabled(level Level) bool {
	return level >= Level(atomic.LoadInt32(&al.level))
}

// String returns the string representation of the current level.
func (al *AtomicLevel) String() string {
	return al.Level().String()
}

// AllLevels returns every real (non-Off) level in ascending order.
func AllLevels() []Level {
	return []Level{Trace, Debug, Info, Warning, Error}
}
