// configuration.go: The immutable configuration snapshot
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

import "strings"

// StackInfoNeeded classifies how much caller-frame work a level's active
// sinks demand, so the dispatcher can skip acquiring a full frame when a
// class name is enough, and skip the caller entirely when nothing needs it.
type StackInfoNeeded int

const (
	// StackInfoNone means no sink at this level needs any caller field.
	StackInfoNone StackInfoNeeded = iota
	// StackInfoClassNameOnly means only the class is needed, permitting the
	// fast class-name-only caller strategy.
	StackInfoClassNameOnly
	// StackInfoFullFrame means method, file, or line is needed, forcing a
	// full frame resolution.
	StackInfoFullFrame
)

// sinkEntry pairs an installed sink with the compiled pattern it renders
// records through.
type sinkEntry struct {
	sink    Sink
	pattern *FormatPattern
}

// Configuration is an immutable snapshot of everything the dispatcher needs
// to resolve a level, acquire a caller frame, render a record, and fan it
// out to sinks. Once published it is never mutated; a new Configurator run
// builds and publishes a replacement instead.
type Configuration struct {
	globalLevel     Level
	customLevels    map[string]Level
	hasCustomLevels bool

	sinks []sinkEntry

	requiredFields  [5]RequiredFieldSet // indexed by Level - Trace
	stackInfoNeeded [5]StackInfoNeeded
	outputPossible  [5]bool

	maxStackTraceElements int

	writingThread *WritingThread

	plugins PluginChain
}

// levelIndex maps a real Level (Trace..Error) to its slot in the
// per-level precomputed arrays. Callers must not pass Off.
func levelIndex(l Level) int { return int(l) - int(Trace) }

// GlobalLevel returns the configuration's global severity threshold.
func (c *Configuration) GlobalLevel() Level { return c.globalLevel }

// IsOutputPossible reports whether any sink can accept a record at level,
// given the sinks' floors and the lowest of the global level and the
// per-class overrides; the cheapest possible early-reject check on the hot
// path.
func (c *Configuration) IsOutputPossible(level Level) bool {
	if level < Trace || level >= Off {
		return false
	}
	return c.outputPossible[levelIndex(level)]
}

// HasCustomLevels reports whether any per-class/per-package override is
// configured, gating the longest-prefix lookup on the hot path.
func (c *Configuration) HasCustomLevels() bool { return c.hasCustomLevels }

// EffectiveLevel resolves the level that applies to class, using the
// longest dotted-prefix override match; falls back to the global level.
func (c *Configuration) EffectiveLevel(class string) Level {
	if !c.hasCustomLevels {
		return c.globalLevel
	}

	best := ""
	bestLevel := c.globalLevel
	found := false
	for prefix, lvl := range c.customLevels {
		if prefix == class || strings.HasPrefix(class, prefix+"/") || strings.HasPrefix(class, prefix+".") {
			if len(prefix) > len(best) {
				best = prefix
				bestLevel = lvl
				found = true
			}
		}
	}
	if !found {
		return c.globalLevel
	}
	return bestLevel
}

// RequiredFields returns the union of fields every active sink needs at
// level.
func (c *Configuration) RequiredFields(level Level) RequiredFieldSet {
	if level < Trace || level >= Off {
		return 0
	}
	return c.requiredFields[levelIndex(level)]
}

// StackInfoNeeded returns how much caller-frame work level's active sinks
// demand.
func (c *Configuration) StackInfoNeeded(level Level) StackInfoNeeded {
	if level < Trace || level >= Off {
		return StackInfoNone
	}
	return c.stackInfoNeeded[levelIndex(level)]
}

// WritingThread returns the configuration's async writer handle, or nil if
// dispatch is synchronous.
func (c *Configuration) WritingThread() *WritingThread { return c.writingThread }

// Plugins returns the configuration's plugin chain snapshot.
func (c *Configuration) Plugins() *PluginChain { return &c.plugins }

// MaxStackTraceElements returns the cap on stack-trace rendering depth
// (-1 unbounded, 0 class-only).
func (c *Configuration) MaxStackTraceElements() int { return c.maxStackTraceElements }

// Sinks returns the configuration's installed sinks, in registration
// order.
func (c *Configuration) Sinks() []Sink {
	sinks := make([]Sink, len(c.sinks))
	for i, e := range c.sinks {
		sinks[i] = e.sink
	}
	return sinks
}
