// plugin.go: Plugin chains for caller-frame discovery and exception sanitization
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

// StackFrameProvider supplies a Caller for a given call depth. A chain link
// returns a nil *Caller to fall through to the next strategy in the ladder
// (see caller.go) rather than to signal an error.
type StackFrameProvider interface {
	Get(depth int, onlyClassName bool) *Caller
}

// ExceptionSanitizer transforms an attached error before it is placed on a
// LogRecord — stripping sensitive fields, wrapping with additional context,
// or normalizing a vendor-specific error type.
type ExceptionSanitizer interface {
	Sanitize(err error) error
}

// StackFrameProviderFunc adapts a function to StackFrameProvider.
type StackFrameProviderFunc func(depth int, onlyClassName bool) *Caller

// Get implements StackFrameProvider.
func (f StackFrameProviderFunc) Get(depth int, onlyClassName bool) *Caller {
	return f(depth, onlyClassName)
}

// ExceptionSanitizerFunc adapts a function to ExceptionSanitizer.
type ExceptionSanitizerFunc func(err error) error

// Sanitize implements ExceptionSanitizer.
func (f ExceptionSanitizerFunc) Sanitize(err error) error {
	return f(err)
}

// chainedFrameProvider composes two StackFrameProvider instances: older
// runs first, and this link adjusts the depth it passes onward by one to
// account for the frame it itself occupies, per the plugin chain's depth
// adjustment rule.
type chainedFrameProvider struct {
	older StackFrameProvider
	newer StackFrameProvider
}

func (c *chainedFrameProvider) Get(depth int, onlyClassName bool) *Caller {
	if frame := c.older.Get(depth+1, onlyClassName); frame != nil {
		return frame
	}
	return c.newer.Get(depth+1, onlyClassName)
}

// chainedSanitizer composes two ExceptionSanitizer instances with no
// short-circuit: the older instance's result always feeds the newer one.
type chainedSanitizer struct {
	older ExceptionSanitizer
	newer ExceptionSanitizer
}

func (c *chainedSanitizer) Sanitize(err error) error {
	return c.newer.Sanitize(c.older.Sanitize(err))
}

// PluginChain holds at most one head instance per supported interface.
// Registering an additional plugin wraps the current head in a two-input
// chain rather than replacing it.
type PluginChain struct {
	frameProvider StackFrameProvider
	sanitizer     ExceptionSanitizer
}

// AddPlugin registers plugin against every interface it implements. A
// plugin implementing both StackFrameProvider and ExceptionSanitizer is
// chained into both independently.
func (pc *PluginChain) AddPlugin(plugin interface{}) {
	if provider, ok := plugin.(StackFrameProvider); ok {
		pc.addFrameProvider(provider)
	}
	if sanitizer, ok := plugin.(ExceptionSanitizer); ok {
		pc.addSanitizer(sanitizer)
	}
}

func (pc *PluginChain) addFrameProvider(provider StackFrameProvider) {
	if pc.frameProvider == nil {
		pc.frameProvider = provider
		return
	}
	pc.frameProvider = &chainedFrameProvider{older: pc.frameProvider, newer: provider}
}

func (pc *PluginChain) addSanitizer(sanitizer ExceptionSanitizer) {
	if pc.sanitizer == nil {
		pc.sanitizer = sanitizer
		return
	}
	pc.sanitizer = &chainedSanitizer{older: pc.sanitizer, newer: sanitizer}
}

// FrameProvider returns the chain's composed StackFrameProvider, or nil if
// none was registered.
func (pc *PluginChain) FrameProvider() StackFrameProvider {
	if pc == nil {
		return nil
	}
	return pc.frameProvider
}

// Sanitizer returns the chain's composed ExceptionSanitizer, or nil if none
// was registered.
func (pc *PluginChain) Sanitizer() ExceptionSanitizer {
	if pc == nil {
		return nil
	}
	return pc.sanitizer
}

// Snapshot returns an immutable copy of the chain suitable for embedding in
// a Configuration; plugin chain instances are immutable after publication.
func (pc *PluginChain) Snapshot() PluginChain {
	if pc == nil {
		return PluginChain{}
	}
	return PluginChain{frameProvider: pc.frameProvider, sanitizer: pc.sanitizer}
}
