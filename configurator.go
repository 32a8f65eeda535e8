// configurator.go: The builder that produces and publishes a Configuration
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

// Configurator builds a Configuration and publishes it atomically onto a
// Dispatcher via Activate. It is not safe for concurrent use by multiple
// goroutines; build on one goroutine, then Activate.
type Configurator struct {
	globalLevel    Level
	customLevels   map[string]Level
	sinks          []sinkEntry
	currentPattern *FormatPattern
	writingThread  *writingThreadSpec
	maxStackTrace  int
	plugins        PluginChain
}

type writingThreadSpec struct {
	queueCapacity int64
	blockOnFull   bool
}

// NewConfigurator creates a Configurator with sensible defaults: global
// level Info, no overrides, no sinks, the default format pattern, unbounded
// stack-trace rendering, and synchronous dispatch.
func NewConfigurator() *Configurator {
	pattern, _ := CompilePattern(DefaultFormatPattern, -1)
	return &Configurator{
		globalLevel:    Info,
		customLevels:   make(map[string]Level),
		currentPattern: pattern,
		maxStackTrace:  -1,
	}
}

// Level sets the global level.
func (c *Configurator) Level(level Level) *Configurator {
	c.globalLevel = level
	return c
}

// AddOverride sets the effective level for classOrPackage. Passing Off
// removes the override instead — matching the `level(class, null)` option's
// "null removes" semantics, since Go has no null Level.
func (c *Configurator) AddOverride(classOrPackage string, level Level) *Configurator {
	if level == Off {
		delete(c.customLevels, classOrPackage)
		return c
	}
	c.customLevels[classOrPackage] = level
	return c
}

// FormatPattern compiles pattern and uses it for every sink added by a
// subsequent call to Writer.
func (c *Configurator) FormatPattern(pattern string) (*Configurator, error) {
	compiled, err := CompilePattern(pattern, c.maxStackTrace)
	if err != nil {
		return c, err
	}
	c.currentPattern = compiled
	return c, nil
}

// Writer adds sink, rendered through the most recently set FormatPattern.
// An optional floor overrides the sink's own declared SeverityFloor.
func (c *Configurator) Writer(sink Sink, floor ...Level) *Configurator {
	s := sink
	if len(floor) > 0 {
		s = &floorOverrideSink{Sink: sink, floor: floor[0]}
	}
	c.sinks = append(c.sinks, sinkEntry{sink: s, pattern: c.currentPattern})
	return c
}

// RemoveAllWriters clears every sink registered so far.
func (c *Configurator) RemoveAllWriters() *Configurator {
	c.sinks = nil
	return c
}

// WritingThread enables asynchronous dispatch through a bounded queue of
// the given capacity. blockOnFull selects the queue's backpressure policy:
// true blocks producers when full (the spec's default), false drops.
//
// The Java original's daemon-flag and thread-priority parameters have no
// Go analog: goroutines are always reclaimed at process exit regardless of
// a "daemon" designation, and the Go runtime scheduler exposes no priority
// knob. WritingThread therefore only takes the parameters Go can honor.
func (c *Configurator) WritingThread(queueCapacity int64, blockOnFull bool) *Configurator {
	c.writingThread = &writingThreadSpec{queueCapacity: queueCapacity, blockOnFull: blockOnFull}
	return c
}

// MaxStackTraceElements caps stack-trace rendering depth for the "message"
// token: -1 unbounded, 0 class-only (no trace at all). The cap is applied
// when a pattern is compiled, so it affects patterns set by a later
// FormatPattern call; a pattern already compiled, including the default one
// from NewConfigurator, keeps the cap it was compiled with.
func (c *Configurator) MaxStackTraceElements(n int) *Configurator {
	c.maxStackTrace = n
	return c
}

// AddPlugin chains plugin into every plugin interface it implements.
func (c *Configurator) AddPlugin(plugin interface{}) *Configurator {
	c.plugins.AddPlugin(plugin)
	return c
}

// floorOverrideSink wraps a Sink to override its declared severity floor
// with the value given to Configurator.Writer.
type floorOverrideSink struct {
	Sink
	floor Level
}

func (s *floorOverrideSink) SeverityFloor() Level { return s.floor }

// Activate builds the final Configuration and publishes it onto d,
// following §4.4's activation sequence:
//  1. init() every sink present in the new snapshot but not the previous one.
//  2. build the precomputed fast-path caches.
//  3. publish with a release store.
// Sinks removed by the swap are not closed here; their lifecycle belongs to
// whoever owned the configuration that installed them.
func (c *Configurator) Activate(d *Dispatcher) error {
	cfg := &Configuration{
		globalLevel:           c.globalLevel,
		customLevels:          cloneLevelMap(c.customLevels),
		hasCustomLevels:       len(c.customLevels) > 0,
		sinks:                 append([]sinkEntry(nil), c.sinks...),
		maxStackTraceElements: c.maxStackTrace,
		plugins:               c.plugins.Snapshot(),
	}

	previous := d.activeConfiguration()
	previousSinks := make(map[Sink]bool)
	if previous != nil {
		for _, e := range previous.sinks {
			previousSinks[e.sink] = true
		}
	}

	for _, e := range cfg.sinks {
		if previousSinks[e.sink] {
			continue
		}
		if err := e.sink.Init(cfg); err != nil {
			return NewBeaconErrorWithField(ErrCodePluginInitError, "sink init failed", "sink", errorLabel(e.sink))
		}
	}

	if err := c.buildWritingThread(cfg, previous); err != nil {
		return err
	}

	precomputeCaches(cfg)

	d.publishConfiguration(cfg)
	return nil
}

func (c *Configurator) buildWritingThread(cfg *Configuration, previous *Configuration) error {
	if c.writingThread == nil {
		return nil
	}

	if previous != nil && previous.writingThread != nil {
		cfg.writingThread = previous.writingThread
		return nil
	}

	wt, err := newWritingThread(c.writingThread.queueCapacity, c.writingThread.blockOnFull)
	if err != nil {
		return WrapBeaconError(err, ErrCodeConfigError, "failed to start writing thread")
	}
	cfg.writingThread = wt
	return nil
}

func precomputeCaches(cfg *Configuration) {
	minLevel := cfg.globalLevel
	for _, lvl := range cfg.customLevels {
		if lvl < minLevel {
			minLevel = lvl
		}
	}

	for i := 0; i < 5; i++ {
		level := Trace + Level(i)

		var required RequiredFieldSet
		possible := false

		for _, e := range cfg.sinks {
			floor := e.sink.SeverityFloor()
			if level < minLevel || (floor != Off && level < floor) {
				continue
			}
			possible = true
			required = required.Union(e.sink.RequiredFields())
			if e.pattern != nil {
				required = required.Union(e.pattern.RequiredFields())
			}
		}

		cfg.requiredFields[i] = required
		cfg.outputPossible[i] = possible

		switch {
		case !required.NeedsCaller():
			cfg.stackInfoNeeded[i] = StackInfoNone
		case !required.NeedsFullFrame():
			cfg.stackInfoNeeded[i] = StackInfoClassNameOnly
		default:
			cfg.stackInfoNeeded[i] = StackInfoFullFrame
		}
	}
}

func cloneLevelMap(m map[string]Level) map[string]Level {
	cp := make(map[string]Level, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

func errorLabel(s Sink) string {
	if stringer, ok := s.(interface{ String() string }); ok {
		return stringer.String()
	}
	return "sink"
}
