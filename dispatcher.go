// dispatcher.go: The Logger core — hot-path entry points and record assembly
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/agilira/go-timecache"
)

// callerDepth is the number of frames between resolveCaller itself and the
// user call site: resolveCaller -> resolveCallerFrame -> assemble ->
// dispatch -> the public per-level wrapper (e.g. Trace) -> the user. Every
// wrapper in this file calls dispatch directly with no further helper in
// between, so a single constant holds for all of them.
const callerDepth = 4

// Dispatcher is the Logger core: the hot path that resolves a level,
// acquires a caller frame, assembles a LogRecord, renders it per sink, and
// fans it out synchronously or through a WritingThread. The zero value is
// not ready for use; construct one with NewDispatcher.
type Dispatcher struct {
	cfg atomic.Pointer[Configuration]

	processID string
}

// NewDispatcher returns a Dispatcher with no active configuration. Every
// entry point is a no-op until a Configurator.Activate call publishes one.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{processID: strconv.Itoa(os.Getpid())}
}

// activeConfiguration returns the currently published snapshot, or nil if
// none has been activated yet. This is the dispatcher's one atomic load per
// hot-path call (spec.md §4.1 step 1).
func (d *Dispatcher) activeConfiguration() *Configuration {
	return d.cfg.Load()
}

// publishConfiguration installs cfg as the active snapshot with a release
// store; subsequent hot-path loads observe it (spec.md §4.4 step 3). This
// is the only cross-goroutine synchronization point on the hot path.
func (d *Dispatcher) publishConfiguration(cfg *Configuration) {
	d.cfg.Store(cfg)
}

// IsEnabled reports whether any sink could accept a record at level under
// the current configuration, without resolving a caller frame.
func (d *Dispatcher) IsEnabled(level Level) bool {
	cfg := d.activeConfiguration()
	return cfg != nil && cfg.IsOutputPossible(level)
}

// Trace logs obj's textual representation at Trace level.
func (d *Dispatcher) Trace(obj interface{}) { d.dispatch(Trace, nil, obj, true, "", nil, nil) }

// Tracef renders pattern against args with {} placeholder substitution and
// logs the result at Trace level.
func (d *Dispatcher) Tracef(pattern string, args ...interface{}) {
	d.dispatch(Trace, nil, nil, false, pattern, args, nil)
}

// TraceErr logs err at Trace level with no message.
func (d *Dispatcher) TraceErr(err error) { d.dispatch(Trace, nil, nil, false, "", nil, err) }

// TraceErrf renders pattern against args and attaches err, at Trace level.
func (d *Dispatcher) TraceErrf(err error, pattern string, args ...interface{}) {
	d.dispatch(Trace, nil, nil, false, pattern, args, err)
}

// Debug logs obj's textual representation at Debug level.
func (d *Dispatcher) Debug(obj interface{}) { d.dispatch(Debug, nil, obj, true, "", nil, nil) }

// Debugf renders pattern against args and logs the result at Debug level.
func (d *Dispatcher) Debugf(pattern string, args ...interface{}) {
	d.dispatch(Debug, nil, nil, false, pattern, args, nil)
}

// DebugErr logs err at Debug level with no message.
func (d *Dispatcher) DebugErr(err error) { d.dispatch(Debug, nil, nil, false, "", nil, err) }

// DebugErrf renders pattern against args and attaches err, at Debug level.
func (d *Dispatcher) DebugErrf(err error, pattern string, args ...interface{}) {
	d.dispatch(Debug, nil, nil, false, pattern, args, err)
}

// Info logs obj's textual representation at Info level.
func (d *Dispatcher) Info(obj interface{}) { d.dispatch(Info, nil, obj, true, "", nil, nil) }

// Infof renders pattern against args and logs the result at Info level.
func (d *Dispatcher) Infof(pattern string, args ...interface{}) {
	d.dispatch(Info, nil, nil, false, pattern, args, nil)
}

// InfoErr logs err at Info level with no message.
func (d *Dispatcher) InfoErr(err error) { d.dispatch(Info, nil, nil, false, "", nil, err) }

// InfoErrf renders pattern against args and attaches err, at Info level.
func (d *Dispatcher) InfoErrf(err error, pattern string, args ...interface{}) {
	d.dispatch(Info, nil, nil, false, pattern, args, err)
}

// Warning logs obj's textual representation at Warning level.
func (d *Dispatcher) Warning(obj interface{}) { d.dispatch(Warning, nil, obj, true, "", nil, nil) }

// Warningf renders pattern against args and logs the result at Warning level.
func (d *Dispatcher) Warningf(pattern string, args ...interface{}) {
	d.dispatch(Warning, nil, nil, false, pattern, args, nil)
}

// WarningErr logs err at Warning level with no message.
func (d *Dispatcher) WarningErr(err error) { d.dispatch(Warning, nil, nil, false, "", nil, err) }

// WarningErrf renders pattern against args and attaches err, at Warning level.
func (d *Dispatcher) WarningErrf(err error, pattern string, args ...interface{}) {
	d.dispatch(Warning, nil, nil, false, pattern, args, err)
}

// Error logs obj's textual representation at Error level.
func (d *Dispatcher) Error(obj interface{}) { d.dispatch(Error, nil, obj, true, "", nil, nil) }

// Errorf renders pattern against args and logs the result at Error level.
func (d *Dispatcher) Errorf(pattern string, args ...interface{}) {
	d.dispatch(Error, nil, nil, false, pattern, args, nil)
}

// ErrorErr logs err at Error level with no message.
func (d *Dispatcher) ErrorErr(err error) { d.dispatch(Error, nil, nil, false, "", nil, err) }

// ErrorErrf renders pattern against args and attaches err, at Error level.
func (d *Dispatcher) ErrorErrf(err error, pattern string, args ...interface{}) {
	d.dispatch(Error, nil, nil, false, pattern, args, err)
}

// LogWithCaller is the frame-form bridge entry point (spec.md §4.1): a
// language-level facade that has already resolved the true user call site
// attributes its record to caller instead of letting the dispatcher walk
// the stack.
func (d *Dispatcher) LogWithCaller(level Level, caller Caller, obj interface{}, objPresent bool, pattern string, args []interface{}, exception error) {
	d.dispatch(level, &caller, obj, objPresent, pattern, args, exception)
}

// dispatch runs spec.md §4.1's resolution algorithm. Exactly one of
// (objPresent, pattern != "", exception != nil with nothing else set) is
// the common case, but any combination is accepted: a pattern takes
// precedence over a raw object for message rendering, and an exception may
// accompany either.
func (d *Dispatcher) dispatch(level Level, presetCaller *Caller, obj interface{}, objPresent bool, pattern string, args []interface{}, exception error) {
	cfg := d.activeConfiguration()
	if cfg == nil || !cfg.IsOutputPossible(level) {
		return
	}

	record, ok := d.assemble(cfg, level, presetCaller, obj, objPresent, pattern, args, exception)
	if !ok {
		return
	}

	d.fanOut(cfg, record)
}

// assemble builds a LogRecord per spec.md §4.1 steps 3–6, recovering any
// panic raised during assembly (a misbehaving plugin, most likely) into a
// single InternalLogger report rather than letting it escape to the
// caller's goroutine.
func (d *Dispatcher) assemble(cfg *Configuration, level Level, presetCaller *Caller, obj interface{}, objPresent bool, pattern string, args []interface{}, exception error) (rec *LogRecord, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			reportf(Error, "Failed to create log entry (%v)", r)
			rec, ok = nil, false
		}
	}()

	var caller Caller
	haveCaller := false

	if cfg.HasCustomLevels() {
		onlyClassName := cfg.StackInfoNeeded(level) == StackInfoClassNameOnly
		caller = d.resolveCallerFrame(cfg, presetCaller, onlyClassName)
		haveCaller = true
		if level < cfg.EffectiveLevel(caller.Class) {
			return nil, false
		}
	}

	required := cfg.RequiredFields(level)
	record := &LogRecord{Level: level}

	if required.Has(FieldTimestamp) {
		record.Timestamp = timecache.CachedTime()
	}
	if required.Has(FieldProcessID) {
		record.ProcessID = d.processID
	}
	if required.Has(FieldThread) {
		record.ThreadName, record.ThreadID = currentThread()
	}
	if required.NeedsCaller() {
		needFullFrame := required.NeedsFullFrame()
		if !haveCaller {
			caller = d.resolveCallerFrame(cfg, presetCaller, !needFullFrame)
		} else if needFullFrame && caller.OnlyClassName {
			caller = d.resolveCallerFrame(cfg, presetCaller, false)
		}
		record.Caller = caller
	}

	record.Message = obj
	record.MessagePresent = objPresent || pattern != ""
	if required.Has(FieldMessage) {
		record.RenderedMessage = renderMessage(obj, objPresent, pattern, args)
	}

	if exception != nil && required.Has(FieldException) {
		if sanitizer := cfg.Plugins().Sanitizer(); sanitizer != nil {
			exception = sanitizer.Sanitize(exception)
		}
	}
	record.Exception = exception

	return record, true
}

// resolveCallerFrame runs the caller-frame provider ladder, short-circuiting
// to a preset frame when the caller already supplied one (the frame-form
// bridge entry point).
func (d *Dispatcher) resolveCallerFrame(cfg *Configuration, preset *Caller, onlyClassName bool) Caller {
	if preset != nil {
		return *preset
	}
	return resolveCaller(cfg.Plugins(), callerDepth, onlyClassName)
}

// renderMessage implements spec.md §4.1 step 5: a pattern always wins over
// a raw object; a present object renders via its textual representation;
// absence leaves the message unset.
func renderMessage(obj interface{}, objPresent bool, pattern string, args []interface{}) string {
	if pattern != "" {
		return FormatMessage(pattern, args...)
	}
	if !objPresent {
		return ""
	}
	if s, ok := obj.(string); ok {
		return s
	}
	if s, ok := obj.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(obj)
}

// fanOut implements spec.md §4.1 steps 7–8: render per sink, then either
// write synchronously or enqueue to the writing thread.
func (d *Dispatcher) fanOut(cfg *Configuration, record *LogRecord) {
	wt := cfg.WritingThread()

	for _, entry := range cfg.sinks {
		floor := entry.sink.SeverityFloor()
		if floor != Off && record.Level < floor {
			continue
		}

		rendered := *record
		if entry.pattern != nil {
			rendered.Text = renderPattern(entry.pattern, &rendered)
		}

		if wt == nil {
			writeSynchronously(entry.sink, &rendered)
			continue
		}

		if !wt.Enqueue(entry.sink, &rendered) {
			reportf(Warning, "Writing thread not accepting entries, dropped record for sink (%T)", entry.sink)
		}
	}
}

// renderPattern concatenates every token in pattern for record into a
// fresh buffer.
func renderPattern(pattern *FormatPattern, record *LogRecord) string {
	var buf strings.Builder
	pattern.Render(&buf, record)
	return buf.String()
}

// writeSynchronously calls sink.Write on the caller's own goroutine,
// isolating a panic or error so one broken sink cannot prevent its
// siblings from being written (spec.md §4.1 step 8).
func writeSynchronously(sink Sink, record *LogRecord) {
	defer func() {
		if r := recover(); r != nil {
			reportf(Error, "Failed to write log entry (%v)", r)
		}
	}()

	if err := sink.Write(record); err != nil {
		reportf(Error, "Failed to write log entry (%T)", err)
	}
}

// currentThread derives a pseudo thread identity for the calling goroutine:
// Go exposes no portable goroutine id, so one is parsed out of the
// runtime's own debug stack header, the same trick runtime.Stack-based
// goroutine-id helpers across the ecosystem use. name is the hex form,
// id its decimal form.
func currentThread() (name string, id int64) {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = buf[:n]

	const prefix = "goroutine "
	if !bytes.HasPrefix(buf, []byte(prefix)) {
		return "<unknown>", -1
	}
	rest := buf[len(prefix):]
	if sp := bytes.IndexByte(rest, ' '); sp >= 0 {
		rest = rest[:sp]
	}
	parsed, err := strconv.ParseInt(string(rest), 10, 64)
	if err != nil {
		return "<unknown>", -1
	}
	return strconv.FormatInt(parsed, 16), parsed
}
