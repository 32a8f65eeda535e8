// internallogger.go: Last-resort diagnostic sink with per-level dedup
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/agilira/go-timecache"
)

// cachedNow returns the package-wide cached clock reading used for dedup
// bookkeeping, avoiding a syscall on every reported diagnostic.
func cachedNow() time.Time {
	return timecache.CachedTime()
}

// internalDedupWindow bounds how long a repeated (level, message) pair is
// suppressed after its first report, preventing a tight failure loop (a
// sink that fails on every write) from flooding the diagnostic stream.
const internalDedupWindow = time.Second

// internalLogger writes human-readable diagnostics in the form
// "LOGGER <severity>: <message> (<exception-kind>)". It never invokes the
// dispatcher — reentrancy safety is the reason this exists as a separate,
// simpler path rather than routing internal failures back through emission.
type internalLogger struct {
	mu     sync.Mutex
	out    io.Writer
	recent map[string]time.Time
}

var defaultInternalLogger = &internalLogger{
	out:    os.Stderr,
	recent: make(map[string]time.Time),
}

// SetInternalDiagnosticWriter redirects InternalLogger output from the
// stderr default. Passing nil restores stderr.
func SetInternalDiagnosticWriter(w io.Writer) {
	defaultInternalLogger.mu.Lock()
	defer defaultInternalLogger.mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	defaultInternalLogger.out = w
}

// report writes a diagnostic at level (Warning or Error) with the given
// message and exception kind, deduplicated within internalDedupWindow.
func (l *internalLogger) report(level Level, message, exceptionKind string) {
	key := level.String() + "|" + message
	now := cachedNow()

	l.mu.Lock()
	if last, ok := l.recent[key]; ok && now.Sub(last) < internalDedupWindow {
		l.mu.Unlock()
		return
	}
	l.recent[key] = now
	out := l.out
	l.mu.Unlock()

	fmt.Fprintf(out, "LOGGER %s: %s (%s)\n", level.String(), message, exceptionKind)
}

// reportf formats message, resolves its kind from any %w/error-shaped
// argument, and reports it through the default internal logger. level must
// be Warning or Error per §4.6.
func reportf(level Level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	kind := "none"
	for _, a := range args {
		if err, ok := a.(error); ok && err != nil {
			kind = fmt.Sprintf("%T", err)
			break
		}
	}
	defaultInternalLogger.report(level, message, kind)
}
