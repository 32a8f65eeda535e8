// legacy.go: Compatibility facade over beacon's dispatcher entry points
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

// Package legacy exposes beacon's dispatcher under the standard library
// log.Logger naming convention (Print/Printf/Println, Fatal*, Panic*), for
// code migrating off the stdlib logger without rewriting every call site.
// It is a thin translation layer: each method formats its arguments as the
// stdlib logger would and delegates to a *beacon.Dispatcher entry point,
// strictly outside the dispatch pipeline itself.
package legacy

import (
	"fmt"
	"os"

	"github.com/agilira/beacon"
)

// Logger translates stdlib-style calls onto a beacon.Dispatcher.
type Logger struct {
	d *beacon.Dispatcher
}

// New wraps d in the legacy naming convention.
func New(d *beacon.Dispatcher) *Logger {
	return &Logger{d: d}
}

// Print logs args at Info level, formatted as fmt.Sprint would.
func (l *Logger) Print(args ...interface{}) { l.d.Info(fmt.Sprint(args...)) }

// Printf logs at Info level with {}-style placeholder substitution.
func (l *Logger) Printf(format string, args ...interface{}) { l.d.Infof(format, args...) }

// Println logs args at Info level, formatted as fmt.Sprintln would.
func (l *Logger) Println(args ...interface{}) { l.d.Info(fmt.Sprintln(args...)) }

// Fatal logs args at Error level, then exits the process with status 1.
func (l *Logger) Fatal(args ...interface{}) {
	l.d.Error(fmt.Sprint(args...))
	os.Exit(1)
}

// Fatalf logs at Error level, then exits the process with status 1.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.d.Errorf(format, args...)
	os.Exit(1)
}

// Fatalln logs args at Error level, then exits the process with status 1.
func (l *Logger) Fatalln(args ...interface{}) {
	l.d.Error(fmt.Sprintln(args...))
	os.Exit(1)
}

// Panic logs args at Error level, then panics with the same text.
func (l *Logger) Panic(args ...interface{}) {
	text := fmt.Sprint(args...)
	l.d.Error(text)
	panic(text)
}

// Panicf logs at Error level, then panics with the same text.
func (l *Logger) Panicf(format string, args ...interface{}) {
	text := beacon.FormatMessage(format, args...)
	l.d.Error(text)
	panic(text)
}

// Panicln logs args at Error level, then panics with the same text.
func (l *Logger) Panicln(args ...interface{}) {
	text := fmt.Sprintln(args...)
	l.d.Error(text)
	panic(text)
}

// Warn logs obj at Warning level (legacy alias for beacon's Warning).
func (l *Logger) Warn(obj interface{}) { l.d.Warning(obj) }

// Warnf renders pattern against args and logs the result at Warning level.
func (l *Logger) Warnf(pattern string, args ...interface{}) { l.d.Warningf(pattern, args...) }

// SetLevel atomically updates the dispatcher's global level via a fresh
// Configurator activation, the only way to change level in beacon's
// immutable-snapshot model.
//
// This does not reintroduce the global hot-reload Non-goal: it replaces the
// whole configuration, it does not watch a file.
func (l *Logger) SetLevel(level beacon.Level, cfg *beacon.Configurator) error {
	return cfg.Level(level).Activate(l.d)
}

var defaultLogger = New(beacon.NewDispatcher())

// Default returns the package-level default Logger.
func Default() *Logger { return defaultLogger }

// Print logs args at Info level on the default Logger.
func Print(args ...interface{}) { defaultLogger.Print(args...) }

// Printf logs on the default Logger with {}-style placeholder substitution.
func Printf(format string, args ...interface{}) { defaultLogger.Printf(format, args...) }

// Println logs args at Info level on the default Logger.
func Println(args ...interface{}) { defaultLogger.Println(args...) }

// Fatal logs at Error level on the default Logger, then exits.
func Fatal(args ...interface{}) { defaultLogger.Fatal(args...) }

// Fatalf logs at Error level on the default Logger, then exits.
func Fatalf(format string, args ...interface{}) { defaultLogger.Fatalf(format, args...) }

// Panic logs at Error level on the default Logger, then panics.
func Panic(args ...interface{}) { defaultLogger.Panic(args...) }
