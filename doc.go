// Package beacon is a lightweight, embeddable logging library.
//
// Application code emits records at one of five severity levels; beacon
// filters them against configurable per-class/per-package thresholds,
// renders them through a format pattern, and dispatches them to one or more
// sinks either synchronously on the calling goroutine or asynchronously
// through a dedicated writing thread.
//
// # Quick start
//
//	cfg := beacon.NewConfigurator().
//		Level(beacon.Info).
//		Writer(beacon.NewConsoleSink(os.Stdout, beacon.Off))
//
//	d := beacon.NewDispatcher()
//	if err := cfg.Activate(d); err != nil {
//		panic(err)
//	}
//
//	d.Info("service started")
//	d.Infof("listening on {}", addr)
//
// # Configuration lifecycle
//
// A Configuration is an immutable snapshot built by a Configurator and
// published onto a Dispatcher with Activate. Publication is atomic: hot-path
// readers never see a partially built snapshot, and configuration can be
// replaced at runtime without taking a lock on the logging path. There is no
// hot-reload from a file; replacing the active configuration is always an
// explicit Activate call.
//
// # Per-class level overrides
//
// AddOverride sets the effective level for a class or package prefix,
// resolved by longest-prefix match against the emitting code's import path.
// Overrides only narrow or widen what AddOverride was given; the global
// level still applies to anything with no matching prefix.
//
// # Sinks
//
// A Sink receives fully rendered records. beacon ships ConsoleSink,
// FileSink, and DiscardSink as reference implementations; any type
// satisfying the Sink interface can be registered with Configurator.Writer.
//
// # Asynchronous dispatch
//
// Configurator.WritingThread enables a background consumer backed by a
// bounded, lock-free ring: producers enqueue (sink, record) pairs instead of
// writing inline, trading a small latency for isolation from a slow sink.
//
// # Plugins
//
// A StackFrameProvider or ExceptionSanitizer registered with
// Configurator.AddPlugin is chained behind any previously registered
// instance of the same interface rather than replacing it.
package beacon
