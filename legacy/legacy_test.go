// legacy_test.go: Test suite for the stdlib-log-style compatibility facade
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package legacy

import (
	"testing"

	"github.com/agilira/beacon"
)

func newTestLogger(t *testing.T) (*Logger, *beacon.DiscardSink) {
	t.Helper()
	d := beacon.NewDispatcher()
	sink := beacon.NewCapturingDiscardSink()
	if err := beacon.NewConfigurator().Writer(sink).Activate(d); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	return New(d), sink
}

func TestLoggerPrintFormatsLikeFmtSprint(t *testing.T) {
	l, sink := newTestLogger(t)
	l.Print("count: ", 3)

	got := sink.Records()
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if want := "count: 3"; got[0].RenderedMessage != want {
		t.Errorf("RenderedMessage = %q, want %q", got[0].RenderedMessage, want)
	}
}

func TestLoggerPrintfSubstitutesPlaceholders(t *testing.T) {
	l, sink := newTestLogger(t)
	l.Printf("request from {}", "203.0.113.5")

	got := sink.Records()
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if want := "request from 203.0.113.5"; got[0].RenderedMessage != want {
		t.Errorf("RenderedMessage = %q, want %q", got[0].RenderedMessage, want)
	}
}

func TestLoggerPrintlnAppendsNewline(t *testing.T) {
	l, sink := newTestLogger(t)
	l.Println("done")

	got := sink.Records()
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if want := "done\n"; got[0].RenderedMessage != want {
		t.Errorf("RenderedMessage = %q, want %q", got[0].RenderedMessage, want)
	}
}

func TestLoggerWarnDelegatesToWarning(t *testing.T) {
	l, sink := newTestLogger(t)
	l.Warn("careful")

	got := sink.Records()
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].Level != beacon.Warning {
		t.Errorf("expected Warning level, got %s", got[0].Level)
	}
}

func TestLoggerWarnfSubstitutesPlaceholders(t *testing.T) {
	l, sink := newTestLogger(t)
	l.Warnf("retry {} of {}", 2, 5)

	got := sink.Records()
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if want := "retry 2 of 5"; got[0].RenderedMessage != want {
		t.Errorf("RenderedMessage = %q, want %q", got[0].RenderedMessage, want)
	}
}

func TestLoggerPanicLogsThenPanics(t *testing.T) {
	l, sink := newTestLogger(t)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected Panic to panic")
		}
		if r.(string) != "boom" {
			t.Errorf("expected panic value %q, got %v", "boom", r)
		}
		got := sink.Records()
		if len(got) != 1 || got[0].RenderedMessage != "boom" {
			t.Errorf("expected the message to be logged before panicking, got %+v", got)
		}
	}()

	l.Panic("boom")
}

func TestLoggerPanicfLogsThenPanics(t *testing.T) {
	l, sink := newTestLogger(t)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected Panicf to panic")
		}
		got := sink.Records()
		if len(got) != 1 || got[0].RenderedMessage != "failed: disk" {
			t.Errorf("expected the rendered message to be logged before panicking, got %+v", got)
		}
	}()

	l.Panicf("failed: {}", "disk")
}

func TestLoggerSetLevelReconfiguresDispatcher(t *testing.T) {
	l, sink := newTestLogger(t)

	if err := l.SetLevel(beacon.Warning, beacon.NewConfigurator().Writer(sink)); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}

	l.d.Info("should be suppressed under the new Warning floor")
	if len(sink.Records()) != 0 {
		t.Errorf("expected Info suppressed after SetLevel(Warning), got %d records", len(sink.Records()))
	}

	l.Warn("should pass")
	if len(sink.Records()) != 1 {
		t.Errorf("expected 1 record at Warning level, got %d", len(sink.Records()))
	}
}

func TestDefaultLoggerIsNotNil(t *testing.T) {
	if Default() == nil {
		t.Error("expected a non-nil package-level default Logger")
	}
}
