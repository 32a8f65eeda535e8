// writingthread_test.go: Test suite for the async WritingThread
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

import (
	"testing"
	"time"
)

func TestWritingThreadDeliversInOrder(t *testing.T) {
	wt, err := newWritingThread(64, true)
	if err != nil {
		t.Fatalf("newWritingThread: %v", err)
	}

	sink := NewCapturingDiscardSink()

	for i := 0; i < 100; i++ {
		record := &LogRecord{Level: Info, RenderedMessage: string(rune('a' + i%26))}
		if !wt.Enqueue(sink, record) {
			t.Fatalf("Enqueue rejected item %d", i)
		}
	}

	wt.Shutdown()

	got := sink.Records()
	if len(got) != 100 {
		t.Fatalf("expected 100 delivered records, got %d", len(got))
	}
	for i, r := range got {
		want := string(rune('a' + i%26))
		if r.RenderedMessage != want {
			t.Fatalf("record %d out of order: want %q, got %q", i, want, r.RenderedMessage)
		}
	}
}

func TestWritingThreadStateMachine(t *testing.T) {
	wt, err := newWritingThread(64, true)
	if err != nil {
		t.Fatalf("newWritingThread: %v", err)
	}

	if wt.State() != threadRunning {
		t.Fatalf("expected threadRunning before shutdown, got %d", wt.State())
	}

	wt.Shutdown()

	if wt.State() != threadTerminated {
		t.Fatalf("expected threadTerminated after shutdown, got %d", wt.State())
	}

	sink := NewDiscardSink()
	if wt.Enqueue(sink, &LogRecord{Level: Info}) {
		t.Error("expected Enqueue to be rejected once draining/terminated")
	}
}

func TestWritingThreadFlushesAndClosesWrittenSinks(t *testing.T) {
	wt, err := newWritingThread(64, true)
	if err != nil {
		t.Fatalf("newWritingThread: %v", err)
	}

	sink := &lifecycleTrackingSink{DiscardSink: *NewDiscardSink()}
	wt.Enqueue(sink, &LogRecord{Level: Info})
	wt.Shutdown()

	if !sink.flushed {
		t.Error("expected sink to be flushed on shutdown")
	}
	if !sink.closed {
		t.Error("expected sink to be closed on shutdown")
	}
}

type lifecycleTrackingSink struct {
	DiscardSink
	flushed bool
	closed  bool
}

func (s *lifecycleTrackingSink) Flush() error {
	s.flushed = true
	return nil
}

func (s *lifecycleTrackingSink) Close() error {
	s.closed = true
	return nil
}

func TestWritingThreadJoinReturnsAfterShutdown(t *testing.T) {
	wt, err := newWritingThread(64, true)
	if err != nil {
		t.Fatalf("newWritingThread: %v", err)
	}

	done := make(chan struct{})
	go func() {
		wt.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Shutdown did not complete in time")
	}

	wt.Join()
	if wt.State() != threadTerminated {
		t.Errorf("expected threadTerminated after Join, got %d", wt.State())
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := []struct{ in, want int64 }{
		{0, 64},
		{1, 64},
		{64, 64},
		{65, 128},
		{200, 256},
	}
	for _, tc := range cases {
		if got := nextPowerOfTwo(tc.in); got != tc.want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
