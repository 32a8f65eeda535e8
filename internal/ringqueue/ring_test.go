// ring_test.go: Test suite for the lock-free MPSC ring
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ringqueue

import (
	"sync"
	"testing"
)

func TestBuilderValidation(t *testing.T) {
	if _, err := NewBuilder[int](3).WithProcessor(func(*int) {}).Build(); err != ErrInvalidCapacity {
		t.Errorf("expected ErrInvalidCapacity for a non power-of-two capacity, got %v", err)
	}
	if _, err := NewBuilder[int](8).Build(); err != ErrMissingProcessor {
		t.Errorf("expected ErrMissingProcessor, got %v", err)
	}
	if _, err := NewBuilder[int](8).WithProcessor(func(*int) {}).WithBatchSize(0).Build(); err != ErrInvalidBatchSize {
		t.Errorf("expected ErrInvalidBatchSize, got %v", err)
	}
}

func TestRingProcessesInOrder(t *testing.T) {
	var mu sync.Mutex
	var got []int

	ring, err := NewBuilder[int](64).
		WithProcessor(func(v *int) {
			mu.Lock()
			got = append(got, *v)
			mu.Unlock()
		}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for i := 0; i < 50; i++ {
		n := i
		if !ring.Write(func(slot *int) { *slot = n }) {
			t.Fatalf("Write rejected item %d", i)
		}
	}

	for ring.ProcessBatch() > 0 {
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 50 {
		t.Fatalf("expected 50 processed items, got %d", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("item %d out of order: got %d", i, v)
		}
	}
}

func TestRingDropOnFullWhenSaturated(t *testing.T) {
	blocked := make(chan struct{})
	ring, err := NewBuilder[int](4).
		WithProcessor(func(v *int) { <-blocked }).
		WithBackpressurePolicy(DropOnFull).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer close(blocked)

	accepted := 0
	for i := 0; i < 100; i++ {
		if ring.Write(func(slot *int) {}) {
			accepted++
		}
	}

	if accepted > 4 {
		t.Errorf("expected at most capacity (4) accepted before drops, got %d", accepted)
	}

	stats := ring.Stats()
	if stats["items_dropped"] == 0 {
		t.Error("expected some dropped items once the ring saturated")
	}
}

func TestRingCloseStopsLoopProcess(t *testing.T) {
	var count int
	ring, err := NewBuilder[int](64).
		WithProcessor(func(v *int) { count++ }).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for i := 0; i < 10; i++ {
		ring.Write(func(slot *int) {})
	}

	done := make(chan struct{})
	go func() {
		ring.LoopProcess()
		close(done)
	}()

	ring.Close()
	<-done

	if count != 10 {
		t.Errorf("expected all 10 items drained before loop exit, got %d", count)
	}
}

func TestRingFlushWaitsForProcessing(t *testing.T) {
	ring, err := NewBuilder[int](64).
		WithProcessor(func(v *int) {}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for i := 0; i < 5; i++ {
		ring.Write(func(slot *int) {})
	}

	go func() {
		for ring.ProcessBatch() == 0 {
		}
	}()

	if err := ring.Flush(); err != nil {
		t.Errorf("Flush: %v", err)
	}
}
