// ring.go: Lock-free MPSC ring buffer backing the asynchronous writing thread
//
// This is the generic ring engine the writing thread builds its (sink,
// record) queue on top of. It favours a fixed batch size and a simplified
// padding scheme over a fully adaptive commercial ring buffer, trading some
// peak throughput for a dependency-free implementation.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ringqueue

import (
	"fmt"
	"runtime"
	"time"
)

// ProcessorFunc processes a single dequeued item.
type ProcessorFunc[T any] func(*T)

// BackpressurePolicy defines how Write behaves when the ring is full.
type BackpressurePolicy int

const (
	// DropOnFull drops new items when the ring is full. The default; matches
	// a writing thread configured without blocking semantics.
	DropOnFull BackpressurePolicy = iota

	// BlockOnFull blocks the producer until space is available, matching a
	// bounded writing-thread queue configured to block rather than drop.
	BlockOnFull
)

func (bp BackpressurePolicy) String() string {
	switch bp {
	case DropOnFull:
		return "DropOnFull"
	case BlockOnFull:
		return "BlockOnFull"
	default:
		return "Unknown"
	}
}

// Ring is a lock-free multi-producer single-consumer ring buffer.
type Ring[T any] struct {
	buffer   []T
	capacity int64
	mask     int64

	writerCursor PaddedInt64
	readerCursor PaddedInt64

	availableBuffer []PaddedInt64

	processor          ProcessorFunc[T]
	batchSize          int64
	backpressurePolicy BackpressurePolicy
	idleStrategy       IdleStrategy

	closed PaddedInt64

	processed PaddedInt64
	dropped   PaddedInt64

	_ [64]byte
}

// Builder provides a fluent interface for constructing a Ring.
type Builder[T any] struct {
	capacity           int64
	processor          ProcessorFunc[T]
	batchSize          int64
	backpressurePolicy BackpressurePolicy
	idleStrategy       IdleStrategy
}

// NewBuilder creates a builder for a Ring of the given capacity, which must
// be a power of two. The default batch size is 64, or capacity when that is
// smaller.
func NewBuilder[T any](capacity int64) *Builder[T] {
	batchSize := int64(64)
	if capacity > 0 && capacity < batchSize {
		batchSize = capacity
	}
	return &Builder[T]{
		capacity:           capacity,
		batchSize:          batchSize,
		backpressurePolicy: DropOnFull,
	}
}

// WithProcessor sets the function invoked for each dequeued item.
func (b *Builder[T]) WithProcessor(processor ProcessorFunc[T]) *Builder[T] {
	b.processor = processor
	return b
}

// WithBatchSize sets the fixed number of items drained per consumer pass.
func (b *Builder[T]) WithBatchSize(batchSize int64) *Builder[T] {
	b.batchSize = batchSize
	return b
}

// WithBackpressurePolicy sets the behavior when the ring is full: DropOnFull
// for best-effort delivery, BlockOnFull when the writing thread must not
// lose an enqueued item.
func (b *Builder[T]) WithBackpressurePolicy(policy BackpressurePolicy) *Builder[T] {
	b.backpressurePolicy = policy
	return b
}

// WithIdleStrategy sets the consumer's backoff behavior when no work is
// available.
func (b *Builder[T]) WithIdleStrategy(strategy IdleStrategy) *Builder[T] {
	b.idleStrategy = strategy
	return b
}

// Build validates the configuration and constructs the Ring.
func (b *Builder[T]) Build() (*Ring[T], error) {
	if b.capacity <= 0 || (b.capacity&(b.capacity-1)) != 0 {
		return nil, ErrInvalidCapacity
	}
	if b.processor == nil {
		return nil, ErrMissingProcessor
	}
	if b.batchSize <= 0 || b.batchSize > b.capacity {
		return nil, ErrInvalidBatchSize
	}

	idleStrategy := b.idleStrategy
	if idleStrategy == nil {
		idleStrategy = NewProgressiveIdleStrategy()
	}

	r := &Ring[T]{
		buffer:             make([]T, b.capacity),
		capacity:           b.capacity,
		mask:               b.capacity - 1,
		availableBuffer:    make([]PaddedInt64, b.capacity),
		processor:          b.processor,
		batchSize:          b.batchSize,
		backpressurePolicy: b.backpressurePolicy,
		idleStrategy:       idleStrategy,
	}

	for i := range r.availableBuffer {
		r.availableBuffer[i].Store(-1)
	}

	return r, nil
}

// Write claims a slot and hands it to writerFunc to populate. Multiple
// producers may call this concurrently. Its return reports whether the item
// was accepted: under DropOnFull a full ring returns false immediately;
// under BlockOnFull the call blocks until space frees up or the ring closes.
func (r *Ring[T]) Write(writerFunc func(*T)) bool {
	if r.closed.Load() != 0 {
		r.dropped.Add(1)
		return false
	}

	switch r.backpressurePolicy {
	case BlockOnFull:
		return r.writeBlockOnFull(writerFunc)
	default:
		return r.writeDropOnFull(writerFunc)
	}
}

func (r *Ring[T]) writeDropOnFull(writerFunc func(*T)) bool {
	for {
		sequence := r.writerCursor.Load()
		if sequence >= r.readerCursor.Load()+r.capacity {
			r.dropped.Add(1)
			return false
		}
		if !r.writerCursor.CompareAndSwap(sequence, sequence+1) {
			continue
		}

		slot := &r.buffer[sequence&r.mask]
		writerFunc(slot)
		r.availableBuffer[sequence&r.mask].Store(sequence)

		return true
	}
}

func (r *Ring[T]) writeBlockOnFull(writerFunc func(*T)) bool {
	for {
		if r.closed.Load() != 0 {
			r.dropped.Add(1)
			return false
		}

		sequence := r.writerCursor.Load()
		currentReader := r.readerCursor.Load()
		if sequence < currentReader+r.capacity {
			if !r.writerCursor.CompareAndSwap(sequence, sequence+1) {
				continue
			}
			slot := &r.buffer[sequence&r.mask]
			writerFunc(slot)
			r.availableBuffer[sequence&r.mask].Store(sequence)
			return true
		}

		runtime.Gosched()
		time.Sleep(time.Microsecond)
	}
}

// ProcessBatch drains up to the configured batch size of contiguously
// available items and returns how many were processed.
func (r *Ring[T]) ProcessBatch() int {
	current := r.readerCursor.Load()
	writerPos := r.writerCursor.Load()

	if current >= writerPos {
		return 0
	}

	maxProcess := min(r.batchSize, writerPos-current)

	available := current - 1
	maxScan := current + maxProcess

	for seq := current; seq < maxScan; seq++ {
		if r.availableBuffer[seq&r.mask].Load() == seq {
			available = seq
		} else {
			break
		}
	}

	if available < current {
		return 0
	}

	processed := int(available - current + 1)

	for seq := current; seq <= available; seq++ {
		idx := seq & r.mask
		r.processor(&r.buffer[idx])
		r.availableBuffer[idx].Store(-1)
	}

	r.readerCursor.Store(available + 1)
	r.processed.Add(int64(processed))

	return processed
}

// LoopProcess runs the consumer loop until Close, applying the configured
// idle strategy when no work is available, then drains whatever remains.
func (r *Ring[T]) LoopProcess() {
	for r.closed.Load() == 0 {
		processed := r.ProcessBatch()

		if processed > 0 {
			r.idleStrategy.Reset()
		} else if !r.idleStrategy.Idle() {
			continue
		}
	}

	for r.ProcessBatch() > 0 {
	}
}

// Close stops the processing loop. Idempotent and safe to call concurrently
// with Write; subsequent writes return false.
func (r *Ring[T]) Close() {
	r.closed.Store(1)
}

// Flush blocks until every item written before the call has been processed,
// or returns an error after a bounded wait.
func (r *Ring[T]) Flush() error {
	targetPosition := r.writerCursor.Load()
	if targetPosition == 0 {
		return nil
	}

	currentReader := r.readerCursor.Load()
	pendingCount := targetPosition - currentReader
	if pendingCount <= 0 {
		return nil
	}

	initialProcessed := r.processed.Load()
	targetProcessed := initialProcessed + pendingCount

	timeout := 5 * time.Second
	poll := 100 * time.Microsecond
	if r.backpressurePolicy == DropOnFull {
		timeout = 3 * time.Second
		poll = time.Millisecond
	}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		if r.processed.Load() >= targetProcessed {
			return nil
		}
		runtime.Gosched()
		time.Sleep(poll)
	}

	currentReader = r.readerCursor.Load()
	currentProcessed := r.processed.Load()
	return fmt.Errorf("ringqueue: flush timeout: target_pos=%d reader_pos=%d target_processed=%d current_processed=%d",
		targetPosition, currentReader, targetProcessed, currentProcessed)
}

// Stats returns a snapshot of ring occupancy and throughput counters.
func (r *Ring[T]) Stats() map[string]int64 {
	writerPos := r.writerCursor.Load()
	readerPos := r.readerCursor.Load()

	return map[string]int64{
		"writer_position": writerPos,
		"reader_position": readerPos,
		"buffer_size":     r.capacity,
		"items_buffered":  writerPos - readerPos,
		"items_processed": r.processed.Load(),
		"items_dropped":   r.dropped.Load(),
		"closed":          r.closed.Load(),
		"batch_size":      r.batchSize,
	}
}
