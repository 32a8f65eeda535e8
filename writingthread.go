// writingthread.go: Asynchronous dispatch via a bounded (sink, record) queue
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package beacon

import (
	"runtime"
	"sync/atomic"

	"github.com/agilira/beacon/internal/ringqueue"
)

// threadState is the WritingThread's lifecycle: Running -> Draining ->
// Terminated, with no transition back.
type threadState int32

const (
	threadRunning threadState = iota
	threadDraining
	threadTerminated
)

type queueItem struct {
	sink   Sink
	record *LogRecord
}

// WritingThread is the background consumer that performs sink writes when
// asynchronous dispatch is enabled. Enqueue is permitted only while the
// thread is Running; once Shutdown is called the queue moves to Draining
// and further enqueues are reported and discarded.
type WritingThread struct {
	ring      *ringqueue.Ring[queueItem]
	state     int32
	done      chan struct{}
	writtenTo map[Sink]bool
}

// newWritingThread starts a WritingThread backed by a ring of the given
// capacity, rounded up to a power of two with a floor of 64 (see
// nextPowerOfTwo). blockOnFull selects the ring's backpressure policy.
func newWritingThread(capacity int64, blockOnFull bool) (*WritingThread, error) {
	wt := &WritingThread{
		done:      make(chan struct{}),
		writtenTo: make(map[Sink]bool),
	}

	policy := ringqueue.DropOnFull
	if blockOnFull {
		policy = ringqueue.BlockOnFull
	}

	ring, err := ringqueue.NewBuilder[queueItem](nextPowerOfTwo(capacity)).
		WithProcessor(wt.process).
		WithBackpressurePolicy(policy).
		Build()
	if err != nil {
		return nil, err
	}
	wt.ring = ring

	go func() {
		defer close(wt.done)
		ring.LoopProcess()
	}()

	return wt, nil
}

// process is the ring's per-item callback: it performs the actual sink
// write, reporting a failure via InternalLogger without stopping the
// consumer loop (§4.5's "log and continue" rule).
func (wt *WritingThread) process(item *queueItem) {
	wt.writtenTo[item.sink] = true
	if err := item.sink.Write(item.record); err != nil {
		reportf(Error, "Failed to write log entry (%T)", err)
	}
}

// Enqueue hands (sink, record) to the writing thread. Returns false if the
// thread is not Running — draining or terminated — in which case the
// caller must report the drop itself (the dispatcher reports it via
// InternalLogger).
func (wt *WritingThread) Enqueue(sink Sink, record *LogRecord) bool {
	if threadState(atomic.LoadInt32(&wt.state)) != threadRunning {
		return false
	}
	return wt.ring.Write(func(slot *queueItem) {
		slot.sink = sink
		slot.record = record
	})
}

// Shutdown moves the thread to Draining, so no further enqueue is accepted,
// then returns once every item enqueued before the call has been passed to
// Write (Join semantics folded into Shutdown — there is no separate caller
// state to block on beyond this call returning).
func (wt *WritingThread) Shutdown() {
	if !atomic.CompareAndSwapInt32(&wt.state, int32(threadRunning), int32(threadDraining)) {
		return
	}

	if err := wt.ring.Flush(); err != nil {
		reportf(Warning, "Writing thread flush incomplete (%s)", err.Error())
	}
	wt.ring.Close()
	<-wt.done

	for sink := range wt.writtenTo {
		if err := sink.Flush(); err != nil {
			reportf(Error, "Failed to flush sink (%T)", err)
		}
		if err := sink.Close(); err != nil {
			reportf(Error, "Failed to close sink (%T)", err)
		}
	}

	atomic.StoreInt32(&wt.state, int32(threadTerminated))
}

// Join blocks until Shutdown has completed. Since Shutdown itself blocks
// until the consumer loop has exited and every written-to sink has been
// flushed and closed, Join only needs to wait for the Terminated state in
// case Shutdown was invoked concurrently from another goroutine.
func (wt *WritingThread) Join() {
	for {
		switch threadState(atomic.LoadInt32(&wt.state)) {
		case threadTerminated:
			return
		default:
			runtime.Gosched()
		}
	}
}

// State returns the thread's current lifecycle state.
func (wt *WritingThread) State() threadState {
	return threadState(atomic.LoadInt32(&wt.state))
}

// nextPowerOfTwo rounds n up to the nearest power of two, with a floor of
// 64 — the ring's backing array size must be a power of two.
func nextPowerOfTwo(n int64) int64 {
	if n <= 64 {
		return 64
	}
	p := int64(1)
	for p < n {
		p <<= 1
	}
	return p
}
