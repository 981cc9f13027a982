// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package search runs the explore page's debounced live search.

A [Debouncer] belongs to one live-search session. Every keystroke reschedules
the query; a query that was superseded before it finished can never publish
its results, so the client only ever sees the results of its latest input.
*/
package search

import (
	"context"
	"sync"
	"time"
)

// DefaultDelay is the quiet period after the last keystroke before querying.
const DefaultDelay = 300 * time.Millisecond

// Task is the debounced work. gen identifies the scheduling and is passed
// back to [Debouncer.Publish].
type Task func(ctx context.Context, gen uint64)

// Debouncer delays a task until input has been quiet for a fixed delay and
// lets only the latest scheduled task publish.
//
// # Concurrency
//
// Debouncer is safe for concurrent use.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	gen     uint64
	timer   *time.Timer
	cancel  context.CancelFunc
	stopped bool
}

// NewDebouncer returns a debouncer; a non-positive delay uses [DefaultDelay].
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

/*
Schedule restarts the timer with task.

Description: The previous timer is stopped and the previous task's context is
cancelled in the same critical section that bumps the generation, so no
earlier task can start publishing after this call returns.

Parameters:
  - parent: context.Context (the session context)
  - task: Task

Returns:
  - uint64: Generation of the scheduled task; 0 once stopped
*/
func (d *Debouncer) Schedule(parent context.Context, task Task) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return 0
	}

	d.invalidateLocked()

	d.gen++
	gen := d.gen

	ctx, cancel := context.WithCancel(parent)
	d.cancel = cancel
	d.timer = time.AfterFunc(d.delay, func() { task(ctx, gen) })

	return gen
}

// Publish runs apply if gen is still the latest generation and reports
// whether it ran.
//
// Only the generation check holds the lock; apply runs after it is released,
// so a slow apply never blocks Schedule. A Schedule that lands while apply is
// running does not interrupt it. Callers that need their applies ordered
// serialize them themselves.
func (d *Debouncer) Publish(gen uint64, apply func()) bool {
	if !d.IsLatest(gen) {
		return false
	}
	apply()
	return true
}

// IsLatest reports whether gen is the current generation of a running debouncer.
func (d *Debouncer) IsLatest(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.stopped && gen == d.gen
}

// Latest returns the most recently scheduled generation.
func (d *Debouncer) Latest() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen
}

// Cancel discards pending and running work; later calls to Schedule still work.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.invalidateLocked()
	d.gen++
}

// Stop discards all work and makes later calls to Schedule no-ops.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.invalidateLocked()
	d.gen++
	d.stopped = true
}

func (d *Debouncer) invalidateLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
