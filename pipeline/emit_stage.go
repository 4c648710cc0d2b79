// Copyright 2025 Geodetic Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrPendingLimitExceeded is returned when the emit stage's pending buffer is full.
var ErrPendingLimitExceeded = errors.New("pipeline: pending point limit exceeded")

// ResultFunc receives converted points in submission order.
type ResultFunc func(*PointItem) error

// EmitStage buffers converted points and hands them to the result function
// in submission order, so that bulk output keeps the order of the input
// even though the transform workers finish out of order.
//
// Thread-safety: While EmitStage uses internal locking for state
// management, ProcessWithStatus must be called from a single goroutine to
// guarantee ordered execution of ResultFunc. The EmitStageRunner provides
// this guarantee.
type EmitStage struct {
	resultFunc ResultFunc
	maxPending int
	mu         sync.Mutex
	// pending holds out-of-order items waiting to be emitted
	pending map[uint64]*PointItem
	// nextSequence is the next sequence number to emit
	nextSequence uint64
}

// NewEmitStage creates a new EmitStage with the given result function.
// maxPending limits the number of out-of-order points that can be buffered.
// Use 0 for unlimited.
func NewEmitStage(resultFunc ResultFunc, maxPending int) *EmitStage {
	return &EmitStage{
		resultFunc:   resultFunc,
		maxPending:   maxPending,
		pending:      make(map[uint64]*PointItem),
		nextSequence: 0,
	}
}

// Name returns the stage name.
func (s *EmitStage) Name() string {
	return "emit"
}

// Process buffers the item and emits any items that are now in order.
// Returns nil even if the item is buffered (not yet emitted).
func (s *EmitStage) Process(ctx context.Context, item *PointItem) error {
	_, err := s.ProcessWithStatus(ctx, item)
	return err
}

// ProcessWithStatus processes an item and returns all items that were
// emitted. If the item is next in sequence, it is emitted immediately along
// with any buffered items that become ready. If the item is out of order,
// it is buffered and the returned slice will be nil.
func (s *EmitStage) ProcessWithStatus(ctx context.Context, item *PointItem) ([]*PointItem, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.Lock()

	// Check if this is the next item to emit
	if item.SequenceNumber() == s.nextSequence {
		s.nextSequence++
		s.mu.Unlock()
		// Emit if converted (failed conversions only advance the sequence)
		if item.TransformError() == nil {
			s.emitItem(ctx, item)
		}
		// Try to emit any buffered items that are now in order
		buffered := s.emitPending(ctx)
		processed := make([]*PointItem, 0, 1+len(buffered))
		processed = append(processed, item)
		processed = append(processed, buffered...)
		return processed, nil
	}

	// Buffer for later - always add to preserve sequence ordering
	s.pending[item.SequenceNumber()] = item
	pendingCount := len(s.pending)
	s.mu.Unlock()

	// Check pending limit after buffering - return error to signal
	// backpressure but the item is still buffered to prevent sequence gaps
	if s.maxPending > 0 && pendingCount > s.maxPending {
		return nil, ErrPendingLimitExceeded
	}
	return nil, nil
}

// emitItem hands a single item to the result function without holding the lock.
func (s *EmitStage) emitItem(ctx context.Context, item *PointItem) {
	select {
	case <-ctx.Done():
		item.SetEmitted(false, ctx.Err(), 0)
		return
	default:
	}

	start := time.Now()
	var err error
	if s.resultFunc != nil {
		err = s.resultFunc(item)
	}
	duration := time.Since(start)

	if err != nil {
		item.SetEmitted(false, err, duration)
	} else {
		item.SetEmitted(true, nil, duration)
	}
}

// emitPending emits any pending items that are now in order. The lock is
// released while the result function runs.
func (s *EmitStage) emitPending(ctx context.Context) []*PointItem {
	var processed []*PointItem
	for {
		select {
		case <-ctx.Done():
			return processed
		default:
		}

		s.mu.Lock()
		item, ok := s.pending[s.nextSequence]
		if !ok {
			s.mu.Unlock()
			return processed
		}
		delete(s.pending, s.nextSequence)
		s.nextSequence++
		s.mu.Unlock()

		if item.TransformError() == nil {
			s.emitItem(ctx, item)
		}

		processed = append(processed, item)
	}
}

// Reset resets the stage state for reuse.
func (s *EmitStage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = make(map[uint64]*PointItem)
	s.nextSequence = 0
}

// PendingCount returns the number of items waiting to be emitted.
func (s *EmitStage) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// EmitStageRunner runs the emit stage as a single goroutine, which is what
// keeps ResultFunc calls ordered.
type EmitStageRunner struct {
	stage   *EmitStage
	input   <-chan *PointItem
	output  chan<- *PointItem
	errors  chan<- error
	metrics *PipelineMetrics
	done    chan struct{}
	running bool
	mu      sync.Mutex
}

// NewEmitStageRunner creates a new runner for the emit stage.
func NewEmitStageRunner(
	stage *EmitStage,
	input <-chan *PointItem,
	output chan<- *PointItem,
	errors chan<- error,
) *EmitStageRunner {
	return &EmitStageRunner{
		stage:  stage,
		input:  input,
		output: output,
		errors: errors,
		done:   make(chan struct{}),
	}
}

// SetMetrics attaches a metrics collector to the runner.
func (r *EmitStageRunner) SetMetrics(metrics *PipelineMetrics) {
	r.metrics = metrics
}

// Start starts the runner goroutine. Idempotent.
func (r *EmitStageRunner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true
	go r.run(ctx)
}

// Stop waits for the runner goroutine to finish. The input channel must be
// closed first.
func (r *EmitStageRunner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	<-r.done
}

func (r *EmitStageRunner) run(ctx context.Context) {
	defer close(r.done)

	for {
		select {
		case <-ctx.Done():
			return
		case item, ok := <-r.input:
			if !ok {
				return
			}
			processed, err := r.stage.ProcessWithStatus(ctx, item)
			if err != nil && r.errors != nil {
				select {
				case r.errors <- err:
				case <-ctx.Done():
					return
				}
			}
			for _, emitted := range processed {
				// Failed conversions pass through for tracking but are not
				// counted as emitted
				if r.metrics != nil && emitted.TransformError() == nil {
					r.metrics.RecordEmit(emitted.EmitError())
				}
				if r.output == nil {
					continue
				}
				select {
				case r.output <- emitted:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}
