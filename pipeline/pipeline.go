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
	"sync/atomic"
	"time"

	goetrf "github.com/geodetic-io/goetrf"
)

// ErrPipelineStopped is returned when trying to submit to a stopped pipeline.
var ErrPipelineStopped = errors.New("pipeline is stopped")

// ErrPipelineNotStarted is returned when trying to use a pipeline that hasn't been started.
var ErrPipelineNotStarted = errors.New("pipeline not started")

// ErrMissingTargetFrame is returned when the pipeline is started without a target frame.
var ErrMissingTargetFrame = errors.New("pipeline: target frame not configured")

// closedResultsChan is a closed channel returned by Results() before Start() is called.
// This prevents callers from blocking indefinitely on a nil channel.
var closedResultsChan = func() <-chan *PointItem {
	ch := make(chan *PointItem)
	close(ch)
	return ch
}()

// newNotStartedErrorsChan creates a fresh channel that yields ErrPipelineNotStarted once.
// Each call creates a new channel to ensure all callers receive the error.
func newNotStartedErrorsChan() <-chan error {
	ch := make(chan error, 1)
	ch <- ErrPipelineNotStarted
	close(ch)
	return ch
}

// PointPipeline orchestrates bulk coordinate conversion: a pool of
// transform workers feeding an ordered emit stage.
type PointPipeline struct {
	config PipelineConfig

	// Stages
	transformStage *TransformStage
	emitStage      *EmitStage

	// Worker pool and runner
	transformPool *StageWorkerPool
	emitRunner    *EmitStageRunner

	// Channels
	submitChan      chan *PointItem
	transformedChan chan *PointItem
	resultsChan     chan *PointItem
	errorsChan      chan error

	// Metrics
	metrics *PipelineMetrics

	// State
	sequenceCounter uint64
	ctx             context.Context
	cancel          context.CancelFunc
	started         atomic.Bool
	stopped         atomic.Bool
	wg              sync.WaitGroup
	mu              sync.Mutex   // protects Start/Stop
	submitMu        sync.RWMutex // protects Submit against concurrent Stop
}

// NewPointPipeline creates a new PointPipeline using functional options.
//
// Example:
//
//	p := NewPointPipeline(
//	    WithTargetFrame("ETRF2000"),
//	    WithTransformWorkers(4),
//	)
func NewPointPipeline(opts ...PipelineOption) *PointPipeline {
	config := DefaultPipelineConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &PointPipeline{
		config:  config,
		metrics: NewPipelineMetrics(),
	}
}

// Start starts the pipeline processing.
func (p *PointPipeline) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped.Load() {
		return ErrPipelineStopped
	}

	if p.started.Load() {
		return nil // Already started
	}

	// Validate configuration
	if p.config.TargetFrame == "" {
		return ErrMissingTargetFrame
	}
	if p.config.Converter == nil {
		p.config.Converter = goetrf.New()
	}

	// Create cancellable context
	p.ctx, p.cancel = context.WithCancel(ctx)

	// Create channels
	bufSize := p.config.BufferSize
	p.submitChan = make(chan *PointItem, bufSize)
	p.transformedChan = make(chan *PointItem, bufSize)
	p.resultsChan = make(chan *PointItem, bufSize)
	p.errorsChan = make(chan error, bufSize)

	// Create stages
	p.transformStage = NewTransformStage(p.config.Converter, p.config.TargetFrame)
	p.emitStage = NewEmitStage(p.config.ResultFunc, p.config.MaxPendingPoints)

	p.transformPool = NewStageWorkerPool(StageWorkerPoolConfig{
		Stage:         p.transformStage,
		NumWorkers:    p.config.TransformWorkers,
		Input:         p.submitChan,
		Output:        p.transformedChan,
		Errors:        p.errorsChan,
		RecordMetrics: TransformMetricsRecorder(p.metrics),
	})

	p.emitRunner = NewEmitStageRunner(
		p.emitStage,
		p.transformedChan,
		p.resultsChan,
		p.errorsChan,
	)
	p.emitRunner.SetMetrics(p.metrics)

	// Start all stages
	// Note: p.ctx is derived from the passed ctx via context.WithCancel above
	p.transformPool.Start(p.ctx) //nolint:contextcheck
	p.emitRunner.Start(p.ctx)    //nolint:contextcheck

	// Start metrics collection goroutine
	p.wg.Add(1)
	go p.metricsCollector()

	p.started.Store(true)
	return nil
}

// Submit submits a new coordinate for conversion.
// This method is safe to call concurrently with Stop().
// The context allows callers to handle timeouts or cancellations when the
// pipeline is full and applying backpressure.
func (p *PointPipeline) Submit(ctx context.Context, coordinate goetrf.Coordinate) error {
	// Early check for the common case (before acquiring lock)
	if !p.started.Load() {
		return ErrPipelineNotStarted
	}

	// RLock allows concurrent submits while preventing races with Stop().
	// Between the stopped check and channel send, Stop() could close
	// submitChan causing a panic. The RLock ensures Stop() waits until all
	// in-flight submits complete before closing the channel.
	p.submitMu.RLock()
	defer p.submitMu.RUnlock()

	// Check stopped under lock to ensure we don't race with Stop()
	if p.stopped.Load() {
		return ErrPipelineStopped
	}

	// Allocate sequence number only once, then send.
	// A single blocking select avoids sequence gaps that would occur if we
	// allocated in a non-blocking attempt that failed.
	item := NewPointItem(coordinate, atomic.AddUint64(&p.sequenceCounter, 1)-1)

	select {
	case p.submitChan <- item:
		p.metrics.RecordSubmit()
		return nil
	case <-ctx.Done():
		// Context cancelled while waiting - sequence gap is acceptable
		// because this typically means shutdown.
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPipelineStopped
	}
}

// Results returns a channel of processed point items in submission order.
// If the pipeline has not been started, returns a closed channel to prevent blocking.
func (p *PointPipeline) Results() <-chan *PointItem {
	if !p.started.Load() {
		return closedResultsChan
	}
	return p.resultsChan
}

// Errors returns a channel of processing errors.
// If the pipeline has not been started, returns a channel that yields
// ErrPipelineNotStarted once and then closes.
func (p *PointPipeline) Errors() <-chan error {
	if !p.started.Load() {
		return newNotStartedErrorsChan()
	}
	return p.errorsChan
}

// Stop gracefully stops the pipeline.
func (p *PointPipeline) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started.Load() || p.stopped.Load() {
		return nil
	}

	// Cancel context FIRST to unblock any Submit() calls waiting on channel
	// send. This must happen before acquiring submitMu.Lock() to avoid
	// deadlock: Submit() holds RLock while blocking on channel, and we need
	// it to unblock via ctx.Done() before we can acquire the write lock.
	p.cancel()

	// Now acquire write lock to ensure no Submit() calls are in progress.
	p.submitMu.Lock()
	p.stopped.Store(true)
	// Close input channel to signal shutdown
	close(p.submitChan)
	p.submitMu.Unlock()

	// Wait for transform workers to finish
	p.transformPool.Stop()
	close(p.transformedChan)

	// Wait for the emit runner to finish
	p.emitRunner.Stop()

	// Close output channels
	close(p.resultsChan)
	close(p.errorsChan)

	// Wait for metrics collector
	p.wg.Wait()

	return nil
}

// Stats returns the current pipeline statistics.
func (p *PointPipeline) Stats() PipelineStats {
	return p.metrics.Stats()
}

// PendingCount returns the approximate number of items still being
// processed. This includes items in inter-stage channels and items buffered
// in the emit stage.
func (p *PointPipeline) PendingCount() int {
	if !p.started.Load() {
		return 0
	}
	channelDepth := len(p.submitChan) + len(p.transformedChan)
	emitPending := 0
	if p.emitStage != nil {
		emitPending = p.emitStage.PendingCount()
	}
	return channelDepth + emitPending
}

// WaitForDrain blocks until all currently submitted items have been
// processed or the context is cancelled.
func (p *PointPipeline) WaitForDrain(ctx context.Context) error {
	if !p.started.Load() {
		return ErrPipelineNotStarted
	}

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if p.PendingCount() == 0 {
				return nil
			}
		}
	}
}

// metricsCollector collects metrics from processed items.
func (p *PointPipeline) metricsCollector() {
	defer p.wg.Done()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			// Update queue depth
			depth := len(p.submitChan) + len(p.transformedChan)
			p.metrics.UpdateQueueDepth(depth)
		}
	}
}

// DrainResults reads all available results without blocking.
// Useful for testing or cleanup.
func (p *PointPipeline) DrainResults() []*PointItem {
	var results []*PointItem
	for {
		select {
		case item, ok := <-p.resultsChan:
			if !ok {
				return results
			}
			results = append(results, item)
		default:
			return results
		}
	}
}

// DrainErrors reads all available errors without blocking.
// Useful for testing or cleanup.
func (p *PointPipeline) DrainErrors() []error {
	var errs []error
	for {
		select {
		case err, ok := <-p.errorsChan:
			if !ok {
				return errs
			}
			errs = append(errs, err)
		default:
			return errs
		}
	}
}
