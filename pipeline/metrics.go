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
	"sync"
	"sync/atomic"
	"time"
)

// PipelineMetrics tracks metrics for the entire pipeline.
// Uses atomic counters for thread-safe operation.
type PipelineMetrics struct {
	// Counters (atomic)
	pointsSubmitted   atomic.Uint64
	pointsTransformed atomic.Uint64
	pointsEmitted     atomic.Uint64
	transformErrors   atomic.Uint64
	emitErrors        atomic.Uint64

	// Queue tracking (requires mutex)
	mu                sync.RWMutex
	currentQueueDepth int
	peakQueueDepth    int

	// Timing
	lastPointTime time.Time
	startTime     time.Time
}

// NewPipelineMetrics creates a new PipelineMetrics.
func NewPipelineMetrics() *PipelineMetrics {
	return &PipelineMetrics{
		startTime: time.Now(),
	}
}

// RecordSubmit increments the submitted counter.
func (m *PipelineMetrics) RecordSubmit() {
	m.pointsSubmitted.Add(1)
}

// RecordTransform records a transform result.
func (m *PipelineMetrics) RecordTransform(duration time.Duration, err error) {
	if err != nil {
		m.transformErrors.Add(1)
	} else {
		m.pointsTransformed.Add(1)
	}
}

// RecordEmit records an emit result.
func (m *PipelineMetrics) RecordEmit(err error) {
	if err != nil {
		m.emitErrors.Add(1)
	} else {
		m.pointsEmitted.Add(1)
		m.mu.Lock()
		m.lastPointTime = time.Now()
		m.mu.Unlock()
	}
}

// UpdateQueueDepth updates the queue depth tracking.
func (m *PipelineMetrics) UpdateQueueDepth(depth int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentQueueDepth = depth
	if depth > m.peakQueueDepth {
		m.peakQueueDepth = depth
	}
}

// Stats returns a snapshot of the current metrics.
func (m *PipelineMetrics) Stats() PipelineStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return PipelineStats{
		PointsSubmitted:   m.pointsSubmitted.Load(),
		PointsTransformed: m.pointsTransformed.Load(),
		PointsEmitted:     m.pointsEmitted.Load(),
		TransformErrors:   m.transformErrors.Load(),
		EmitErrors:        m.emitErrors.Load(),
		CurrentQueueDepth: m.currentQueueDepth,
		PeakQueueDepth:    m.peakQueueDepth,
		LastPointTime:     m.lastPointTime,
		StartTime:         m.startTime,
	}
}

// Reset resets all metrics.
func (m *PipelineMetrics) Reset() {
	m.pointsSubmitted.Store(0)
	m.pointsTransformed.Store(0)
	m.pointsEmitted.Store(0)
	m.transformErrors.Store(0)
	m.emitErrors.Store(0)

	m.mu.Lock()
	m.currentQueueDepth = 0
	m.peakQueueDepth = 0
	m.lastPointTime = time.Time{}
	m.startTime = time.Now()
	m.mu.Unlock()
}
