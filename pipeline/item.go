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
	"time"

	goetrf "github.com/geodetic-io/goetrf"
	"github.com/geodetic-io/goetrf/helmert"
)

// PointItem represents a coordinate as it moves through the pipeline.
// It is thread-safe and tracks the processing state at each stage.
type PointItem struct {
	// Immutable fields (set at construction, never modified)
	// These are unexported to prevent modification; use getter methods.
	input          goetrf.Coordinate
	sequenceNumber uint64
	receivedAt     time.Time

	// Mutable fields protected by mutex
	mu sync.RWMutex

	// Transform stage results
	output            goetrf.Coordinate
	transformError    error
	transformDuration time.Duration

	// Emit stage results
	emitted      bool
	emitError    error
	emitDuration time.Duration
}

// NewPointItem creates a new PointItem with the given immutable fields.
// The velocity vector, if present, is copied so that the item owns its
// data, which matters once workers process items concurrently.
func NewPointItem(input goetrf.Coordinate, seq uint64) *PointItem {
	if input.Velocity != nil {
		velocity := *input.Velocity
		input.Velocity = &velocity
	}
	return &PointItem{
		input:          input,
		sequenceNumber: seq,
		receivedAt:     time.Now(),
	}
}

// Input returns the coordinate as submitted, in its source frame.
func (p *PointItem) Input() goetrf.Coordinate {
	return p.input
}

// SequenceNumber returns the submission sequence number.
func (p *PointItem) SequenceNumber() uint64 {
	return p.sequenceNumber
}

// ReceivedAt returns the time the item entered the pipeline.
func (p *PointItem) ReceivedAt() time.Time {
	return p.receivedAt
}

// Output returns the converted coordinate. Only valid once the transform
// stage has run without error.
func (p *PointItem) Output() goetrf.Coordinate {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.output
}

// OutputPosition is a convenience accessor for the converted position.
func (p *PointItem) OutputPosition() helmert.Vector3 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.output.Position
}

// TransformError returns the error from the transform stage, if any.
func (p *PointItem) TransformError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.transformError
}

// TransformDuration returns how long the transform stage took.
func (p *PointItem) TransformDuration() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.transformDuration
}

// SetTransformed records the transform stage result.
func (p *PointItem) SetTransformed(output goetrf.Coordinate, err error, duration time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.output = output
	p.transformError = err
	p.transformDuration = duration
}

// Emitted returns true once the item has been handed to the result
// function in sequence order.
func (p *PointItem) Emitted() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.emitted
}

// EmitError returns the error from the result function, if any.
func (p *PointItem) EmitError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.emitError
}

// SetEmitted records the emit stage result.
func (p *PointItem) SetEmitted(emitted bool, err error, duration time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.emitted = emitted
	p.emitError = err
	p.emitDuration = duration
}
