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

// Package pipeline provides a concurrent conversion pipeline for bulk
// coordinate sets. Conversions of independent points share no state, so
// the transform stage fans out across a worker pool while results are
// emitted in submission order.
package pipeline

import (
	"context"
	"time"

	goetrf "github.com/geodetic-io/goetrf"
)

// Stage represents a processing stage in the point pipeline.
type Stage interface {
	// Name returns the name of the stage for metrics.
	Name() string
	// Process processes a single point item. Returns an error if processing fails.
	Process(ctx context.Context, item *PointItem) error
}

// StageFunc is an adapter that allows using ordinary functions as Stage implementations.
type StageFunc struct {
	name string
	fn   func(ctx context.Context, item *PointItem) error
}

// NewStageFunc creates a new StageFunc with the given name and processing function.
func NewStageFunc(name string, fn func(ctx context.Context, item *PointItem) error) *StageFunc {
	return &StageFunc{
		name: name,
		fn:   fn,
	}
}

// Name returns the name of the stage.
func (s *StageFunc) Name() string {
	return s.name
}

// Process calls the underlying function.
func (s *StageFunc) Process(ctx context.Context, item *PointItem) error {
	return s.fn(ctx, item)
}

// Pipeline represents a bulk coordinate conversion pipeline.
type Pipeline interface {
	// Start starts the pipeline processing.
	Start(ctx context.Context) error
	// Submit submits a new coordinate for conversion.
	// The context allows callers to handle timeouts or cancellations when
	// the pipeline is full and applying backpressure.
	Submit(ctx context.Context, coordinate goetrf.Coordinate) error
	// Results returns a channel of converted point items.
	Results() <-chan *PointItem
	// Errors returns a channel of processing errors.
	Errors() <-chan error
	// Stop gracefully stops the pipeline.
	Stop() error
	// WaitForDrain waits for all submitted points to be processed.
	WaitForDrain(ctx context.Context) error
	// Stats returns the current pipeline statistics.
	Stats() PipelineStats
}

// PipelineStats contains statistics about pipeline performance.
type PipelineStats struct {
	// PointsSubmitted is the total number of points submitted to the pipeline.
	PointsSubmitted uint64
	// PointsTransformed is the number of points converted successfully.
	PointsTransformed uint64
	// PointsEmitted is the number of points handed to the result function in order.
	PointsEmitted uint64
	// TransformErrors is the number of failed conversions.
	TransformErrors uint64
	// EmitErrors is the number of result function failures.
	EmitErrors uint64
	// CurrentQueueDepth is the number of items in inter-stage channels.
	CurrentQueueDepth int
	// PeakQueueDepth is the highest observed queue depth.
	PeakQueueDepth int
	// LastPointTime is when the most recent point finished.
	LastPointTime time.Time
	// StartTime is when the pipeline metrics were created or reset.
	StartTime time.Time
}
