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
	"runtime"

	goetrf "github.com/geodetic-io/goetrf"
)

// DefaultMaxPendingPoints is the default limit for out-of-order points
// buffered in the emit stage.
const DefaultMaxPendingPoints = 4096

// PipelineConfig holds configuration for a PointPipeline.
type PipelineConfig struct {
	// Converter performs the actual frame conversions. Defaults to a
	// converter over the built-in catalog.
	Converter *goetrf.Converter
	// TargetFrame is the frame every submitted point is converted into.
	TargetFrame string
	// TransformWorkers is the number of parallel transform workers.
	TransformWorkers int
	// BufferSize is the buffer size for inter-stage channels.
	BufferSize int
	// MaxPendingPoints limits out-of-order points buffered in the emit
	// stage. This prevents unbounded memory growth when workers finish far
	// out of order.
	MaxPendingPoints int
	// ResultFunc receives converted points in submission order; may be nil
	// if callers consume the Results channel instead.
	ResultFunc ResultFunc
}

// DefaultPipelineConfig returns a PipelineConfig with sensible defaults.
func DefaultPipelineConfig() PipelineConfig {
	workers := runtime.NumCPU()
	if workers < 2 {
		workers = 2
	}
	return PipelineConfig{
		TransformWorkers: workers,
		BufferSize:       256,
		MaxPendingPoints: DefaultMaxPendingPoints,
	}
}

// PipelineOption is a function that modifies the pipeline configuration.
type PipelineOption func(*PipelineConfig)

// WithConverter sets the converter used by the transform stage.
func WithConverter(converter *goetrf.Converter) PipelineOption {
	return func(c *PipelineConfig) {
		c.Converter = converter
	}
}

// WithTargetFrame sets the frame submitted points are converted into.
func WithTargetFrame(frame string) PipelineOption {
	return func(c *PipelineConfig) {
		c.TargetFrame = frame
	}
}

// WithTransformWorkers sets the number of parallel transform workers.
func WithTransformWorkers(workers int) PipelineOption {
	return func(c *PipelineConfig) {
		c.TransformWorkers = workers
	}
}

// WithBufferSize sets the buffer size for inter-stage channels.
func WithBufferSize(size int) PipelineOption {
	return func(c *PipelineConfig) {
		c.BufferSize = size
	}
}

// WithMaxPendingPoints limits the emit stage's out-of-order buffer.
func WithMaxPendingPoints(limit int) PipelineOption {
	return func(c *PipelineConfig) {
		c.MaxPendingPoints = limit
	}
}

// WithResultFunc sets the in-order result callback.
func WithResultFunc(fn ResultFunc) PipelineOption {
	return func(c *PipelineConfig) {
		c.ResultFunc = fn
	}
}
