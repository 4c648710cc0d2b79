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
	"time"

	goetrf "github.com/geodetic-io/goetrf"
)

// TransformStage converts point items into the pipeline's target frame.
// The underlying converter is stateless, so any number of workers can run
// this stage concurrently.
type TransformStage struct {
	converter   *goetrf.Converter
	targetFrame string
}

// NewTransformStage creates a TransformStage for the given converter and
// target frame.
func NewTransformStage(converter *goetrf.Converter, targetFrame string) *TransformStage {
	return &TransformStage{
		converter:   converter,
		targetFrame: targetFrame,
	}
}

// Name returns the stage name.
func (s *TransformStage) Name() string {
	return "transform"
}

// Process converts the item's coordinate and records the result on the item.
func (s *TransformStage) Process(ctx context.Context, item *PointItem) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	start := time.Now()
	output, err := s.converter.Convert(item.Input(), s.targetFrame)
	item.SetTransformed(output, err, time.Since(start))
	return err
}
