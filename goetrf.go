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

// Package goetrf converts geocentric coordinates between realizations of
// the international (ITRF) and European (ETRF) terrestrial reference
// frames, following the EUREF specification of Boucher & Altamimi (2011,
// memo version 8 bis).
//
// Each pair of frames is linked by a time-dependent seven parameter
// similarity transformation: three translations, three small rotation
// angles, and a scale term, together with the annual rate of change of all
// seven. Before a transformation is applied, its parameters are propagated
// linearly from their reference epoch to the observation epoch of the
// coordinate. When no direct tie links the requested frames, the converter
// composes a chain of ties through intermediate frames.
//
// The engine is purely computational: the catalog of ties is immutable
// after construction, every conversion is a deterministic function of its
// inputs, and concurrent use needs no synchronization.
package goetrf

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/geodetic-io/goetrf/catalog"
	"github.com/geodetic-io/goetrf/helmert"
)

// Coordinate is a geocentric position tagged with the reference frame it is
// expressed in and the decimal-year epoch at which it was observed. The
// optional velocity is in meters per year.
type Coordinate struct {
	// Position holds X, Y, Z in meters
	Position helmert.Vector3
	// Velocity holds the station velocity in meters/year; nil if unknown
	Velocity *helmert.Vector3
	// Frame is the reference frame label, e.g. "ITRF2008"
	Frame string
	// Epoch is the observation epoch as a decimal year, e.g. 2013.5
	Epoch float64
}

// Converter transforms coordinates between the frames of its catalog. The
// zero-cost way to obtain one with the built-in EUREF catalog is New().
type Converter struct {
	catalog *catalog.Catalog
}

// New creates a Converter. Without options it uses the built-in catalog of
// published ties.
func New(options ...ConverterOptionFunc) *Converter {
	c := &Converter{}
	for _, option := range options {
		option(c)
	}
	if c.catalog == nil {
		c.catalog = catalog.Builtin()
	}
	return c
}

// Catalog returns the converter's catalog.
func (c *Converter) Catalog() *catalog.Catalog {
	return c.catalog
}

// ListKnownFrames returns the frame labels covered by the converter's
// catalog, in catalog order.
func (c *Converter) ListKnownFrames() []string {
	return c.catalog.Frames()
}

// HasPath returns true if the converter can transform between the two
// frames, directly or through intermediate frames.
func (c *Converter) HasPath(fromFrame string, toFrame string) bool {
	return c.catalog.HasPath(fromFrame, toFrame)
}

// Chain returns the sequence of direct transformations the converter would
// apply between the two frames. Useful for inspecting how a conversion is
// routed; Convert performs the same resolution internally.
func (c *Converter) Chain(fromFrame string, toFrame string) ([]helmert.Transformation, error) {
	if err := c.checkFrames(fromFrame, toFrame); err != nil {
		return nil, err
	}
	return c.resolve(fromFrame, toFrame)
}

// Convert transforms a coordinate into the target frame. The observation
// epoch is unchanged: the transformation swaps the frame of reference, not
// the instant of observation. If the coordinate carries a velocity, the
// velocity is transformed alongside the position using the rate components
// of each tie.
//
// Convert fails with ErrInvalidEpoch for a non-finite epoch, with
// ErrUnknownFrame when either frame label is absent from the catalog, and
// with ErrNoTransformationPath when the catalog does not connect the two
// frames.
func (c *Converter) Convert(coordinate Coordinate, targetFrame string) (Coordinate, error) {
	if math.IsNaN(coordinate.Epoch) || math.IsInf(coordinate.Epoch, 0) {
		return Coordinate{}, fmt.Errorf("%w: %v", ErrInvalidEpoch, coordinate.Epoch)
	}
	if err := c.checkFrames(coordinate.Frame, targetFrame); err != nil {
		return Coordinate{}, err
	}
	if coordinate.Frame == targetFrame {
		return coordinate, nil
	}
	steps, err := c.resolve(coordinate.Frame, targetFrame)
	if err != nil {
		return Coordinate{}, err
	}
	position := coordinate.Position
	var velocity *helmert.Vector3
	if coordinate.Velocity != nil {
		v := *coordinate.Velocity
		velocity = &v
	}
	for _, step := range steps {
		// The velocity transform reads the position in the step's source
		// frame, so it runs before the position is advanced
		if velocity != nil {
			*velocity = step.ApplyVelocity(position, *velocity)
		}
		position = step.Propagate(coordinate.Epoch).Apply(position)
	}
	return Coordinate{
		Position: position,
		Velocity: velocity,
		Frame:    targetFrame,
		Epoch:    coordinate.Epoch,
	}, nil
}

func (c *Converter) checkFrames(frames ...string) error {
	for _, frame := range frames {
		if !c.catalog.HasFrame(frame) {
			return fmt.Errorf("%w: %s", ErrUnknownFrame, frame)
		}
	}
	return nil
}

func (c *Converter) resolve(fromFrame string, toFrame string) ([]helmert.Transformation, error) {
	steps, err := c.catalog.Resolve(fromFrame, toFrame)
	if err != nil {
		if errors.Is(err, catalog.ErrNoPath) {
			return nil, fmt.Errorf(
				"%w: %s -> %s",
				ErrNoTransformationPath,
				fromFrame,
				toFrame,
			)
		}
		return nil, err
	}
	return steps, nil
}

var defaultConverter = sync.OnceValue(func() *Converter {
	return New()
})

// Convert transforms a position between frames using the built-in catalog.
// It is a convenience wrapper around Converter.Convert for callers that do
// not need velocities or a custom catalog.
func Convert(
	position helmert.Vector3,
	epoch float64,
	sourceFrame string,
	targetFrame string,
) (helmert.Vector3, error) {
	out, err := defaultConverter().Convert(
		Coordinate{Position: position, Frame: sourceFrame, Epoch: epoch},
		targetFrame,
	)
	if err != nil {
		return helmert.Vector3{}, err
	}
	return out.Position, nil
}

// ListKnownFrames returns the frame labels of the built-in catalog.
func ListKnownFrames() []string {
	return defaultConverter().ListKnownFrames()
}

// HasPath reports whether the built-in catalog connects the two frames.
func HasPath(fromFrame string, toFrame string) bool {
	return defaultConverter().HasPath(fromFrame, toFrame)
}
