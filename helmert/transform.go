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

package helmert

import (
	"fmt"
	"math"
)

// Unit conversion factors for the table convention of Boucher & Altamimi:
// translations in millimeters, scale in parts per billion, rotations in
// milliarcseconds.
const (
	Millimeter     = 0.001
	PartPerBillion = 1e-9
	Milliarcsecond = math.Pi / (180.0 * 3600.0 * 1000.0)
)

// TableRow holds the seven parameters (or their annual rates) in the units
// used by the published frame tie tables: T1, T2, T3 in mm, D in 1e-9, and
// R1, R2, R3 in mas.
type TableRow [7]float64

// ParameterSet converts the row to SI units.
func (r TableRow) ParameterSet() ParameterSet {
	return ParameterSet{
		TranslateM: Vector3{r[0], r[1], r[2]}.Scale(Millimeter),
		TermD:      r[3] * PartPerBillion,
		RotateRad:  Vector3{r[4], r[5], r[6]}.Scale(Milliarcsecond),
	}
}

// Transformation is a published frame tie: the seven similarity parameters
// valid at a reference epoch, plus their annual rates of change. It is
// immutable once constructed.
type Transformation struct {
	// FromFrame is the frame the parameters transform from, e.g. "ITRF2008"
	FromFrame string
	// ToFrame is the frame the parameters transform to, e.g. "ETRF2000"
	ToFrame string
	// Parameters are the values exact at RefEpoch
	Parameters ParameterSet
	// Rates are the annual rates of change of the parameters
	Rates ParameterSet
	// RefEpoch is the decimal year at which Parameters are exact
	RefEpoch float64
}

// NewTransformation creates a Transformation from parameter sets already in
// SI units.
func NewTransformation(
	fromFrame string,
	toFrame string,
	parameters ParameterSet,
	rates ParameterSet,
	refEpoch float64,
) Transformation {
	return Transformation{
		FromFrame:  fromFrame,
		ToFrame:    toFrame,
		Parameters: parameters,
		Rates:      rates,
		RefEpoch:   refEpoch,
	}
}

// NewTableTransformation creates a Transformation from rows in the units of
// the published tables (mm, 1e-9, mas).
func NewTableTransformation(
	fromFrame string,
	toFrame string,
	parameters TableRow,
	rates TableRow,
	refEpoch float64,
) Transformation {
	return NewTransformation(
		fromFrame,
		toFrame,
		parameters.ParameterSet(),
		rates.ParameterSet(),
		refEpoch,
	)
}

func (t Transformation) String() string {
	return fmt.Sprintf("%s->%s@%.1f", t.FromFrame, t.ToFrame, t.RefEpoch)
}

// Propagate returns the parameter values at the given epoch:
//
//	P(t) = P(t0) + Pdot * (t - t0)
//
// Propagation is linear and total; epochs far outside the validity interval
// of the underlying tie are extrapolated without complaint, which mirrors
// the linear-rate model itself.
func (t Transformation) Propagate(epoch float64) ParameterSet {
	return t.Parameters.Add(t.Rates.Scale(epoch - t.RefEpoch))
}

// Reversed returns the transformation in the opposite direction. The
// parameters and rates are negated, which inverts the similarity transform
// to first order. The residual is quadratic in the (tiny) parameters and
// far below the noise of the published ties.
func (t Transformation) Reversed() Transformation {
	return Transformation{
		FromFrame:  t.ToFrame,
		ToFrame:    t.FromFrame,
		Parameters: t.Parameters.Negate(),
		Rates:      t.Rates.Negate(),
		RefEpoch:   t.RefEpoch,
	}
}

// ApplyAt transforms a position from FromFrame to ToFrame at the given
// observation epoch.
func (t Transformation) ApplyAt(epoch float64, position Vector3) Vector3 {
	return t.Propagate(epoch).Apply(position)
}

// ApplyVelocity transforms a velocity from FromFrame to ToFrame. Only the
// rate components of the tie enter the velocity transformation:
//
//	v' = v + Tdot + Mdot * x
//
// where x is the position in FromFrame. The translation values themselves
// drop out (a constant offset does not change a rate), and the cross term
// M * v is second order.
func (t Transformation) ApplyVelocity(position Vector3, velocity Vector3) Vector3 {
	return velocity.Add(t.Rates.TranslateM).Add(t.Rates.Matrix().MulVec(position))
}

// Validate checks both parameter sets and the frame labels.
func (t Transformation) Validate() error {
	if t.FromFrame == "" || t.ToFrame == "" {
		return fmt.Errorf("transformation %s has an empty frame label", t)
	}
	if t.FromFrame == t.ToFrame {
		return fmt.Errorf("transformation %s maps a frame onto itself", t)
	}
	if math.IsNaN(t.RefEpoch) || math.IsInf(t.RefEpoch, 0) {
		return fmt.Errorf("transformation %s has a non-finite reference epoch", t)
	}
	if err := t.Parameters.Validate(); err != nil {
		return fmt.Errorf("transformation %s parameters: %w", t, err)
	}
	if err := t.Rates.Validate(); err != nil {
		return fmt.Errorf("transformation %s rates: %w", t, err)
	}
	return nil
}
