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

// Package helmert implements the time-dependent seven parameter similarity
// transformation used to convert geocentric coordinates between nearly
// aligned terrestrial reference frames.
//
// The transformation of a position from frame A to frame B is
//
//	x_B = x_A + T + M * x_A
//
// where T is a translation vector in meters and M is the matrix
//
//	|  D  -R3   R2 |
//	|  R3   D  -R1 |
//	| -R2   R1   D |
//
// built from the scale term D and the small rotation angles R1, R2, R3 in
// radians. Because the angles are tiny (tens of nanoradians), I + M is a
// rotation-plus-scale matrix linearized to first order, the convention used
// by the IERS and by Boucher & Altamimi for the ITRF/ETRF frame ties.
package helmert

import (
	"fmt"
	"math"
)

// MaxTermD is the largest scale term accepted by Validate. Published frame
// ties are on the order of 1e-9; anything above this limit indicates that a
// value was not converted to its dimensionless form.
const MaxTermD = 1e-6

// Vector3 is a three component vector. Positions are in meters, velocities
// in meters per year.
type Vector3 [3]float64

// Add returns the component-wise sum v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns the component-wise difference v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Scale returns v multiplied by the scalar f.
func (v Vector3) Scale(f float64) Vector3 {
	return Vector3{v[0] * f, v[1] * f, v[2] * f}
}

// IsFinite returns true if all components are finite numbers.
func (v Vector3) IsFinite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Matrix3 is a row-major 3x3 matrix.
type Matrix3 [3][3]float64

// MulVec returns the matrix-vector product m * v.
func (m Matrix3) MulVec(v Vector3) Vector3 {
	return Vector3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// ParameterSet holds the seven similarity parameters T1..T3, D, and R1..R3
// in SI units, or their annual rates of change. The zero value is the
// identity transformation.
type ParameterSet struct {
	// TranslateM is the translation vector (T1, T2, T3) in meters
	TranslateM Vector3
	// TermD is the dimensionless scale term D
	TermD float64
	// RotateRad holds the rotation angles (R1, R2, R3) in radians
	RotateRad Vector3
}

// Add returns the component-wise sum of two parameter sets.
func (p ParameterSet) Add(o ParameterSet) ParameterSet {
	return ParameterSet{
		TranslateM: p.TranslateM.Add(o.TranslateM),
		TermD:      p.TermD + o.TermD,
		RotateRad:  p.RotateRad.Add(o.RotateRad),
	}
}

// Scale returns the parameter set with every component multiplied by f.
func (p ParameterSet) Scale(f float64) ParameterSet {
	return ParameterSet{
		TranslateM: p.TranslateM.Scale(f),
		TermD:      p.TermD * f,
		RotateRad:  p.RotateRad.Scale(f),
	}
}

// Negate returns the parameter set with every component negated. To first
// order this is the inverse of the similarity transformation described by p.
func (p ParameterSet) Negate() ParameterSet {
	return p.Scale(-1.0)
}

// Matrix returns the combined scale and rotation matrix
//
//	|  D  -R3   R2 |
//	|  R3   D  -R1 |
//	| -R2   R1   D |
func (p ParameterSet) Matrix() Matrix3 {
	r1, r2, r3 := p.RotateRad[0], p.RotateRad[1], p.RotateRad[2]
	return Matrix3{
		{p.TermD, -r3, r2},
		{r3, p.TermD, -r1},
		{-r2, r1, p.TermD},
	}
}

// Apply transforms a position using the small-angle similarity model:
//
//	x' = x + T + M * x
func (p ParameterSet) Apply(position Vector3) Vector3 {
	return position.Add(p.TranslateM).Add(p.Matrix().MulVec(position))
}

// Validate checks that all components are finite and that the scale term is
// small enough to be a plausible dimensionless value.
func (p ParameterSet) Validate() error {
	if !p.TranslateM.IsFinite() {
		return fmt.Errorf("translation %v is not finite", p.TranslateM)
	}
	if math.IsNaN(p.TermD) || math.Abs(p.TermD) > MaxTermD {
		return fmt.Errorf("scale term %g must be a very small number", p.TermD)
	}
	if !p.RotateRad.IsFinite() {
		return fmt.Errorf("rotation %v is not finite", p.RotateRad)
	}
	return nil
}
