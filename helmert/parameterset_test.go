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
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVector3Ops(t *testing.T) {
	v := Vector3{1.0, 2.0, 3.0}
	require.Equal(t, Vector3{2.0, 4.0, 6.0}, v.Add(v))
	require.Equal(t, Vector3{0.0, 0.0, 0.0}, v.Sub(v))
	require.Equal(t, Vector3{-1.0, -2.0, -3.0}, v.Scale(-1.0))
	require.True(t, v.IsFinite())
	require.False(t, Vector3{1.0, math.NaN(), 3.0}.IsFinite())
	require.False(t, Vector3{math.Inf(1), 0.0, 0.0}.IsFinite())
}

func TestMatrix(t *testing.T) {
	ps := ParameterSet{
		TranslateM: Vector3{0.01, 0.02, 0.03},
		TermD:      3.14e-9,
		RotateRad:  Vector3{-0.1, -0.2, -0.3},
	}
	expected := Matrix3{
		{3.14e-9, 0.3, -0.2},
		{-0.3, 3.14e-9, 0.1},
		{0.2, -0.1, 3.14e-9},
	}
	require.Equal(t, expected, ps.Matrix())
}

func TestMatrixMulVec(t *testing.T) {
	m := Matrix3{
		{1.0, 2.0, 3.0},
		{4.0, 5.0, 6.0},
		{7.0, 8.0, 9.0},
	}
	require.Equal(t, Vector3{14.0, 32.0, 50.0}, m.MulVec(Vector3{1.0, 2.0, 3.0}))
}

func TestParameterSetAddScale(t *testing.T) {
	// ITRF2008 -> ETRF2000 values propagated ten years past the
	// reference epoch
	parameters := ParameterSet{
		TranslateM: Vector3{0.0521, 0.0493, -0.0585},
		TermD:      1.34e-9,
		RotateRad: Vector3{
			4.319689898685965e-09,
			2.6131457411803984e-08,
			-4.223696789826277e-08,
		},
	}
	rates := ParameterSet{
		TranslateM: Vector3{0.0001, 0.0001, -0.0018},
		TermD:      0.08e-9,
		RotateRad: Vector3{
			3.9269908169872415e-10,
			2.3755870374367262e-09,
			-3.8397243543875246e-09,
		},
	}
	propagated := parameters.Add(rates.Scale(10.0))
	require.InDelta(t, 0.0531, propagated.TranslateM[0], 1e-12)
	require.InDelta(t, 0.0503, propagated.TranslateM[1], 1e-12)
	require.InDelta(t, -0.0765, propagated.TranslateM[2], 1e-12)
	require.InDelta(t, 2.14e-9, propagated.TermD, 1e-15)
	require.InDelta(t, 8.24668072e-09, propagated.RotateRad[0], 1e-15)
	require.InDelta(t, 4.98873278e-08, propagated.RotateRad[1], 1e-15)
	require.InDelta(t, -8.06342114e-08, propagated.RotateRad[2], 1e-15)
}

func TestNegate(t *testing.T) {
	ps := ParameterSet{
		TranslateM: Vector3{0.01, -0.02, 0.03},
		TermD:      2.0e-9,
		RotateRad:  Vector3{1e-8, -2e-8, 3e-8},
	}
	neg := ps.Negate()
	require.Equal(t, ps.TranslateM.Scale(-1.0), neg.TranslateM)
	require.Equal(t, -ps.TermD, neg.TermD)
	require.Equal(t, ps.RotateRad.Scale(-1.0), neg.RotateRad)
	// Negating twice gets back the original
	require.Equal(t, ps, neg.Negate())
}

func TestApply(t *testing.T) {
	// ITRF2008 -> ETRF2000 at the reference epoch, applied to the Onsala
	// Space Observatory EUREF class A station
	parameters := ParameterSet{
		TranslateM: Vector3{0.0521, 0.0493, -0.0585},
		TermD:      1.34e-9,
		RotateRad: Vector3{
			4.319689898685965e-09,
			2.6131457411803984e-08,
			-4.223696789826277e-08,
		},
	}
	onsala := Vector3{3370658.542, 711877.138, 5349786.952}
	result := parameters.Apply(onsala)
	require.InDelta(t, 3370658.768, result[0], 5e-4)
	require.InDelta(t, 711877.023, result[1], 5e-4)
	require.InDelta(t, 5349786.816, result[2], 5e-4)
}

func TestApplyIdentity(t *testing.T) {
	var identity ParameterSet
	position := Vector3{3370658.542, 711877.138, 5349786.952}
	require.Equal(t, position, identity.Apply(position))
}

func TestParameterSetValidate(t *testing.T) {
	good := ParameterSet{
		TranslateM: Vector3{0.0521, 0.0493, -0.0585},
		TermD:      1.34e-9,
		RotateRad:  Vector3{4.3e-9, 2.6e-8, -4.2e-8},
	}
	require.NoError(t, good.Validate())

	bad := good
	bad.TermD = 3.14
	require.Error(t, bad.Validate(), "expected error for large scale term")

	bad = good
	bad.TranslateM[1] = math.NaN()
	require.Error(t, bad.Validate(), "expected error for NaN translation")

	bad = good
	bad.RotateRad[2] = math.Inf(-1)
	require.Error(t, bad.Validate(), "expected error for infinite rotation")
}
