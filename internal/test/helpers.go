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

// Package test provides helpers for use in tests
package test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireVectorInDelta asserts that two 3-vectors agree component-wise
// within delta.
func RequireVectorInDelta[V ~[3]float64](t testing.TB, expected V, actual V, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		require.InDelta(
			t,
			expected[i],
			actual[i],
			delta,
			"component %d of %v != %v",
			i,
			actual,
			expected,
		)
	}
}
