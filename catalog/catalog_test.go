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

package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geodetic-io/goetrf/helmert"
)

func TestBuiltinLookup(t *testing.T) {
	entry, ok := Builtin().Lookup("ITRF2008", "ETRF2000")
	require.True(t, ok, "expected a direct ITRF2008 -> ETRF2000 tie")
	require.Equal(t, "ITRF2008", entry.FromFrame)
	require.Equal(t, "ETRF2000", entry.ToFrame)
	require.Equal(t, 2000.0, entry.RefEpoch)
	require.InDelta(t, 0.0521, entry.Parameters.TranslateM[0], 1e-12)
}

func TestBuiltinReverseLookup(t *testing.T) {
	forward, ok := Builtin().Lookup("ITRF2008", "ETRF2000")
	require.True(t, ok)
	reverse, ok := Builtin().Lookup("ETRF2000", "ITRF2008")
	require.True(t, ok, "expected a derived ETRF2000 -> ITRF2008 tie")
	require.Equal(t, forward.Parameters.Negate(), reverse.Parameters)
	require.Equal(t, forward.Rates.Negate(), reverse.Rates)
	require.Equal(t, forward.RefEpoch, reverse.RefEpoch)
}

func TestLookupUnknownPair(t *testing.T) {
	_, ok := Builtin().Lookup("ITRF2008", "GDA94")
	require.False(t, ok)
	_, ok = Builtin().Lookup("GDA94", "GDA2020")
	require.False(t, ok)
}

func TestBuiltinFramesOrder(t *testing.T) {
	require.Equal(
		t,
		[]string{"ITRF2008", "ETRF2000", "ITRF2005", "ITRF2000", "ETRS89"},
		Builtin().Frames(),
	)
}

func TestBuiltinNeighborsOrder(t *testing.T) {
	c := Builtin()
	require.Equal(
		t,
		[]string{"ITRF2008", "ITRF2005", "ITRF2000", "ETRS89"},
		c.Neighbors("ETRF2000"),
	)
	require.Equal(
		t,
		[]string{"ETRF2000", "ITRF2008", "ITRF2005"},
		c.Neighbors("ITRF2000"),
	)
	require.Empty(t, c.Neighbors("GDA94"))
}

func TestHasFrame(t *testing.T) {
	c := Builtin()
	require.True(t, c.HasFrame("ETRS89"))
	require.True(t, c.HasFrame("ITRF2000"))
	require.False(t, c.HasFrame("ITRF2014"))
	require.False(t, c.HasFrame(""))
}

func TestNewRejectsDuplicatePair(t *testing.T) {
	entry := helmert.NewTableTransformation(
		"A",
		"B",
		helmert.TableRow{1.0, 2.0, 3.0, 0.1, 0.0, 0.0, 0.0},
		helmert.TableRow{},
		2000.0,
	)
	_, err := New(entry, entry)
	require.ErrorIs(t, err, ErrDuplicatePair)
}

func TestNewRejectsInvalidEntry(t *testing.T) {
	bad := helmert.NewTransformation(
		"A",
		"B",
		helmert.ParameterSet{TermD: 0.5},
		helmert.ParameterSet{},
		2000.0,
	)
	_, err := New(bad)
	require.Error(t, err, "expected error for oversized scale term")
}

func TestExplicitReverseWins(t *testing.T) {
	// When both directions are cataloged explicitly, lookups return the
	// explicit entry rather than deriving the first-order reverse
	forward := helmert.NewTableTransformation(
		"A",
		"B",
		helmert.TableRow{1.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0},
		helmert.TableRow{},
		2000.0,
	)
	backward := helmert.NewTableTransformation(
		"B",
		"A",
		helmert.TableRow{-0.9, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0},
		helmert.TableRow{},
		2000.0,
	)
	c, err := New(forward, backward)
	require.NoError(t, err)
	entry, ok := c.Lookup("B", "A")
	require.True(t, ok)
	require.InDelta(t, -0.0009, entry.Parameters.TranslateM[0], 1e-12)
}

func TestEntriesAreCopies(t *testing.T) {
	c := Builtin()
	entries := c.Entries()
	require.Len(t, entries, 6)
	entries[0].FromFrame = "mutated"
	fresh := c.Entries()
	require.Equal(t, "ITRF2008", fresh[0].FromFrame)
}
