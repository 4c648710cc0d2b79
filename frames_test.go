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

package goetrf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameByName(t *testing.T) {
	require.Equal(t, FrameITRF2008, FrameByName("ITRF2008"))
	require.Equal(t, FrameETRS89, FrameByName("ETRS89"))
	require.Equal(t, FrameInvalid, FrameByName("GDA94"))
	require.Equal(t, FrameInvalid, FrameByName(""))
}

func TestKnownFrames(t *testing.T) {
	known := KnownFrames()
	require.Len(t, known, 6)
	require.Equal(t, FrameITRF2008, known[0])
	known[0] = FrameInvalid
	require.Equal(t, FrameITRF2008, KnownFrames()[0])
}

func TestFrameString(t *testing.T) {
	require.Equal(t, "ITRF2008", FrameITRF2008.String())
	require.Equal(t, "invalid", FrameInvalid.String())
}
