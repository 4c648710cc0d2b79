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

// Reference frame definitions
var (
	FrameITRF2008 = Frame{
		Name:   "ITRF2008",
		System: "ITRS",
		Year:   2008,
	}
	FrameITRF2005 = Frame{
		Name:   "ITRF2005",
		System: "ITRS",
		Year:   2005,
	}
	FrameITRF2000 = Frame{
		Name:   "ITRF2000",
		System: "ITRS",
		Year:   2000,
	}
	// ITRF2014 postdates the memo the built-in catalog is taken from, so
	// it is a known label without any cataloged tie
	FrameITRF2014 = Frame{
		Name:   "ITRF2014",
		System: "ITRS",
		Year:   2014,
	}
	FrameETRF2000 = Frame{
		Name:   "ETRF2000",
		System: "ETRS89",
		Year:   2000,
	}
	FrameETRS89 = Frame{
		Name:   "ETRS89",
		System: "ETRS89",
	}

	FrameInvalid = Frame{
		Name: "invalid",
	} // FrameInvalid is used as a return value for lookup functions when a frame isn't found
)

// List of valid frames for use in lookup functions
var frames = []Frame{
	FrameITRF2008,
	FrameITRF2005,
	FrameITRF2000,
	FrameITRF2014,
	FrameETRF2000,
	FrameETRS89,
}

// FrameByName returns a predefined reference frame by name
func FrameByName(name string) Frame {
	for _, frame := range frames {
		if frame.Name == name {
			return frame
		}
	}
	return FrameInvalid
}

// KnownFrames returns the predefined reference frames
func KnownFrames() []Frame {
	ret := make([]Frame, len(frames))
	copy(ret, frames)
	return ret
}

// Frame names a realization of a terrestrial reference system. Frames are
// atomic values compared by their label.
type Frame struct {
	Name   string
	System string // reference system the frame realizes, e.g. "ITRS"
	Year   int    // realization year; zero for system aliases like ETRS89
}

func (f Frame) String() string {
	return f.Name
}
