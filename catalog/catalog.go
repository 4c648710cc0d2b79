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

// Package catalog holds the table of published frame ties and resolves
// transformation chains between reference frames. A Catalog is immutable
// after construction and safe for concurrent use.
package catalog

import (
	"errors"
	"fmt"

	"github.com/geodetic-io/goetrf/helmert"
)

// ErrDuplicatePair is returned by New when two entries describe the same
// ordered frame pair.
var ErrDuplicatePair = errors.New("catalog: duplicate entry for frame pair")

// ErrNoPath is returned by Resolve when the two frames are in the catalog
// but no sequence of ties connects them. A catalog does not have to cover
// every frame pair, so this is an ordinary outcome rather than a fault.
var ErrNoPath = errors.New("catalog: no transformation path between frames")

// ErrFrameNotFound is returned by Resolve when a frame label does not occur
// in any catalog entry.
var ErrFrameNotFound = errors.New("catalog: frame not in catalog")

type pairKey struct {
	from string
	to   string
}

// Catalog is an immutable set of direct frame ties, indexed by ordered
// frame pair and by frame adjacency. Frames and neighbors keep the entry
// insertion order, which makes chain resolution deterministic.
type Catalog struct {
	entries   []helmert.Transformation
	byPair    map[pairKey]int
	frames    []string
	frameSet  map[string]struct{}
	adjacency map[string][]string
}

// New builds a Catalog from the given entries. Every entry is validated and
// duplicate ordered pairs are rejected. Storing both directions of the same
// pair explicitly is allowed; an explicit entry always wins over the
// derived reverse of its counterpart.
func New(entries ...helmert.Transformation) (*Catalog, error) {
	c := &Catalog{
		entries:   make([]helmert.Transformation, 0, len(entries)),
		byPair:    make(map[pairKey]int, len(entries)),
		frameSet:  make(map[string]struct{}),
		adjacency: make(map[string][]string),
	}
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		key := pairKey{from: entry.FromFrame, to: entry.ToFrame}
		if _, ok := c.byPair[key]; ok {
			return nil, fmt.Errorf(
				"%w: %s -> %s",
				ErrDuplicatePair,
				entry.FromFrame,
				entry.ToFrame,
			)
		}
		c.byPair[key] = len(c.entries)
		c.entries = append(c.entries, entry)
		c.addFrame(entry.FromFrame)
		c.addFrame(entry.ToFrame)
		c.addNeighbor(entry.FromFrame, entry.ToFrame)
		c.addNeighbor(entry.ToFrame, entry.FromFrame)
	}
	return c, nil
}

// MustNew is like New but panics on error. It is intended for the built-in
// table and for test fixtures with known-good data.
func MustNew(entries ...helmert.Transformation) *Catalog {
	c, err := New(entries...)
	if err != nil {
		panic(fmt.Sprintf("catalog: %s", err))
	}
	return c
}

func (c *Catalog) addFrame(frame string) {
	if _, ok := c.frameSet[frame]; ok {
		return
	}
	c.frameSet[frame] = struct{}{}
	c.frames = append(c.frames, frame)
}

func (c *Catalog) addNeighbor(frame string, neighbor string) {
	for _, existing := range c.adjacency[frame] {
		if existing == neighbor {
			return
		}
	}
	c.adjacency[frame] = append(c.adjacency[frame], neighbor)
}

// Entries returns a copy of the catalog entries in insertion order.
func (c *Catalog) Entries() []helmert.Transformation {
	entries := make([]helmert.Transformation, len(c.entries))
	copy(entries, c.entries)
	return entries
}

// Frames returns the frame labels occurring in the catalog, in first-seen
// order.
func (c *Catalog) Frames() []string {
	frames := make([]string, len(c.frames))
	copy(frames, c.frames)
	return frames
}

// HasFrame returns true if the frame label occurs in any catalog entry.
func (c *Catalog) HasFrame(frame string) bool {
	_, ok := c.frameSet[frame]
	return ok
}

// Neighbors returns the frames reachable from the given frame by a single
// tie in either direction, in insertion order.
func (c *Catalog) Neighbors(frame string) []string {
	adj := c.adjacency[frame]
	neighbors := make([]string, len(adj))
	copy(neighbors, adj)
	return neighbors
}

// Lookup returns the direct transformation from one frame to another. When
// only the opposite direction is cataloged, the first-order reverse is
// derived on the fly. The second return value is false if neither
// direction exists.
func (c *Catalog) Lookup(fromFrame string, toFrame string) (helmert.Transformation, bool) {
	if idx, ok := c.byPair[pairKey{from: fromFrame, to: toFrame}]; ok {
		return c.entries[idx], true
	}
	if idx, ok := c.byPair[pairKey{from: toFrame, to: fromFrame}]; ok {
		return c.entries[idx].Reversed(), true
	}
	return helmert.Transformation{}, false
}
