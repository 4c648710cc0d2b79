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
	"fmt"

	"github.com/geodetic-io/goetrf/helmert"
)

// Resolve finds the shortest chain of direct transformations connecting the
// two frames. It runs a breadth-first search over the frame adjacency graph,
// with ties in either cataloged direction counting as edges. Neighbors are
// visited in catalog insertion order, so equal-length chains resolve the
// same way on every call.
//
// The returned slice applies in order: the first step starts at fromFrame
// and the last step ends at toFrame. An equal source and target resolve to
// an empty chain. Resolve returns ErrFrameNotFound for labels absent from
// the catalog and ErrNoPath when the frames sit in disconnected components.
func (c *Catalog) Resolve(fromFrame string, toFrame string) ([]helmert.Transformation, error) {
	if !c.HasFrame(fromFrame) {
		return nil, fmt.Errorf("%w: %s", ErrFrameNotFound, fromFrame)
	}
	if !c.HasFrame(toFrame) {
		return nil, fmt.Errorf("%w: %s", ErrFrameNotFound, toFrame)
	}
	if fromFrame == toFrame {
		return []helmert.Transformation{}, nil
	}

	// BFS with a parent map for path reconstruction. Frames are never
	// revisited and the queue drains in FIFO order.
	parent := map[string]string{fromFrame: fromFrame}
	queue := []string{fromFrame}
	found := false
	for len(queue) > 0 && !found {
		current := queue[0]
		queue = queue[1:]
		for _, neighbor := range c.Neighbors(current) {
			if _, visited := parent[neighbor]; visited {
				continue
			}
			parent[neighbor] = current
			if neighbor == toFrame {
				found = true
				break
			}
			queue = append(queue, neighbor)
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s -> %s", ErrNoPath, fromFrame, toFrame)
	}

	// Walk back from the target to recover the frame sequence
	var hops []string
	for frame := toFrame; frame != fromFrame; frame = parent[frame] {
		hops = append(hops, frame)
	}
	hops = append(hops, fromFrame)

	// Map each hop onto its direct (or derived reverse) transformation
	steps := make([]helmert.Transformation, 0, len(hops)-1)
	for i := len(hops) - 1; i > 0; i-- {
		step, ok := c.Lookup(hops[i], hops[i-1])
		if !ok {
			// Adjacency and pair index are built from the same entries,
			// so a resolved hop always has a tie
			return nil, fmt.Errorf(
				"%w: %s -> %s",
				ErrNoPath,
				hops[i],
				hops[i-1],
			)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// HasPath returns true if a chain of ties connects the two frames. A frame
// always has a path to itself, provided it occurs in the catalog.
func (c *Catalog) HasPath(fromFrame string, toFrame string) bool {
	_, err := c.Resolve(fromFrame, toFrame)
	return err == nil
}
