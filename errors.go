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

import "errors"

// ErrUnknownFrame is returned when a frame label does not occur in the
// converter's catalog.
var ErrUnknownFrame = errors.New("unknown reference frame")

// ErrNoTransformationPath is returned when both frames are known but no
// chain of cataloged ties connects them. The catalog does not have to
// cover every frame pair, so callers should treat this as an ordinary
// per-call outcome.
var ErrNoTransformationPath = errors.New("no transformation path between frames")

// ErrInvalidEpoch is returned for a NaN or infinite observation epoch,
// before any computation takes place.
var ErrInvalidEpoch = errors.New("invalid observation epoch")
