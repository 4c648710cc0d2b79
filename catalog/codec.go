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
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/jinzhu/copier"

	"github.com/geodetic-io/goetrf/helmert"
)

// CodecVersion is the current on-wire version of the catalog encoding.
const CodecVersion = 1

// ErrCodecVersion is returned by Decode for data written with an
// unsupported codec version.
var ErrCodecVersion = errors.New("catalog: unsupported codec version")

// Wire types mirror the public records field for field; entries are copied
// across rather than encoded directly so that the engine types stay free of
// serialization tags.
type wireParameterSet struct {
	// Tells the CBOR codec to convert to/from a CBOR array
	_          struct{} `cbor:",toarray"`
	TranslateM [3]float64
	TermD      float64
	RotateRad  [3]float64
}

type wireEntry struct {
	_          struct{} `cbor:",toarray"`
	FromFrame  string
	ToFrame    string
	Parameters wireParameterSet
	Rates      wireParameterSet
	RefEpoch   float64
}

type wireCatalog struct {
	_       struct{} `cbor:",toarray"`
	Version uint
	Entries []wireEntry
}

// Encode serializes the catalog entries as CBOR. The encoding is a stable
// interchange format for tooling; a decoded catalog goes through the same
// validation as the built-in one.
func Encode(c *Catalog) ([]byte, error) {
	wire := wireCatalog{
		Version: CodecVersion,
		Entries: make([]wireEntry, len(c.entries)),
	}
	for i, entry := range c.entries {
		if err := copier.Copy(&wire.Entries[i], &entry); err != nil {
			return nil, fmt.Errorf("catalog: encode entry %s: %w", entry, err)
		}
	}
	data, err := cbor.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("catalog: encode: %w", err)
	}
	return data, nil
}

// Decode deserializes a catalog previously written by Encode, validating
// the entries as it goes.
func Decode(data []byte) (*Catalog, error) {
	var wire wireCatalog
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if wire.Version != CodecVersion {
		return nil, fmt.Errorf("%w: %d", ErrCodecVersion, wire.Version)
	}
	entries := make([]helmert.Transformation, len(wire.Entries))
	for i, wireEntry := range wire.Entries {
		if err := copier.Copy(&entries[i], &wireEntry); err != nil {
			return nil, fmt.Errorf(
				"catalog: decode entry %s -> %s: %w",
				wireEntry.FromFrame,
				wireEntry.ToFrame,
				err,
			)
		}
	}
	return New(entries...)
}
