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

import "github.com/geodetic-io/goetrf/catalog"

// ConverterOptionFunc is a type that represents functions that modify a Converter
type ConverterOptionFunc func(*Converter)

// WithCatalog specifies the catalog of frame ties to use instead of the
// built-in one.
func WithCatalog(c *catalog.Catalog) ConverterOptionFunc {
	return func(conv *Converter) {
		conv.catalog = c
	}
}
