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
	"sync"

	"github.com/geodetic-io/goetrf/helmert"
)

// Built-in frame ties.
//
// The ITRFyyyy -> ETRF2000 rows are from Boucher & Altamimi (2011),
// "Memo: specifications for reference frame fixing in the analysis of a
// EUREF GPS campaign", version 8 bis. The ITRF -> ITRF rows are the IERS
// ties the memo's composed values are built from. ETRS89 is conventionally
// realized by ETRF2000, hence the identity row linking the two labels.
//
//	|T1   |T2   |T3    |D    |R1    |R2    |R3     |
//	|(mm) |(mm) |(mm)  |x1e-9|(mas) |(mas) |(mas)  |
var builtinRows = []helmert.Transformation{
	helmert.NewTableTransformation("ITRF2008", "ETRF2000",
		helmert.TableRow{52.1, 49.3, -58.5, 1.34, 0.891, 5.390, -8.712},
		helmert.TableRow{0.1, 0.1, -1.8, 0.08, 0.081, 0.490, -0.792},
		2000.0),
	helmert.NewTableTransformation("ITRF2005", "ETRF2000",
		helmert.TableRow{54.1, 50.2, -53.8, 0.40, 0.891, 5.390, -8.712},
		helmert.TableRow{-0.2, 0.1, -1.8, 0.08, 0.081, 0.490, -0.792},
		2000.0),
	helmert.NewTableTransformation("ITRF2000", "ETRF2000",
		helmert.TableRow{54.0, 51.0, -48.0, 0.00, 0.891, 5.390, -8.712},
		helmert.TableRow{0.0, 0.0, 0.0, 0.00, 0.081, 0.490, -0.792},
		2000.0),
	helmert.NewTableTransformation("ITRF2008", "ITRF2000",
		helmert.TableRow{-1.9, -1.7, -10.5, 1.34, 0.0, 0.0, 0.0},
		helmert.TableRow{0.1, 0.1, -1.8, 0.08, 0.0, 0.0, 0.0},
		2000.0),
	helmert.NewTableTransformation("ITRF2005", "ITRF2000",
		helmert.TableRow{0.1, -0.8, -5.8, 0.40, 0.0, 0.0, 0.0},
		helmert.TableRow{-0.2, 0.1, -1.8, 0.08, 0.0, 0.0, 0.0},
		2000.0),
	helmert.NewTableTransformation("ETRF2000", "ETRS89",
		helmert.TableRow{},
		helmert.TableRow{},
		2000.0),
}

var builtinOnce = sync.OnceValue(func() *Catalog {
	return MustNew(builtinRows...)
})

// Builtin returns the catalog of published frame ties embedded in the
// library. It is constructed once and shared; callers must treat it as
// read-only, which the Catalog API enforces.
func Builtin() *Catalog {
	return builtinOnce()
}
