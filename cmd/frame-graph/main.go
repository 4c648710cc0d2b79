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

package main

import (
	"fmt"
	"os"

	goetrf "github.com/geodetic-io/goetrf"
	"github.com/geodetic-io/goetrf/cmd/common"
)

func main() {
	// Parse commandline
	f := common.NewGlobalFlags()
	f.Parse()
	converter := goetrf.New()

	if f.From == "" {
		// No pair requested: list the catalog
		fmt.Print("Known frames:\n\n")
		for _, frame := range converter.ListKnownFrames() {
			fmt.Printf("  %s (neighbors: %v)\n", frame, converter.Catalog().Neighbors(frame))
		}
		return
	}

	chain, err := converter.Chain(f.From, f.To)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("Chain %s -> %s (%d step(s)):\n\n", f.From, f.To, len(chain))
	for i, step := range chain {
		params := step.Propagate(f.Epoch)
		fmt.Printf("%d. %s\n", i+1, step)
		fmt.Printf(
			"   at %.4f: T = %v m, D = %.4e, R = %v rad\n",
			f.Epoch,
			params.TranslateM,
			params.TermD,
			params.RotateRad,
		)
	}
}
