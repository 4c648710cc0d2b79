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

package common

import (
	"flag"
	"fmt"
	"math"
	"os"

	goetrf "github.com/geodetic-io/goetrf"
)

type GlobalFlags struct {
	Flagset *flag.FlagSet
	From    string
	To      string
	Epoch   float64
}

func NewGlobalFlags() *GlobalFlags {
	f := &GlobalFlags{
		Flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.Flagset.StringVar(
		&f.From,
		"from",
		"",
		"reference frame the input coordinates are expressed in",
	)
	f.Flagset.StringVar(
		&f.To,
		"to",
		"ETRF2000",
		"reference frame to convert the coordinates into",
	)
	f.Flagset.Float64Var(
		&f.Epoch,
		"epoch",
		2000.0,
		"observation epoch as a decimal year, e.g. 2013.5",
	)
	return f
}

func (f *GlobalFlags) Parse() {
	if err := f.Flagset.Parse(os.Args[1:]); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
	for _, name := range []string{f.From, f.To} {
		if name == "" {
			continue
		}
		if goetrf.FrameByName(name) == goetrf.FrameInvalid {
			fmt.Printf("Invalid reference frame specified: %s\n", name)
			os.Exit(1)
		}
	}
	if math.IsNaN(f.Epoch) || math.IsInf(f.Epoch, 0) {
		fmt.Printf("Invalid epoch specified: %v\n", f.Epoch)
		os.Exit(1)
	}
}
