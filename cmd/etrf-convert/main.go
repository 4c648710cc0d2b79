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
	"strconv"

	goetrf "github.com/geodetic-io/goetrf"
	"github.com/geodetic-io/goetrf/cmd/common"
	"github.com/geodetic-io/goetrf/helmert"
)

func main() {
	// Parse commandline
	f := common.NewGlobalFlags()
	f.Parse()
	args := f.Flagset.Args()
	if f.From == "" || (len(args) != 3 && len(args) != 6) {
		fmt.Printf(
			"Usage: %s -from FRAME [-to FRAME] [-epoch YEAR] X Y Z [VX VY VZ]\n",
			os.Args[0],
		)
		os.Exit(1)
	}

	values := make([]float64, len(args))
	for i, arg := range args {
		value, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			fmt.Printf("Invalid coordinate value %q: %s\n", arg, err)
			os.Exit(1)
		}
		values[i] = value
	}

	coordinate := goetrf.Coordinate{
		Position: helmert.Vector3{values[0], values[1], values[2]},
		Frame:    f.From,
		Epoch:    f.Epoch,
	}
	if len(values) == 6 {
		coordinate.Velocity = &helmert.Vector3{values[3], values[4], values[5]}
	}

	converter := goetrf.New()
	result, err := converter.Convert(coordinate, f.To)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s epoch %.4f:\n", result.Frame, result.Epoch)
	fmt.Printf(
		"X: %.4f m\nY: %.4f m\nZ: %.4f m\n",
		result.Position[0],
		result.Position[1],
		result.Position[2],
	)
	if result.Velocity != nil {
		fmt.Printf(
			"VX: %.5f m/y\nVY: %.5f m/y\nVZ: %.5f m/y\n",
			result.Velocity[0],
			result.Velocity[1],
			result.Velocity[2],
		)
	}
}
