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
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/geodetic-io/goetrf/catalog"
)

func main() {
	// Parse commandline
	flagset := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	outFile := flagset.String(
		"out",
		"",
		"file to write the CBOR catalog to (defaults to hex on stdout)",
	)
	if err := flagset.Parse(os.Args[1:]); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}

	data, err := catalog.Encode(catalog.Builtin())
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}

	if *outFile == "" {
		fmt.Printf("%s\n", hex.EncodeToString(data))
		return
	}
	if err := os.WriteFile(*outFile, data, 0o644); err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d bytes to %s\n", len(data), *outFile)
}
