// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command pulsesim simulates pulse propagation networks.
//
package main

import (
	"os"

	"github.com/db47h/pulsesim/cmd/pulsesim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
