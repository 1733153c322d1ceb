// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Crosstalk Labs
//
// ardu88 - host-side driver and CLI for the Ardui88 bus-interface board.

package main

import (
	"os"

	"github.com/crosstalklabs/ardu88/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
