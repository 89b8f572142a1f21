// SPDX-License-Identifier: MIT

// Command meshctl drives the lvmesh control core from the shell:
// decompose a unitary into chip settings, plan heater currents and fit
// calibration sweeps. Documents go to stdout as JSON, logs to stderr.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
