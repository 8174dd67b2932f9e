// SPDX-License-Identifier: MIT

// Command tltransform estimates geometric transforms from corresponding
// point files and applies them to point files.
//
//	tltransform estimate --model helmert --src local.csv --dst utm.csv > params.json
//	tltransform apply --params params.json --src more.csv --out more_utm.csv
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewApp(os.Stdout, os.Stderr, nil).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "tltransform:", err)
		os.Exit(1)
	}
}
