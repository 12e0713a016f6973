package main

import (
	"os"

	"github.com/m-aleem/eVTOL-sim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
