// cargoplan — multi-truck 3D bin-packing planner for cargo loading.
//
// Build:
//
//	go build -o cargoplan ./cmd/cargoplan
package main

import (
	"os"

	"github.com/athul8raj/cargo-planning/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
