package main

import (
	"os"

	"github.com/daemonp/crc8calc/cmd/crc8calc/root"
)

func main() {
	if err := root.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
