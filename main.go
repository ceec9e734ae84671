package main

import (
	"os"

	"github.com/naveeng/ndrsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
