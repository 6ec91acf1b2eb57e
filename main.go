package main

import (
	"os"

	"github.com/adalundhe/alphasim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
