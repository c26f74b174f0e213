package main

import (
	"os"

	"github.com/fcsprep/fcsprep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
