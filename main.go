package main

import (
	"os"

	"github.com/mpiekarski/quizdeck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
