package main

import (
	"os"

	"github.com/hamdan/hifzi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
