package main

import (
	"os"

	"github.com/go-drift/lazyload/cmd/lazyload/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
