package main

import (
	"os"

	"github.com/authbox/authbox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
