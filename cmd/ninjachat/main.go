package main

import (
	"os"

	"github.com/msto63/ninjachat/cmd/ninjachat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
