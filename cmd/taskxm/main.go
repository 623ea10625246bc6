package main

import (
	"os"

	"github.com/mensylisir/taskxm/cmd/taskxm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
