package main

import (
	"fmt"
	"os"

	"filecombiner/cmd"
	"filecombiner/pkg/version"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !cmd.Logged(err) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", version.Name, err)
		}
		os.Exit(1)
	}
}
