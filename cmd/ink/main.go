// Command ink previews, traces and renders touch ripples.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/ink/cmd/ink/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
