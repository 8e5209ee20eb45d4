// potomato - Protein quantification ingestion and modeling tool
package main

import (
	"fmt"
	"os"

	"github.com/ChrisMcGann/potomato/cmd/potomato/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
