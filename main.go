// brain is a personal semantic-memory assistant: store short notes
// and recall them later with natural-language queries.
package main

import (
	"os"

	"github.com/secondbrain-dev/brain/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
