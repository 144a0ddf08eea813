// Command qgram queries and imports city lists for the q-gram index.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
