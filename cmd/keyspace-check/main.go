// Command keyspace-check loads a registry configuration, connects every
// configured keyspace and reports the resulting session states.
//
//	keyspace-check check --config keyspace.yaml
//	keyspace-check config --config keyspace.yaml
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
