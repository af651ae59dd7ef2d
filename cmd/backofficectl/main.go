// Command backofficectl runs maintenance tasks against the back-office database.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(openBackend).Execute(); err != nil {
		os.Exit(1)
	}
}
