// Command maildeck manages the mail client's typed configuration store.
package main

import (
	"os"

	"github.com/custodia-labs/maildeck/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
