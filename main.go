package main

import (
	"os"

	"github.com/praetorian-inc/graph-google-cloud-1/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
