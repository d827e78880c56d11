package main

import (
	"os"

	"github.com/wunderlist/clickonce-to-squirrel/migrator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
