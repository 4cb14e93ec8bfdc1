package main

import (
	"os"

	"github.com/ariel-frischer/changegen/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
