package main

import (
	"os"

	"followcheck/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
