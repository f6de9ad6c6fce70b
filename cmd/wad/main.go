package main

import (
	"os"

	"github.com/roach88/wad/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
