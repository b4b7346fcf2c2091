package main

import (
	"os"

	"github.com/juanbermudez/linear-cli/internal/cmd"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(cmd.Execute(version, commit, date))
}
