package main

import (
	"os"

	"github.com/msto63/ember/cmd/ember/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
