package main

import (
	"os"

	"github.com/charmbracelet/log"

	"tableflip.dev/prasia/pkg/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		log.Error("error during command execution", "err", err)
		os.Exit(1)
	}
}
