package main

import (
	"os"

	"github.com/gaigemini/dockling/cmd/dockling/app"
)

func main() {
	cmd := app.NewDocklingCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
