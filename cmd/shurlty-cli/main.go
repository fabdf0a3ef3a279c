package main

import (
	"context"
	"os"

	"github.com/yndnr/shurlty-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		command.PrintError("%s", command.ErrorText(err))
		os.Exit(1)
	}
}
