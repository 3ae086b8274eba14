package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/pressbook-scans/clipper/cmd"
	"github.com/pressbook-scans/clipper/internal/utils"
)

func main() {
	// Provider credentials usually live in a .env next to the image corpus;
	// its absence just means the environment is already set up.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			utils.ExitOnError("Error loading .env file", err)
		}
	}

	if err := fang.Execute(context.Background(), cmd.RootCmd); err != nil {
		os.Exit(1)
	}
}
