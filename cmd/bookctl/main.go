package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/OlgaOrl/massage-booking/cmd/bookctl/commands"
)

func main() {
	godotenv.Load()

	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
