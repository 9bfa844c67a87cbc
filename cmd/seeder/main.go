package main

import (
	"os"
	"patholab-service/cmd/seeder/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
