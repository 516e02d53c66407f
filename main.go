package main

import (
	"os"

	"github.com/rsuresh/quizcraft/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
