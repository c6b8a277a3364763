package main

import (
	"os"

	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
