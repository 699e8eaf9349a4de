// Package main provides the voicegen command line client.
//
// Usage:
//
//	voicegen speak [keywords...] [--persona Polite] [--backend URL] [--out file]
//	voicegen form
//	voicegen personas
//
// The backend address and player come from config.yaml or VOICEGEN_*
// environment variables; flags override both.
package main

import (
	"fmt"
	"os"

	"github.com/tahcohcat/voicegen/cmd/voicegen/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, commands.ErrorStyle.Render(err.Error()))
		os.Exit(1)
	}
}
