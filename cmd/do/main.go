package main

import (
	"os"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/cmd/do/cmd"

	"github.com/spf13/cobra"
)

// Run with `go run ./cmd/do <command>`.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "do",
		Short:        "Operator and development tools for Innova y Emprende",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		cmd.DevCmd(),
		cmd.MigrateCmd(),
		cmd.SeedCmd(),
		cmd.TokensCmd(),
	)

	return rootCmd
}
