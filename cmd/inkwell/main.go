package main

import (
	"os"

	"github.com/spf13/cobra"

	"inkwell/internal/interfaces/cli/migrate"
	"inkwell/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "inkwell",
		Short: "Inkwell - journaling backend",
		Long:  `Inkwell is the backend service for the Inkwell journaling application: identity-scoped journal storage, usage metering, and guest data migration.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
