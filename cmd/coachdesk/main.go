package main

import (
	"os"

	"github.com/spf13/cobra"

	"coachdesk/internal/interfaces/cli/migrate"
	"coachdesk/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "coachdesk",
		Short: "CoachDesk - capacity and slot allocation engine",
		Long:  `CoachDesk manages coach capacity, student slot allocation, and plan renewal reconciliation.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
