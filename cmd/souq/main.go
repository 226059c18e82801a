package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Imported for their init() registrations: migrations register with
	// the migration runner, jobs register with the queue.
	_ "github.com/souqdz/souq/app/jobs"
	_ "github.com/souqdz/souq/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "souq",
	Short: "Souq — storefront server CLI",
	Long:  "Souq is a cash-on-delivery storefront. Use this CLI to serve the API and manage the database and workers.",
}

func init() {
	// Server
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	// Workers
	rootCmd.AddCommand(queueWorkCmd)
	rootCmd.AddCommand(scheduleRunCmd)
}
