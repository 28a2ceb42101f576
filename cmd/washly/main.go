package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Imported for their init() side effects: migrations and seeders
	// register themselves at startup.
	_ "github.com/shashiranjanraj/washly/database/migrations"
	_ "github.com/shashiranjanraj/washly/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "washly",
	Short: "Washly — laundry marketplace backend",
	Long:  "Washly is the multi-tenant laundry marketplace API. This CLI runs the server and manages the database.",
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	// Workers
	rootCmd.AddCommand(queueWorkCmd)
}
