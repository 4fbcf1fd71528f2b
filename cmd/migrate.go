package cmd

import (
	"fmt"

	"github.com/killallgit/clipset/internal/database"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create the clip request and engagement marker tables, or add any
missing columns and indexes to an existing database. Other commands do
this on startup; migrate does it without doing anything else.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	db, err := database.Initialize(appConfig.Database.Path, appConfig.Database.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.Migrate(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Database schema is up to date (%s)\n", appConfig.Database.Path)
	return nil
}
