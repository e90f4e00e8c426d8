package cmd

import (
	"fmt"

	"github.com/buildsy/buildsy-backend/database"
	"github.com/buildsy/buildsy-backend/models"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		if err := models.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func openDatabase() (*gorm.DB, error) {
	return database.Open(database.Options{
		DSN:        database.BuildDSN(getenv),
		ReplicaDSN: getenv("DATABASE_REPLICA_URL", ""),
	})
}
