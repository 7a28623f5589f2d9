package cmd

import (
	"fmt"

	"movies-app/core/database"
	"movies-app/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or updates the catalog schema and reports the join table layout.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the catalog schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, l, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer l.Sync()

		if err := catalog.Migrate(db); err != nil {
			return err
		}

		for _, table := range []string{"movies", "artists", "movies_artists"} {
			cols, err := database.GetTableColumns(db, table)
			if err != nil {
				return fmt.Errorf("failed to inspect %s: %w", table, err)
			}
			pk, err := database.PrimaryKey(db, table)
			if err != nil {
				return fmt.Errorf("failed to read primary key of %s: %w", table, err)
			}
			l.Info("Table ready",
				zap.String("table", table),
				zap.Int("columns", len(cols)),
				zap.Strings("primary_key", pk),
			)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
