package cmd

import (
	"context"
	"fmt"

	"movies-app/core/storage"
	"movies-app/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the catalog",
	Long:  `Checks the catalog schema, the movies_artists join rows and the snapshot bucket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check that the tables match the catalog models",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// linksCmd represents the integrity links command
var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Check and fix orphaned join rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// bucketCmd represents the integrity storage command
var bucketCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check and create the snapshot bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(schemaCmd, linksCmd, bucketCmd)

	linksCmd.Flags().BoolVar(&fixFlag, "fix", false, "Remove orphaned join rows")
	bucketCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket when missing")
}

func runIntegrityChecks(ctx context.Context, runSchema, runLinks, runStorage bool) error {
	cfg, logg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer logg.Sync()

	var client storage.Client
	if runStorage {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Warn("Storage unavailable", zap.Error(err))
		}
	}

	svc := integrity.NewService(client, cfg.Storage, db, logg)

	if runSchema {
		logg.Info("Checking catalog schema...", zap.String("driver", db.Dialector.Name()))
		report, err := svc.CheckSchema()
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		if report.Matched {
			logg.Info("Schema matches the catalog models.")
		} else {
			logg.Warn("Schema mismatches found")
			for table, tbl := range report.Tables {
				if tbl.Status == "ok" {
					continue
				}
				if len(tbl.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
				}
				if len(tbl.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tbl.TypeMismatches))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	if runLinks {
		logg.Info("Checking join rows...")
		orphans, err := svc.CheckLinks(ctx)
		if err != nil {
			return fmt.Errorf("links check failed: %w", err)
		}

		if len(orphans) == 0 {
			logg.Info("No orphaned links.")
		} else {
			for _, o := range orphans {
				logg.Warn("Orphaned link",
					zap.Int("movie_id", o.MovieID),
					zap.Int("artist_id", o.ArtistID),
					zap.Bool("missing_movie", o.MissingMovie),
					zap.Bool("missing_artist", o.MissingArtist),
				)
			}

			if fixFlag {
				logg.Info("Removing orphaned links...")
				if err := svc.FixLinks(ctx, orphans); err != nil {
					return fmt.Errorf("failed to fix links: %w", err)
				}
				logg.Info("Orphaned links removed.", zap.Int("count", len(orphans)))
			} else {
				logg.Info("Run 'integrity links --fix' to remove them.")
			}
		}
	}

	if runStorage && client != nil {
		logg.Info("Checking snapshot bucket...", zap.String("bucket", cfg.Storage.Bucket))
		report, err := svc.CheckStorage(ctx)
		if err != nil {
			return fmt.Errorf("storage check failed: %w", err)
		}

		switch {
		case report.BucketExists:
			logg.Info("Bucket is present.", zap.Int("snapshots", report.Snapshots))
		case fixFlag:
			if err := svc.FixStorage(ctx); err != nil {
				return fmt.Errorf("failed to create bucket: %w", err)
			}
		default:
			logg.Warn("Bucket is missing. Run 'integrity storage --fix' to create it.")
		}
	}

	return nil
}
