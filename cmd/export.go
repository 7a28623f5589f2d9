package cmd

import (
	"fmt"

	"movies-app/core/storage"
	"movies-app/feature/export"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var listSnapshots bool

// exportCmd writes a catalog snapshot to object storage.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a catalog snapshot to object storage",
	Long:  `Writes all movies, artists and their links as JSON to <export_prefix>/catalog-<unix nanos>-<id>.json in the configured bucket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, l, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer l.Sync()

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}

		svc := export.NewService(client, cfg.Storage, db, l)

		if listSnapshots {
			items, err := svc.List(ctx)
			if err != nil {
				return err
			}
			for _, it := range items {
				l.Info("Snapshot", zap.String("key", it.Key), zap.Int64("size", it.Size), zap.Time("last_modified", it.LastModified))
			}
			return nil
		}

		res, err := svc.Export(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d movies, %d artists, %d links to %s/%s\n", res.Movies, res.Artists, res.Links, cfg.Storage.Bucket, res.Key)
		return nil
	},
}

func init() {
	exportCmd.Flags().BoolVar(&listSnapshots, "list", false, "List stored snapshots instead of exporting")
	RootCmd.AddCommand(exportCmd)
}
