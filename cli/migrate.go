package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mentorly/database"
)

func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the SQLite schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Config.StoreDriver != "sqlite" {
				return fmt.Errorf("migrate only applies to STORE_DRIVER=sqlite, got %q", opts.Config.StoreDriver)
			}
			db, err := database.OpenSQLite(opts.Config.SQLitePath)
			if err != nil {
				return err
			}
			defer db.Close()
			opts.Logger.Info("Schema is up to date", zap.String("path", opts.Config.SQLitePath))
			return nil
		},
	}
}
