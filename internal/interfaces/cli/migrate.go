package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BackCheck/justice-unveiled/internal/infrastructure/database/postgres"
)

func newMigrateCommand(cliCtx *CLIContext) *cobra.Command {
	var migrationsDir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := postgres.NewConnection(cliCtx.Config.Database, cliCtx.Logger)
			if err != nil {
				return err
			}
			defer conn.Close()

			dir := migrationsDir
			if dir == "" {
				dir = cliCtx.Config.Database.MigrationPath
			}
			if err := conn.RunMigrations(dir); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	cmd.Flags().StringVar(&migrationsDir, "dir", "", "migrations directory (default from config)")
	return cmd
}
