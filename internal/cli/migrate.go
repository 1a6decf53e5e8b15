package cli

import (
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"reparto_tracker/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return migrate(a)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func migrate(a *app) error {
	if a.db == nil {
		logrus.Info("In-memory storage needs no migrations")
		return nil
	}
	if err := config.Migrate(a.db); err != nil {
		return err
	}
	logrus.Info("Schema is up to date")
	return nil
}
