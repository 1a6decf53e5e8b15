package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"reparto_tracker/internal/config"
	"reparto_tracker/internal/middleware"
)

var (
	tokenRole     string
	tokenDriverID string
	tokenTTL      time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign an access token for local testing of the planner or driver apps",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		var driverID *uuid.UUID
		switch tokenRole {
		case middleware.RolePlanner:
		case middleware.RoleDriver:
			id, err := uuid.Parse(tokenDriverID)
			if err != nil {
				return fmt.Errorf("--driver-id must be a driver uuid: %w", err)
			}
			driverID = &id
		default:
			return fmt.Errorf("--role must be %q or %q", middleware.RolePlanner, middleware.RoleDriver)
		}

		token, err := middleware.NewAuth(cfg.Auth).GenerateToken("cli", tokenRole, driverID, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenRole, "role", middleware.RolePlanner, "planner or driver")
	tokenCmd.Flags().StringVar(&tokenDriverID, "driver-id", "", "driver uuid, required for --role driver")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 72*time.Hour, "token lifetime")
	rootCmd.AddCommand(tokenCmd)
}
