package cmd

import (
	"fmt"
	"time"

	"movies-app/core/config"
	"movies-app/core/middleware/auth"
	"movies-app/core/server"

	"github.com/spf13/cobra"
)

var (
	tokenRole    string
	tokenSubject string
)

// tokenCmd mints a bearer token signed with the configured jwt secret.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !server.IsValidRole(tokenRole) {
			return fmt.Errorf("unknown role %q (want %s or %s)", tokenRole, server.RoleAdmin, server.RoleUser)
		}

		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ttl := time.Duration(cfg.Server.TokenTTLMinutes) * time.Minute
		token, exp, err := auth.NewToken(cfg.Server.JWTSecret, tokenSubject, tokenRole, ttl)
		if err != nil {
			return err
		}

		fmt.Println(token)
		fmt.Printf("expires at %s\n", exp.Format(time.RFC3339))
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenRole, "role", server.RoleUser, "Role claim (admin or user)")
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "cli", "Subject claim")
	RootCmd.AddCommand(tokenCmd)
}
