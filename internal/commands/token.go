package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitapp/internal/auth"
)

// newTokenCommand issues a bearer token signed with the configured secret.
// Useful for scripting against the API without a login flow.
func newTokenCommand(opts *globalOptions) *cobra.Command {
	var email, name string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token for an email address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if cfg.Auth.JWTSecret == "" {
				return errors.New("JWT_SECRET is not configured")
			}

			token, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration).Generate(email, name)
			if err != nil {
				return fmt.Errorf("generating token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (required)")
	_ = cmd.MarkFlagRequired("email")
	cmd.Flags().StringVar(&name, "name", "", "display name")

	return cmd
}
