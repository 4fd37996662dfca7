package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"storetags/config"
	"storetags/internal/adapters/auth"
)

// NewTokenCommand creates the token command, which mints bearer tokens for local testing.
func NewTokenCommand() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token signed with JWT_SECRET",
		Long: `Mint an HS256 bearer token signed with JWT_SECRET.

Meant for local development and tests; the service itself never issues tokens.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if subject == "" {
				return errors.New("subject must not be empty")
			}
			if ttl <= 0 {
				return fmt.Errorf("invalid ttl %s: must be positive", ttl)
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(subject, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "dev", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")

	return cmd
}
