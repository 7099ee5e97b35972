package cmd

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/config"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/repository"
)

func TokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Maintain redeemed password reset tokens",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "cleanup",
		Short: "Delete redemption records of tokens that have expired anyway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(_ *config.Config, database *sqlx.DB) error {
				deleted, err := repository.NewTokenRepository(database).CleanupExpired(time.Now().UTC())
				if err != nil {
					return fmt.Errorf("failed to clean up tokens: %w", err)
				}
				fmt.Printf("deleted %d expired token records\n", deleted)
				return nil
			})
		},
	})
	return cmd
}
