package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/config"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/pkg/auth"
)

// tokenCmd issues an access token for local development. Production tokens come
// from the identity provider that shares JWT_SECRET.
func tokenCmd(configFile *string) *cobra.Command {
	var (
		rawUserID string
		email     string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			if cfg.App.Environment == "production" {
				return fmt.Errorf("refusing to issue tokens in production")
			}

			userID, err := uuid.Parse(rawUserID)
			if err != nil {
				return fmt.Errorf("--user must be a UUID: %w", err)
			}

			tok, err := auth.NewJWTManager(cfg.JWT).GenerateAccessToken(&domain.Claims{UserID: userID, Email: email})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(tok)
		},
	}

	cmd.Flags().StringVar(&rawUserID, "user", "", "user id (UUID) the token is issued for")
	cmd.Flags().StringVar(&email, "email", "", "optional email claim")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
