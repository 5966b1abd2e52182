package cmd

import (
	"errors"
	"fmt"
	"time"

	"olistInsights/pkg/utils"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the report API",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

var tokenFlags struct {
	subject string
	ttl     time.Duration
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenFlags.subject, "subject", "s", "analyst", "Token subject")
	tokenCmd.Flags().DurationVar(&tokenFlags.ttl, "ttl", 24*time.Hour, "Token lifetime")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	if cfg.JWT.SecretKey == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if tokenFlags.ttl <= 0 {
		return errors.New("ttl must be positive")
	}

	token, err := utils.GenerateJWT(cfg.JWT.SecretKey, tokenFlags.subject, tokenFlags.ttl)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
