package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/triviaz/internal/logging"
	"github.com/abhisek/triviaz/internal/question"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget which questions have been used",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.Used().Count(ctx, question.ResetNever)
		if err != nil {
			return fmt.Errorf("count used questions: %w", err)
		}
		if err := s.Used().Clear(ctx); err != nil {
			return fmt.Errorf("reset used questions: %w", err)
		}

		log := logging.FromContext(ctx)
		log.Info().Int("cleared", n).Msg("used questions reset")
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d used questions.\n", n)
		return nil
	},
}
