package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/triviaz/internal/question"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View or change persisted quiz settings",
}

var resetPeriodCmd = &cobra.Command{
	Use:   "reset-period [60d|90d|never|none]",
	Short: "Show or set how long used questions stay excluded",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if len(args) == 1 {
			p, err := question.ParseResetPeriod(args[0])
			if err != nil {
				return err
			}
			if err := s.Settings().SetResetPeriod(ctx, p); err != nil {
				return err
			}
		}

		p, err := s.Settings().ResetPeriod(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reset period: %s\n", p)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(resetPeriodCmd)
}
