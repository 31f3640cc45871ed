package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/triviaz/internal/question"
	"github.com/abhisek/triviaz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show question bank and session statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		period, err := s.Settings().ResetPeriod(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "Question bank:")
		for _, d := range []question.Difficulty{
			question.DifficultyMixed,
			question.DifficultyEasy,
			question.DifficultyMedium,
			question.DifficultyHard,
		} {
			n, err := s.Questions().Count(ctx, d)
			if err != nil {
				return fmt.Errorf("count questions: %w", err)
			}
			label := d.String()
			if d == question.DifficultyMixed {
				label = "total"
			}
			fmt.Fprintf(out, "  %-7s %d\n", label, n)
		}

		excluded, err := s.Used().Count(ctx, period)
		if err != nil {
			return fmt.Errorf("count used questions: %w", err)
		}
		fmt.Fprintf(out, "Reset period: %s\n", period)
		fmt.Fprintf(out, "Currently excluded: %d\n", excluded)

		events, err := s.Events().QuerySessionEvents(ctx, store.QueryOpts{Limit: limit * 2})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		var ended []store.SessionEvent
		for _, e := range events {
			if e.Action == store.ActionEnd {
				ended = append(ended, e)
			}
		}
		if len(ended) == 0 {
			fmt.Fprintln(out, "No completed sessions yet.")
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-19s  %-10s  %-8s  %-8s  %s\n", "Finished", "Difficulty", "Answered", "Correct", "Score")
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for i, e := range ended {
			if limit > 0 && i == limit {
				break
			}
			fmt.Fprintf(out, "%-19s  %-10s  %-8s  %-8d  %d%%\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Difficulty,
				fmt.Sprintf("%d/%d", e.QuestionsAnswered, e.QuestionsTotal),
				e.CorrectAnswers,
				e.Percentage,
			)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent sessions to show")
}
