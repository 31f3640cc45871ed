package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/triviaz/internal/config"
	"github.com/abhisek/triviaz/internal/question"
	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/screens/play"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a trivia quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(c *cobra.Command) {
	c.Flags().Int("count", 0, "Number of questions (default from config)")
	c.Flags().String("difficulty", "", "Difficulty: mixed, easy, medium or hard (default from config)")
	c.Flags().String("reset-period", "", "Save a new reset period before starting: 60d, 90d, never or none")
	c.Flags().Bool("include-used", false, "Allow questions that were used recently")
}

// playRequest builds the session request from config and flags.
func playRequest(cmd *cobra.Command) (quiz.Request, error) {
	req := quiz.Request{
		Limit:       cfg.QuestionCount,
		Difficulty:  cfg.DifficultyValue(),
		ExcludeUsed: cfg.ExcludeUsed,
	}

	if cmd.Flags().Changed("count") {
		n, _ := cmd.Flags().GetInt("count")
		if n < config.MinQuestionCount || n > config.MaxQuestionCount {
			return quiz.Request{}, fmt.Errorf("--count must be between %d and %d, got %d",
				config.MinQuestionCount, config.MaxQuestionCount, n)
		}
		req.Limit = n
	}
	if cmd.Flags().Changed("difficulty") {
		s, _ := cmd.Flags().GetString("difficulty")
		d, err := question.ParseDifficulty(s)
		if err != nil {
			return quiz.Request{}, err
		}
		req.Difficulty = d
	}
	if cmd.Flags().Changed("reset-period") {
		s, _ := cmd.Flags().GetString("reset-period")
		p, err := question.ParseResetPeriod(s)
		if err != nil {
			return quiz.Request{}, err
		}
		req.ResetPeriod = &p
	}
	if include, _ := cmd.Flags().GetBool("include-used"); include {
		req.ExcludeUsed = false
	}
	return req, nil
}

func runPlay(cmd *cobra.Command) error {
	req, err := playRequest(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	return play.Run(cmd.Context(), quiz.NewStoreService(st), req, cmd.InOrStdin(), cmd.OutOrStdout())
}
