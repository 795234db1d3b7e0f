package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnbot/internal/tutor"
)

// withTutor opens the runtime, builds the tutor for the selected learner
// and runs fn.
func withTutor(cmd *cobra.Command, fn func(*tutor.Tutor) error) error {
	rt, err := openRuntime(cmd, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	t, err := rt.tutor(commandContext(cmd))
	if err != nil {
		return rt.userError(err)
	}
	if err := fn(t); err != nil {
		return rt.userError(err)
	}
	return nil
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show the learner's module scores",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTutor(cmd, func(t *tutor.Tutor) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Learner ID: %d\n", t.LearnerID())
			fmt.Fprintf(out, "Preferred Language: %s\n\n", t.Language().Upper())
			for _, line := range t.ProgressLines() {
				fmt.Fprintln(out, line)
			}
			return nil
		})
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest content for the learner's weakest module",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTutor(cmd, func(t *tutor.Tutor) error {
			fmt.Fprintln(cmd.OutOrStdout(), t.SuggestContent())
			return nil
		})
	},
}

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Give per-module feedback",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTutor(cmd, func(t *tutor.Tutor) error {
			fmt.Fprintln(cmd.OutOrStdout(), t.PersonalizedFeedback())
			return nil
		})
	},
}

var questionCmd = &cobra.Command{
	Use:   "question",
	Short: "Pose a question at the learner's difficulty tier",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTutor(cmd, func(t *tutor.Tutor) error {
			fmt.Fprintln(cmd.OutOrStdout(), t.AdaptiveQuestion())
			return nil
		})
	},
}
