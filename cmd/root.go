package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "learnbot",
	Short: "Adaptive computer science tutor",
	Long: "learnbot tracks a learner's progress across five computer science modules,\n" +
		"suggests content, runs multiple-choice quizzes and answers free-text questions.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides LEARNBOT_DB)")
	pf.String("roster", "", "YAML roster file (overrides LEARNBOT_ROSTER)")
	pf.String("catalog", "", "YAML question catalog (overrides LEARNBOT_CATALOG)")
	pf.IntP("learner", "l", 0, "Learner id (overrides LEARNBOT_LEARNER)")
	pf.String("log-mode", "", "Log mode: dev or prod (overrides LEARNBOT_LOG_MODE)")
	pf.String("log-file", "", "Write logs to this file (overrides LEARNBOT_LOG_FILE)")

	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(questionCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(learnerCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
