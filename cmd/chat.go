package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnbot/internal/tutor"
)

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask the bot a question, or chat interactively without arguments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTutor(cmd, func(t *tutor.Tutor) error {
			ctx := commandContext(cmd)
			out := cmd.OutOrStdout()

			if len(args) > 0 {
				fmt.Fprintln(out, t.Ask(ctx, strings.Join(args, " ")))
				return nil
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "You: ")
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}
				q := strings.TrimSpace(scanner.Text())
				switch q {
				case "":
					continue
				case "exit", "quit":
					return nil
				}
				fmt.Fprintf(out, "Bot: %s\n\n", t.Ask(ctx, q))
			}
		})
	},
}
