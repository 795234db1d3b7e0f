package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnbot/internal/app"
)

// runApp builds the tutor and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := openRuntime(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	t, err := rt.tutor(commandContext(cmd))
	if err != nil {
		return rt.userError(err)
	}
	if !t.ChatAvailable() {
		fmt.Fprintln(os.Stderr, "LLM provider not configured; chat will be unavailable.")
	}
	return app.Run(t)
}
