package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnbot/internal/curriculum"
	"github.com/abhisek/learnbot/internal/roster"
)

var learnerCmd = &cobra.Command{
	Use:   "learner",
	Short: "Manage the learner roster",
}

var learnerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List learners in the active roster",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		ros, err := rt.roster(commandContext(cmd))
		if err != nil {
			return err
		}
		printRoster(cmd, ros)
		return nil
	},
}

var learnerImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import learners from a YAML roster file into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ros, err := roster.LoadFile(args[0])
		if err != nil {
			return err
		}

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := roster.SaveTo(commandContext(cmd), rt.store.LearnerRepo(), ros); err != nil {
			return fmt.Errorf("save roster: %w", err)
		}
		rt.log.Info("roster imported", "learners", ros.Len(), "file", args[0])
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Imported %d learners.\n", ros.Len())
		for _, id := range ros.IDs() {
			rec, _ := ros.Lookup(id)
			if !rec.Language.Supported() {
				fmt.Fprintf(out, "Learner %d prefers %q; suggestions and feedback will be shown untagged.\n", id, string(rec.Language))
			}
		}
		return nil
	},
}

func printRoster(cmd *cobra.Command, ros *roster.Roster) {
	out := cmd.OutOrStdout()
	modules := curriculum.AllModules()

	fmt.Fprintf(out, "%-4s  %-4s", "ID", "Lang")
	for _, m := range modules {
		fmt.Fprintf(out, "  %-18s", curriculum.DisplayName(m))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("─", 12+20*len(modules)))

	for _, id := range ros.IDs() {
		rec, _ := ros.Lookup(id)
		fmt.Fprintf(out, "%-4d  %-4s", rec.ID, rec.Language.Upper())
		for _, m := range modules {
			fmt.Fprintf(out, "  %-18d", rec.Scores[m])
		}
		fmt.Fprintln(out)
	}
}

func init() {
	learnerCmd.AddCommand(learnerListCmd)
	learnerCmd.AddCommand(learnerImportCmd)
}
