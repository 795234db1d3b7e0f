package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnbot/internal/curriculum"
	"github.com/abhisek/learnbot/internal/questionbank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect and extend the quiz question catalog",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show question counts per module and difficulty",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		bank, err := rt.bank()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-20s", "Module")
		for _, d := range curriculum.AllDifficulties() {
			fmt.Fprintf(out, "  %6s", d.Label())
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, strings.Repeat("─", 20+8*len(curriculum.AllDifficulties())))
		for _, m := range curriculum.AllModules() {
			fmt.Fprintf(out, "%-20s", curriculum.DisplayName(m))
			for _, d := range curriculum.AllDifficulties() {
				fmt.Fprintf(out, "  %6d", bank.Count(m, d))
			}
			fmt.Fprintln(out)
		}
		pools := len(curriculum.AllModules()) * len(curriculum.AllDifficulties())
		fmt.Fprintf(out, "\n%d questions in total.\n", bank.Total())
		fmt.Fprintf(out, "%d of %d module/difficulty pools have questions.\n", len(bank.Keys()), pools)
		return nil
	},
}

var bankGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate questions with the configured LLM and write an extended catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		moduleFlag, _ := cmd.Flags().GetString("module")
		difficultyFlag, _ := cmd.Flags().GetString("difficulty")
		count, _ := cmd.Flags().GetInt("count")
		outPath, _ := cmd.Flags().GetString("out")

		m, err := curriculum.ParseModule(moduleFlag)
		if err != nil {
			return err
		}
		d, err := curriculum.ParseDifficulty(difficultyFlag)
		if err != nil {
			return err
		}
		if count <= 0 {
			return fmt.Errorf("count must be positive, got %d", count)
		}

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := commandContext(cmd)
		p, err := rt.llmProvider(ctx)
		if err != nil {
			return err
		}
		if p == nil {
			return errors.New("no LLM provider configured; set an API key (e.g. OPENAI_API_KEY)")
		}

		bank, err := rt.bank()
		if err != nil {
			return err
		}
		catalog := bank.Catalog()
		var existing []string
		for _, it := range catalog[m][d] {
			existing = append(existing, it.Question)
		}

		gen := questionbank.NewLLMGenerator(p, questionbank.DefaultGeneratorConfig())
		items, err := gen.Generate(ctx, questionbank.GenerateInput{
			Module:     m,
			Difficulty: d,
			Count:      count,
			Existing:   existing,
		})
		if err != nil {
			return fmt.Errorf("generate questions: %w", err)
		}

		merged := catalog.Merge(questionbank.Catalog{m: {d: items}})
		if _, err := questionbank.New(merged); err != nil {
			return fmt.Errorf("generated catalog is invalid: %w", err)
		}

		w := cmd.OutOrStdout()
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			w = f
		}
		if err := questionbank.EncodeCatalog(w, merged); err != nil {
			return fmt.Errorf("write catalog: %w", err)
		}
		rt.log.Info("questions generated", "module", m, "difficulty", d, "added", len(items))
		fmt.Fprintf(cmd.ErrOrStderr(), "Added %d %s questions for %s.\n", len(items), d, curriculum.DisplayName(m))
		return nil
	},
}

func init() {
	bankGenerateCmd.Flags().StringP("module", "m", "", "Module key, e.g. algorithms (required)")
	bankGenerateCmd.Flags().StringP("difficulty", "d", "easy", "Difficulty: easy, medium or hard")
	bankGenerateCmd.Flags().IntP("count", "n", 3, "Number of questions to generate")
	bankGenerateCmd.Flags().StringP("out", "o", "", "Write the merged catalog here instead of stdout")
	_ = bankGenerateCmd.MarkFlagRequired("module")

	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankGenerateCmd)
}
