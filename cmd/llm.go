package cmd

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/learnbot/internal/llm"
	"github.com/abhisek/learnbot/internal/store"
)

type purposeInfo struct {
	purpose string
	label   string
}

// purposeLabels names the request kinds learnbot sends, in display order.
var purposeLabels = []purposeInfo{
	{llm.PurposeChat, "Chat answers"},
	{llm.PurposeBankGen, "Question generation"},
}

func purposeLabel(p string) string {
	for _, pl := range purposeLabels {
		if pl.purpose == p {
			return pl.label
		}
	}
	return p
}

func knownPurposes() []string {
	return lo.Map(purposeLabels, func(pl purposeInfo, _ int) string { return pl.purpose })
}

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect logged LLM requests (chat answers, question generation)",
}

// openStore opens the configured database without building the rest of the
// runtime.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	s, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// table writes fixed-width columns. A negative width left-aligns.
type table struct {
	out    io.Writer
	widths []int
}

func (t table) row(cells ...string) {
	parts := make([]string, len(cells))
	for i, c := range cells {
		w := t.widths[i]
		if w < 0 {
			parts[i] = fmt.Sprintf("%-*s", -w, truncate(c, -w))
		} else {
			parts[i] = fmt.Sprintf("%*s", w, c)
		}
	}
	fmt.Fprintln(t.out, strings.TrimRight(strings.Join(parts, "  "), " "))
}

func (t table) rule() {
	n := 2 * (len(t.widths) - 1)
	for _, w := range t.widths {
		n += max(w, -w)
	}
	fmt.Fprintln(t.out, strings.Repeat("─", n))
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		if purpose != "" && !slices.Contains(knownPurposes(), purpose) {
			return fmt.Errorf("unknown purpose %q (want one of %s)", purpose, strings.Join(knownPurposes(), ", "))
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(commandContext(cmd), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM events found.")
			return nil
		}

		t := table{out: out, widths: []int{5, -16, -19, -24, 11, 7, -6}}
		t.row("ID", "When", "Kind", "Model", "Tokens", "Ms", "Status")
		t.rule()
		for _, e := range events {
			status := "ok"
			if !e.Success {
				status = "failed"
			}
			t.row(
				strconv.Itoa(e.ID),
				e.Timestamp.Local().Format("2006-01-02 15:04"),
				purposeLabel(e.Purpose),
				e.Model,
				fmt.Sprintf("%d/%d", e.InputTokens, e.OutputTokens),
				strconv.FormatInt(e.LatencyMs, 10),
				status,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply recorded for one LLM request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(commandContext(cmd), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		out := cmd.OutOrStdout()
		fields := [][2]string{
			{"Request", strconv.Itoa(e.ID)},
			{"When", e.Timestamp.Local().Format("2006-01-02 15:04:05")},
			{"Kind", purposeLabel(e.Purpose)},
			{"Model", e.Provider + "/" + e.Model},
			{"Tokens", fmt.Sprintf("%d in, %d out", e.InputTokens, e.OutputTokens)},
			{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
		}
		if e.ErrorMessage != "" {
			fields = append(fields, [2]string{"Error", e.ErrorMessage})
		}
		for _, f := range fields {
			fmt.Fprintf(out, "%-8s %s\n", f[0]+":", f[1])
		}

		section := func(title, body string) {
			fmt.Fprintf(out, "\n── %s ──\n", title)
			if body == "" {
				body = "(not captured)"
			}
			fmt.Fprintln(out, body)
		}
		prompt := "Prompt"
		if e.Purpose == llm.PurposeBankGen {
			prompt = "Generation request"
		}
		section(prompt, e.RequestBody)
		section("Reply", e.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per request kind and estimated cost per model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := commandContext(cmd)
		usage, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(usage) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}

		// Known kinds always appear, in display order; anything else follows.
		byPurpose := lo.KeyBy(usage, func(u store.PurposeUsage) string { return u.Purpose })
		rows := make([]store.PurposeUsage, 0, len(usage)+len(purposeLabels))
		for _, p := range knownPurposes() {
			rows = append(rows, store.PurposeUsage{Purpose: p})
			if u, ok := byPurpose[p]; ok {
				rows[len(rows)-1] = u
			}
		}
		for _, u := range usage {
			if !slices.Contains(knownPurposes(), u.Purpose) {
				rows = append(rows, u)
			}
		}

		t := table{out: out, widths: []int{-20, 6, 10, 10, 8}}
		t.row("Kind", "Calls", "Input", "Output", "Avg Ms")
		t.rule()
		for _, u := range rows {
			t.row(purposeLabel(u.Purpose), strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
				strconv.Itoa(u.OutputTokens), strconv.FormatInt(u.AvgLatencyMs, 10))
		}
		t.rule()
		t.row("Total",
			strconv.Itoa(lo.SumBy(rows, func(u store.PurposeUsage) int { return u.Calls })),
			strconv.Itoa(lo.SumBy(rows, func(u store.PurposeUsage) int { return u.InputTokens })),
			strconv.Itoa(lo.SumBy(rows, func(u store.PurposeUsage) int { return u.OutputTokens })),
			"")

		models, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(models) == 0 {
			return nil
		}

		fmt.Fprintln(out)
		t = table{out: out, widths: []int{-32, 6, 10}}
		t.row("Model", "Calls", "Cost (USD)")
		t.rule()
		var total float64
		var unpriced []string
		for _, mu := range models {
			cost := llm.LookupCost(mu.Model)
			if cost == nil {
				unpriced = append(unpriced, mu.Model)
				t.row(mu.Model, strconv.Itoa(mu.Calls), "?")
				continue
			}
			c := cost.Cost(mu.InputTokens, mu.OutputTokens)
			total += c
			t.row(mu.Model, strconv.Itoa(mu.Calls), formatCost(c))
		}
		t.rule()
		label := "Total"
		if len(unpriced) > 0 {
			label = "Total (partial)"
		}
		t.row(label, "", formatCost(total))
		if len(unpriced) > 0 {
			fmt.Fprintf(out, "\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show one kind: chat or bank-gen")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
