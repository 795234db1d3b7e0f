package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnbot/internal/chat"
	"github.com/abhisek/learnbot/internal/config"
	"github.com/abhisek/learnbot/internal/llm"
	"github.com/abhisek/learnbot/internal/logger"
	"github.com/abhisek/learnbot/internal/questionbank"
	"github.com/abhisek/learnbot/internal/roster"
	"github.com/abhisek/learnbot/internal/store"
	"github.com/abhisek/learnbot/internal/tutor"
)

// loadConfig reads the environment and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if v, _ := flags.GetString("db"); v != "" {
		cfg.DBPath = v
		if err := store.EnsureDir(v); err != nil {
			return config.Config{}, fmt.Errorf("create database dir: %w", err)
		}
	}
	if v, _ := flags.GetString("roster"); v != "" {
		cfg.RosterPath = v
	}
	if v, _ := flags.GetString("catalog"); v != "" {
		cfg.CatalogPath = v
	}
	if flags.Changed("learner") {
		cfg.LearnerID, _ = flags.GetInt("learner")
	}
	if v, _ := flags.GetString("log-mode"); v != "" {
		cfg.LogMode = v
	}
	if v, _ := flags.GetString("log-file"); v != "" {
		cfg.LogPath = v
	}
	return cfg, cfg.Validate()
}

// cliRuntime holds what a command needs. Fields are filled lazily by the open
// helpers; Close releases whatever was opened.
type cliRuntime struct {
	cfg      config.Config
	log      *logger.Logger
	store    *store.Store
	provider llm.Provider
}

// openRuntime loads config, builds the logger and opens the store. With
// logToFile set and no log path configured, logs go next to the database.
func openRuntime(cmd *cobra.Command, logToFile bool) (*cliRuntime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if logToFile && cfg.LogPath == "" {
		cfg.LogPath = defaultLogPath(cfg.DBPath)
	}
	log, err := logger.New(logger.Options{Mode: cfg.LogMode, OutputPath: cfg.LogPath})
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &cliRuntime{cfg: cfg, log: log, store: st}, nil
}

func (r *cliRuntime) Close() {
	if r.store != nil {
		r.store.Close()
	}
	r.log.Sync()
}

// commandContext returns the command context, or Background when cobra was invoked
// without one (tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// llmProvider builds the configured provider once. A missing configuration
// is reported as (nil, nil): generation features degrade instead of failing.
func (r *cliRuntime) llmProvider(ctx context.Context) (llm.Provider, error) {
	if r.provider != nil {
		return r.provider, nil
	}
	p, err := llm.NewProviderFromEnv(ctx, r.store.EventRepo(), r.log)
	if errors.Is(err, llm.ErrNotConfigured) {
		r.log.Info("no LLM provider configured; chat is unavailable")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.provider = p
	return p, nil
}

func (r *cliRuntime) roster(ctx context.Context) (*roster.Roster, error) {
	ros, err := roster.Load(ctx, roster.Source{File: r.cfg.RosterPath, Store: r.store.LearnerRepo()})
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	r.log.Debug("roster loaded", "learners", ros.Len(), "file", r.cfg.RosterPath)
	return ros, nil
}

func (r *cliRuntime) bank() (*questionbank.Bank, error) {
	if r.cfg.CatalogPath == "" {
		return questionbank.Default(), nil
	}
	b, err := questionbank.LoadFile(r.cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return b, nil
}

// tutor assembles the engine for the configured learner.
func (r *cliRuntime) tutor(ctx context.Context) (*tutor.Tutor, error) {
	ros, err := r.roster(ctx)
	if err != nil {
		return nil, err
	}
	bank, err := r.bank()
	if err != nil {
		return nil, err
	}

	var gen chat.Generator
	p, err := r.llmProvider(ctx)
	if err != nil {
		// A broken provider configuration only disables chat.
		r.log.Warn("LLM provider unavailable", "error", err)
	} else if p != nil {
		gen = chat.NewProviderGenerator(p)
	}

	return tutor.New(tutor.Config{
		Roster:     ros,
		Bank:       bank,
		Chat:       chat.NewAdapter(gen, r.log),
		LearnerID:  r.cfg.LearnerID,
		QuizLength: r.cfg.QuizLength,
		Logger:     r.log,
	})
}

// userError logs err and returns the learner-facing line for engine
// errors. Anything without such a line is returned as is.
func (r *cliRuntime) userError(err error) error {
	r.log.Error("command failed", "error", err)
	if msg := tutor.UserMessage(err); msg != tutor.GenericMessage {
		return errors.New(msg)
	}
	return err
}

// defaultLogPath puts TUI logs next to the database.
func defaultLogPath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "learnbot.log")
}
