// Package config resolves runtime settings from LEARNBOT_* environment
// variables. Command-line flags override the values it returns.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/abhisek/learnbot/internal/quiz"
	"github.com/abhisek/learnbot/internal/store"
)

const (
	EnvDB         = "LEARNBOT_DB"
	EnvRoster     = "LEARNBOT_ROSTER"
	EnvCatalog    = "LEARNBOT_CATALOG"
	EnvLearner    = "LEARNBOT_LEARNER"
	EnvQuizLength = "LEARNBOT_QUIZ_LENGTH"
	EnvLogMode    = "LEARNBOT_LOG_MODE"
	EnvLogFile    = "LEARNBOT_LOG_FILE"
)

// DefaultLearnerID is the learner selected when none is given.
const DefaultLearnerID = 1

// Config holds resolved settings.
type Config struct {
	DBPath string

	// RosterPath and CatalogPath are optional YAML files. Empty means the
	// stored roster (or the built-in one) and the built-in catalog.
	RosterPath  string
	CatalogPath string

	LearnerID  int
	QuizLength int

	LogMode string
	LogPath string
}

// FromEnv builds a Config from the environment, filling defaults for
// anything unset. Malformed numeric values are reported, not ignored.
func FromEnv() (Config, error) {
	cfg := Config{
		DBPath:      os.Getenv(EnvDB),
		RosterPath:  os.Getenv(EnvRoster),
		CatalogPath: os.Getenv(EnvCatalog),
		LogMode:     envOr(EnvLogMode, "prod"),
		LogPath:     os.Getenv(EnvLogFile),
	}
	if cfg.DBPath == "" {
		path, err := store.DefaultDBPath()
		if err != nil {
			return Config{}, err
		}
		cfg.DBPath = path
	}

	var err error
	if cfg.LearnerID, err = Int(EnvLearner, DefaultLearnerID); err != nil {
		return Config{}, err
	}
	if cfg.QuizLength, err = Int(EnvQuizLength, quiz.DefaultLength); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that have no sensible fallback.
func (c Config) Validate() error {
	var errs []error
	if c.QuizLength <= 0 {
		errs = append(errs, fmt.Errorf("quiz length must be positive, got %d", c.QuizLength))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("database path is empty"))
	}
	switch strings.ToLower(c.LogMode) {
	case "", "dev", "development", "prod", "production":
	default:
		errs = append(errs, fmt.Errorf("unknown log mode %q", c.LogMode))
	}
	return errors.Join(errs...)
}

// Int reads an integer environment variable, returning def when unset.
func Int(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, raw)
	}
	return v, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
