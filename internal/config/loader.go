package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if NAMEPREP_CONFIG is set
//  3. env (prefix NAMEPREP_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("NAMEPREP_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: NAMEPREP_INPUT_FILE, NAMEPREP_WORKER_COUNT, ...
	// Map env keys like NAMEPREP_QUEUE_SIZE -> queue_size (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("NAMEPREP_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "nameprep_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be at least 1", ErrInvalidConfig)
	case c.QueueSize < 1:
		return fmt.Errorf("%w: queue_size must be at least 1", ErrInvalidConfig)
	case c.MonthMin > c.MonthMax:
		return fmt.Errorf("%w: month bounds are inverted", ErrInvalidConfig)
	case c.YearMin > c.YearMax:
		return fmt.Errorf("%w: year bounds are inverted", ErrInvalidConfig)
	case c.MinCondProb < 0 || c.MinCondProb > 1:
		return fmt.Errorf("%w: min_cond_prob must be within [0, 1]", ErrInvalidConfig)
	case c.MinGroupCount < 1:
		return fmt.Errorf("%w: min_group_count must be at least 1", ErrInvalidConfig)
	case c.MinGroupLen < 1:
		return fmt.Errorf("%w: min_group_len must be at least 1", ErrInvalidConfig)
	case c.MaxCollapsePasses < 1:
		return fmt.Errorf("%w: max_collapse_passes must be at least 1", ErrInvalidConfig)
	case c.GivenColumn == "" || c.FamilyColumn == "" || c.MonthColumn == "" || c.YearColumn == "":
		return fmt.Errorf("%w: source column names must not be empty", ErrInvalidConfig)
	}
	return nil
}
