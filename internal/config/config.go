// Package config defines tool configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Layered loading lives in Load: defaults -> optional YAML file -> env.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/okian/nameprep/internal/domain/nickname"
	"github.com/okian/nameprep/internal/domain/validate"
)

// Config contains process configuration for both tools. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsAddr serves /metrics during a run when non-empty, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`

	// Record pipeline files.
	InputFile  string `koanf:"input_file"`
	OutputFile string `koanf:"output_file"`
	LookupFile string `koanf:"lookup_file"`

	// Source column names; fixed per deployment.
	GivenColumn  string `koanf:"given_column"`
	FamilyColumn string `koanf:"family_column"`
	MonthColumn  string `koanf:"month_column"`
	YearColumn   string `koanf:"year_column"`

	// WorkerCount sets the number of row workers; 1 keeps the run strictly
	// sequential. Rows carry no inter-row dependency, so more is safe.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory row queue.
	QueueSize int `koanf:"queue_size"`

	// Validator bounds.
	MonthMin int `koanf:"month_min"`
	MonthMax int `koanf:"month_max"`
	YearMin  int `koanf:"year_min"`
	YearMax  int `koanf:"year_max"`

	// Table builder files and corpus column names.
	CorpusFile   string `koanf:"corpus_file"`
	ArtifactFile string `koanf:"artifact_file"`
	NameColumn   string `koanf:"name_column"`
	AliasColumn  string `koanf:"alias_column"`
	ProbColumn   string `koanf:"prob_column"`

	// Builder thresholds.
	MinCondProb       float64 `koanf:"min_cond_prob"`
	MinGroupCount     int     `koanf:"min_group_count"`
	MinGroupLen       int     `koanf:"min_group_len"`
	MaxCollapsePasses int     `koanf:"max_collapse_passes"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel: "info",

		InputFile:  "source_names.csv",
		OutputFile: "clean_names.csv",
		LookupFile: "nickname_lookup.csv",

		GivenColumn:  "first_name",
		FamilyColumn: "last_name",
		MonthColumn:  "mob",
		YearColumn:   "yob",

		WorkerCount: 1,
		QueueSize:   1024,

		MonthMin: validate.MonthMin,
		MonthMax: validate.MonthMax,
		YearMin:  validate.YearMin,
		YearMax:  validate.YearMax,

		CorpusFile:   "raw_nicknames.csv",
		ArtifactFile: "nickname_lookup.csv",
		NameColumn:   "name",
		AliasColumn:  "alias",
		ProbColumn:   "cond_prob",

		MinCondProb:       nickname.DefaultMinCondProb,
		MinGroupCount:     nickname.DefaultMinGroupCount,
		MinGroupLen:       nickname.DefaultMinGroupLen,
		MaxCollapsePasses: nickname.DefaultMaxCollapsePasses,
	}
}
