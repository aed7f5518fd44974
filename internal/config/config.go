// Package config loads quizwise settings from an optional YAML file and
// QUIZWISE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/abhisek/quizwise/internal/llm"
	"github.com/abhisek/quizwise/internal/logging"
	"github.com/abhisek/quizwise/internal/storage"
)

// EnvPrefix prefixes every environment variable, e.g. QUIZWISE_SERVER_ADDR.
const EnvPrefix = "QUIZWISE"

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      logging.Config `mapstructure:"log"`
	Storage  storage.Config `mapstructure:"storage"`
	LLM      llm.Config     `mapstructure:"llm"`
	Quiz     QuizConfig     `mapstructure:"quiz"`

	// File is the config file that was read, or empty.
	File string `mapstructure:"-"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	// Path is the SQLite file. Empty selects the XDG data directory.
	Path string `mapstructure:"path"`
}

type QuizConfig struct {
	DefaultQuestions int   `mapstructure:"default_questions"`
	MaxAttempts      int   `mapstructure:"max_attempts"`
	MaxContentChars  int   `mapstructure:"max_content_chars"`
	MaxUploadBytes   int64 `mapstructure:"max_upload_bytes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 3*time.Minute)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.path", "")

	lc := logging.DefaultConfig()
	v.SetDefault("log.level", lc.Level)
	v.SetDefault("log.console", lc.Console)
	v.SetDefault("log.file", lc.File)
	v.SetDefault("log.max_size_mb", lc.MaxSizeMB)
	v.SetDefault("log.max_backups", lc.MaxBackups)
	v.SetDefault("log.max_age_days", lc.MaxAgeDays)
	v.SetDefault("log.compress", lc.Compress)

	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.bucket", "quizwise")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.use_ssl", false)
	v.SetDefault("storage.url_expiry", 15*time.Minute)

	// llm.provider has no default so that an unset provider can fall
	// back to key discovery.
	lm := llm.DefaultConfig()
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", lm.Anthropic.Model)
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", lm.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", lm.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", lm.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.retry.max_attempts", lm.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", lm.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", lm.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", lm.Retry.Multiplier)
	v.SetDefault("llm.timeout", lm.Timeout)

	v.SetDefault("quiz.default_questions", 10)
	v.SetDefault("quiz.max_attempts", 2)
	v.SetDefault("quiz.max_content_chars", 60_000)
	v.SetDefault("quiz.max_upload_bytes", 25<<20)
}

// Load reads configuration. When path is empty, quizwise.yaml is looked
// up in the working directory and the XDG config directory; a missing
// file is not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("llm.provider"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("quizwise")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if cfg.LLM.Provider == "" {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg.LLM.Provider = discovered.Provider
			mergeKey(&cfg.LLM, discovered)
		} else {
			cfg.LLM.Provider = llm.DefaultConfig().Provider
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeKey copies the discovered provider key unless one is configured.
func mergeKey(dst *llm.Config, src llm.Config) {
	switch src.Provider {
	case llm.ProviderAnthropic:
		if dst.Anthropic.APIKey == "" {
			dst.Anthropic.APIKey = src.Anthropic.APIKey
		}
	case llm.ProviderOpenAI:
		if dst.OpenAI.APIKey == "" {
			dst.OpenAI.APIKey = src.OpenAI.APIKey
		}
	case llm.ProviderGemini:
		if dst.Gemini.APIKey == "" {
			dst.Gemini.APIKey = src.Gemini.APIKey
		}
	case llm.ProviderOpenRouter:
		if dst.OpenRouter.APIKey == "" {
			dst.OpenRouter.APIKey = src.OpenRouter.APIKey
		}
	}
}

// Validate checks values that would otherwise fail late. LLM keys are
// checked when a provider is built, so commands that never generate a
// quiz work without one.
func (c *Config) Validate() error {
	var errs []string
	if c.Server.Addr == "" {
		errs = append(errs, "server.addr is required")
	}
	if c.Quiz.DefaultQuestions < 1 {
		errs = append(errs, "quiz.default_questions must be at least 1")
	}
	if c.Quiz.MaxUploadBytes < 1 {
		errs = append(errs, "quiz.max_upload_bytes must be positive")
	}
	if c.Storage.Endpoint != "" && c.Storage.Bucket == "" {
		errs = append(errs, "storage.bucket is required when storage.endpoint is set")
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func configDir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "quizwise"), nil
}
