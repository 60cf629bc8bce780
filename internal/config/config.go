// Package config assembles runtime configuration from defaults, an optional
// YAML file, a .env file, PYTUTOR_* environment variables and command-line
// flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/pytutor/internal/llm"
	"github.com/abhisek/pytutor/internal/logging"
	"github.com/abhisek/pytutor/internal/store"
)

const envPrefix = "PYTUTOR"

// Config is the fully resolved application configuration.
type Config struct {
	// DataDir holds the progress file, event database and logs.
	DataDir string `mapstructure:"data_dir"`

	// Progress is the progress file path.
	Progress string `mapstructure:"progress"`

	// EventsDB is the SQLite event log path.
	EventsDB string `mapstructure:"events_db"`

	// ContentDir overrides the embedded lessons and quizzes when set.
	ContentDir string `mapstructure:"content_dir"`

	Log      logging.Config `mapstructure:"log"`
	LLM      llm.Config     `mapstructure:"llm"`
	Tutor    TutorConfig    `mapstructure:"tutor"`
	Generate GenerateConfig `mapstructure:"generate"`

	// ConfigFile is the YAML file that was read, if any.
	ConfigFile string `mapstructure:"-"`
}

// TutorConfig tunes the chatbot.
type TutorConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	MaxTokens int           `mapstructure:"max_tokens"`
}

// GenerateConfig tunes offline content generation.
type GenerateConfig struct {
	QuizQuestions int `mapstructure:"quiz_questions"`
	MaxTokens     int `mapstructure:"max_tokens"`
}

// Options controls where Load looks.
type Options struct {
	// ConfigFile is an explicit YAML file. When empty, config.yaml in the
	// config directory is read if it exists.
	ConfigFile string

	// EnvFile is loaded into the environment before reading variables.
	// Missing files are ignored. Defaults to ".env".
	EnvFile string

	// Flags, when set, override everything else for the flags that were
	// changed on the command line.
	Flags *pflag.FlagSet
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"progress":  "progress",
	"events-db": "events_db",
	"content":   "content_dir",
	"log-level": "log.level",
	"provider":  "llm.provider",
}

// envBindings lists extra environment names per key. PYTUTOR_<KEY> is
// always bound; the names here are checked after it.
var envBindings = map[string][]string{
	"llm.provider":           {"PYTUTOR_LLM_PROVIDER"},
	"llm.timeout":            {"PYTUTOR_LLM_TIMEOUT"},
	"llm.gemini.api_key":     {"PYTUTOR_GEMINI_API_KEY", "GEMINI_API_KEY"},
	"llm.gemini.model":       {"PYTUTOR_GEMINI_MODEL"},
	"llm.openai.api_key":     {"PYTUTOR_OPENAI_API_KEY", "OPENAI_API_KEY"},
	"llm.openai.model":       {"PYTUTOR_OPENAI_MODEL"},
	"llm.openai.base_url":    {"PYTUTOR_OPENAI_BASE_URL"},
	"llm.anthropic.api_key":  {"PYTUTOR_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"},
	"llm.anthropic.model":    {"PYTUTOR_ANTHROPIC_MODEL"},
	"llm.openrouter.api_key": {"PYTUTOR_OPENROUTER_API_KEY", "OPENROUTER_API_KEY"},
	"llm.openrouter.model":   {"PYTUTOR_OPENROUTER_MODEL"},
	"content_dir":            {"PYTUTOR_CONTENT_DIR"},
	"log.level":              {"PYTUTOR_LOG_LEVEL"},
	"log.file":               {"PYTUTOR_LOG_FILE"},
}

// Load resolves the configuration. Paths left empty are placed under the
// data directory.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	if err := setDefaults(v); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envBindings {
		args := append([]string{key, envName(key)}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := readConfigFile(v, opts.ConfigFile); err != nil {
		return nil, err
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			f := opts.Flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()
	cfg.resolvePaths()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envName returns the default PYTUTOR_ variable for key.
func envName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func setDefaults(v *viper.Viper) error {
	dataDir, err := store.DefaultDataDir()
	if err != nil {
		return err
	}

	v.SetDefault("data_dir", dataDir)
	v.SetDefault("progress", "")
	v.SetDefault("events_db", "")
	v.SetDefault("content_dir", "")

	lc := logging.DefaultConfig()
	v.SetDefault("log.level", lc.Level)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", lc.MaxSizeMB)
	v.SetDefault("log.max_backups", lc.MaxBackups)
	v.SetDefault("log.max_age_days", lc.MaxAgeDays)

	mc := llm.DefaultConfig()
	v.SetDefault("llm.provider", mc.Provider)
	v.SetDefault("llm.timeout", mc.Timeout)
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", mc.Gemini.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", mc.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", mc.OpenAI.BaseURL)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", mc.Anthropic.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", mc.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", mc.OpenRouter.BaseURL)
	v.SetDefault("llm.retry.max_attempts", mc.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", mc.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", mc.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", mc.Retry.Multiplier)

	v.SetDefault("tutor.timeout", 30*time.Second)
	v.SetDefault("tutor.max_tokens", 512)

	v.SetDefault("generate.quiz_questions", 50)
	v.SetDefault("generate.max_tokens", 16384)
	return nil
}

func readConfigFile(v *viper.Viper, explicit string) error {
	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", explicit, err)
		}
		return nil
	}

	dir, err := store.DefaultConfigDir()
	if err != nil {
		return err
	}
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func (c *Config) resolvePaths() {
	if c.Progress == "" {
		c.Progress = filepath.Join(c.DataDir, "progress.json")
	}
	if c.EventsDB == "" {
		c.EventsDB = filepath.Join(c.DataDir, "events.db")
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(c.DataDir, "logs", "pytutor.log")
	}
}

// Validate checks values that would otherwise fail late. The LLM provider
// is validated when the chatbot or generator is first used, so the rest of
// the app works without an API key.
func (c *Config) Validate() error {
	if c.Tutor.Timeout <= 0 {
		return fmt.Errorf("tutor.timeout must be positive, got %s", c.Tutor.Timeout)
	}
	if c.Generate.QuizQuestions < 1 {
		return fmt.Errorf("generate.quiz_questions must be at least 1, got %d", c.Generate.QuizQuestions)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}
