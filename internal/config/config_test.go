package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every XDG directory and env var Load reads at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	for _, names := range envBindings {
		for _, name := range names {
			t.Setenv(name, "")
		}
	}
	for _, key := range []string{"progress", "events_db", "data_dir", "tutor.timeout", "generate.quiz_questions"} {
		t.Setenv(envName(key), "")
	}
	return dir
}

func noEnvFile(t *testing.T) Options {
	return Options{EnvFile: filepath.Join(t.TempDir(), "missing.env")}
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	dataDir := filepath.Join(dir, "data", "pytutor")
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dataDir, "progress.json"), cfg.Progress)
	assert.Equal(t, filepath.Join(dataDir, "events.db"), cfg.EventsDB)
	assert.Equal(t, filepath.Join(dataDir, "logs", "pytutor.log"), cfg.Log.File)
	assert.Empty(t, cfg.ContentDir)
	assert.Empty(t, cfg.ConfigFile)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.LLM.Provider)
	assert.Equal(t, "gemini-flash", cfg.LLM.Gemini.Model)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, time.Second, cfg.LLM.Retry.InitialWait)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Tutor.Timeout)
	assert.Equal(t, 50, cfg.Generate.QuizQuestions)
}

func TestLoad_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("PYTUTOR_PROGRESS", "/tmp/p.json")
	t.Setenv("PYTUTOR_CONTENT_DIR", "/srv/content")
	t.Setenv("PYTUTOR_LOG_LEVEL", "debug")
	t.Setenv("PYTUTOR_LLM_PROVIDER", "openai")
	t.Setenv("PYTUTOR_OPENAI_MODEL", "gpt-4.1")
	t.Setenv("PYTUTOR_TUTOR_TIMEOUT", "5s")
	t.Setenv("PYTUTOR_GENERATE_QUIZ_QUESTIONS", "10")

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/p.json", cfg.Progress)
	assert.Equal(t, "/srv/content", cfg.ContentDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4.1", cfg.LLM.OpenAI.Model)
	assert.Equal(t, 5*time.Second, cfg.Tutor.Timeout)
	assert.Equal(t, 10, cfg.Generate.QuizQuestions)
}

func TestLoad_APIKeyFallbacks(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"prefixed", map[string]string{"PYTUTOR_GEMINI_API_KEY": "prefixed"}, "prefixed"},
		{"plain", map[string]string{"GEMINI_API_KEY": "plain"}, "plain"},
		{"prefixed wins", map[string]string{"PYTUTOR_GEMINI_API_KEY": "prefixed", "GEMINI_API_KEY": "plain"}, "prefixed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load(noEnvFile(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.LLM.Gemini.APIKey)
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	yaml := `
data_dir: ` + filepath.Join(dir, "custom") + `
log:
  level: warn
llm:
  provider: anthropic
  anthropic:
    model: claude-sonnet
  retry:
    max_attempts: 5
tutor:
  timeout: 45s
`
	path := filepath.Join(dir, "pytutor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	opts := noEnvFile(t)
	opts.ConfigFile = path
	cfg, err := Load(opts)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.ConfigFile)
	assert.Equal(t, filepath.Join(dir, "custom", "progress.json"), cfg.Progress)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "claude-sonnet", cfg.LLM.Anthropic.Model)
	assert.Equal(t, 5, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, 45*time.Second, cfg.Tutor.Timeout)
	// Untouched nested defaults survive a partial file.
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAI.Model)
}

func TestLoad_DefaultConfigDirIsOptional(t *testing.T) {
	dir := isolate(t)
	confDir := filepath.Join(dir, "config", "pytutor")
	require.NoError(t, os.MkdirAll(confDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(confDir, "config.yaml"), []byte("content_dir: /opt/lessons\n"), 0o644))

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "/opt/lessons", cfg.ContentDir)
	assert.Equal(t, filepath.Join(confDir, "config.yaml"), cfg.ConfigFile)
}

func TestLoad_MissingExplicitConfigFails(t *testing.T) {
	dir := isolate(t)
	opts := noEnvFile(t)
	opts.ConfigFile = filepath.Join(dir, "nope.yaml")
	_, err := Load(opts)
	assert.Error(t, err)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PYTUTOR_OPENROUTER_MODEL=meta-llama/llama-3-8b\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("PYTUTOR_OPENROUTER_MODEL") })
	os.Unsetenv("PYTUTOR_OPENROUTER_MODEL")

	cfg, err := Load(Options{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "meta-llama/llama-3-8b", cfg.LLM.OpenRouter.Model)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("PYTUTOR_PROGRESS", "/from/env.json")
	t.Setenv("PYTUTOR_LOG_LEVEL", "error")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("progress", "", "")
	flags.String("log-level", "", "")
	flags.String("content", "", "")
	require.NoError(t, flags.Parse([]string{"--progress", "/from/flag.json"}))

	opts := noEnvFile(t)
	opts.Flags = flags
	cfg, err := Load(opts)
	require.NoError(t, err)

	assert.Equal(t, "/from/flag.json", cfg.Progress)
	// Unchanged flags do not mask the environment.
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Tutor:    TutorConfig{Timeout: time.Second},
			Generate: GenerateConfig{QuizQuestions: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) { c.Log.Level = "info" }, false},
		{"upper-case level", func(c *Config) { c.Log.Level = "WARN" }, false},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"zero timeout", func(c *Config) { c.Log.Level = "info"; c.Tutor.Timeout = 0 }, true},
		{"zero questions", func(c *Config) { c.Log.Level = "info"; c.Generate.QuizQuestions = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.Equal(t, tt.wantErr, err != nil, "err = %v", err)
		})
	}
}
