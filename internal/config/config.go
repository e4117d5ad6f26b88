// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	Upload    UploadConfig    `yaml:"upload" mapstructure:"upload"`
	Narrative NarrativeConfig `yaml:"narrative" mapstructure:"narrative"`
}

// ServerConfig configures the dashboard server.
type ServerConfig struct {
	Port           int `yaml:"port" mapstructure:"port"`
	SessionTTLMins int `yaml:"session_ttl_mins" mapstructure:"session_ttl_mins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// LLMConfig configures the text-generation provider. An empty APIKey
// disables the AI features and nothing else.
type LLMConfig struct {
	Provider          string  `yaml:"provider" mapstructure:"provider"`
	APIKey            string  `yaml:"api_key" mapstructure:"api_key"`
	Model             string  `yaml:"model" mapstructure:"model"`
	MaxTokens         int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature       float64 `yaml:"temperature" mapstructure:"temperature"`
	RequestsPerMinute int     `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
}

// ResolvedModel returns the configured model, or the provider's default.
func (c LLMConfig) ResolvedModel() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case "gemini":
		return "gemini-2.5-flash"
	default:
		return "claude-haiku-4-5-20251001"
	}
}

// UploadConfig bounds statement uploads.
type UploadConfig struct {
	MaxBytes int64 `yaml:"max_bytes" mapstructure:"max_bytes"`
}

// NarrativeConfig configures the AI commentary feature.
type NarrativeConfig struct {
	PromptFile string `yaml:"prompt_file" mapstructure:"prompt_file"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FINLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.session_ttl_mins", 120)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("llm.provider", "anthropic")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.max_tokens", 2048)
	v.SetDefault("llm.temperature", 0.3)
	v.SetDefault("llm.requests_per_minute", 20)
	v.SetDefault("upload.max_bytes", 10<<20)
	v.SetDefault("narrative.prompt_file", "")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
