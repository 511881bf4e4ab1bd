package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the answer pipeline
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Search    SearchConfig    `mapstructure:"search"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug          bool          `mapstructure:"debug"`
	LogLevel       string        `mapstructure:"log_level"`
	DefaultTimeout time.Duration `mapstructure:"default_timeout"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LLMConfig contains completion model settings, including the retry budget
// applied by the orchestrator to retryable generation failures.
type LLMConfig struct {
	Provider     string        `mapstructure:"provider"`
	Model        string        `mapstructure:"model"`
	Temperature  float64       `mapstructure:"temperature"`
	MaxTokens    int           `mapstructure:"max_tokens"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxAttempts  int           `mapstructure:"max_attempts"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
}

// Normalize applies defaults for unset LLM values.
func (c LLMConfig) Normalize() LLMConfig {
	if strings.TrimSpace(c.Provider) == "" {
		c.Provider = "openai"
	}
	if strings.TrimSpace(c.Model) == "" {
		c.Model = "gpt-4o-mini"
	}
	if c.Temperature == 0 {
		c.Temperature = 0.2
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 1024
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = 500 * time.Millisecond
	}
	return c
}

func (c LLMConfig) Validate() error {
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be within [0, 2]")
	}
	if c.MaxAttempts > 10 {
		return fmt.Errorf("llm.max_attempts must be <= 10")
	}
	return nil
}

// SearchConfig contains web search provider settings. Tavily is the default
// provider; its key comes from the credential resolver. Serper and Brave
// keys are configured here when those providers are selected.
type SearchConfig struct {
	Provider     string        `mapstructure:"provider"`
	MaxResults   int           `mapstructure:"max_results"`
	Timeout      time.Duration `mapstructure:"timeout"`
	SerperAPIKey string        `mapstructure:"serper_api_key"`
	BraveAPIKey  string        `mapstructure:"brave_api_key"`
}

// Normalize applies defaults for unset search values.
func (c SearchConfig) Normalize() SearchConfig {
	if strings.TrimSpace(c.Provider) == "" {
		c.Provider = "tavily"
	}
	if c.MaxResults <= 0 {
		c.MaxResults = 5
	}
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	return c
}

func (c SearchConfig) Validate() error {
	if c.MaxResults > 10 {
		return fmt.Errorf("search.max_results must be <= 10")
	}
	switch c.Provider {
	case "tavily", "serper", "brave":
		return nil
	default:
		return fmt.Errorf("search.provider must be one of tavily, serper, brave")
	}
}

// Empty-results policies: answer from model knowledge with a caveat, or
// decline without calling the model.
const (
	OnEmptyAnswer  = "answer"
	OnEmptyDecline = "decline"
)

// PipelineConfig controls orchestrator behaviour when grounding is requested
// but the search yields nothing.
type PipelineConfig struct {
	OnEmptyResults string `mapstructure:"on_empty_results"`
}

func (c PipelineConfig) Normalize() PipelineConfig {
	if strings.TrimSpace(c.OnEmptyResults) == "" {
		c.OnEmptyResults = OnEmptyAnswer
	}
	return c
}

func (c PipelineConfig) Validate() error {
	switch c.OnEmptyResults {
	case OnEmptyAnswer, OnEmptyDecline:
		return nil
	default:
		return fmt.Errorf("pipeline.on_empty_results must be %q or %q", OnEmptyAnswer, OnEmptyDecline)
	}
}

// TelemetryConfig contains metrics settings
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoadConfig loads config from file. A missing file is not an error: all
// sections have working defaults and can be overridden via GROUNDED_* env
// variables.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("general.default_timeout", "60s")
	viper.SetDefault("server.address", ":10002")
	viper.SetDefault("telemetry.enabled", true)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("GROUNDED")
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)
	viper.AutomaticEnv() // read in environment variables that match (GROUNDED_*)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
	config.LLM = config.LLM.Normalize()
	config.Search = config.Search.Normalize()
	config.Pipeline = config.Pipeline.Normalize()

	if err := config.LLM.Validate(); err != nil {
		panic(err)
	}
	if err := config.Search.Validate(); err != nil {
		panic(err)
	}
	if err := config.Pipeline.Validate(); err != nil {
		panic(err)
	}
	return &config
}
