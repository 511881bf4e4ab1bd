package creds

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvOpenAIKey is the language model API key variable.
	EnvOpenAIKey = "OPENAI_API_KEY"
	// EnvTavilyKey is the search provider API key variable.
	EnvTavilyKey = "TAVILY_API_KEY"
)

// Credentials holds the two API keys the pipeline depends on. Resolved once
// at startup, read-only afterwards.
type Credentials struct {
	OpenAIKey string
	TavilyKey string
}

// String redacts both keys so Credentials can never leak through logging or
// error formatting.
func (c Credentials) String() string {
	return "creds.Credentials{OpenAIKey:<redacted>, TavilyKey:<redacted>}"
}

// MissingCredentialError names exactly which required keys are absent. It is
// returned before any network call is attempted and should be rendered as a
// user-facing message by the caller.
type MissingCredentialError struct {
	Missing []string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("missing required API key(s): %s", strings.Join(e.Missing, ", "))
}

// Resolve loads both API keys, checking in order: process environment, the
// local .env file, then the secrets file (TOML, Streamlit-style secrets
// facility). Later sources never override earlier ones.
func Resolve(envFile, secretsFile string) (Credentials, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if secretsFile == "" {
		secretsFile = "secrets.toml"
	}

	// godotenv does not override variables already present in the process
	// environment, which gives us the env-first precedence for free.
	_ = godotenv.Load(envFile)

	c := Credentials{
		OpenAIKey: os.Getenv(EnvOpenAIKey),
		TavilyKey: os.Getenv(EnvTavilyKey),
	}

	if c.OpenAIKey == "" || c.TavilyKey == "" {
		if sc, err := loadSecretsFile(secretsFile); err == nil {
			if c.OpenAIKey == "" {
				c.OpenAIKey = sc.OpenAIKey
			}
			if c.TavilyKey == "" {
				c.TavilyKey = sc.TavilyKey
			}
		}
	}

	var missing []string
	if c.OpenAIKey == "" {
		missing = append(missing, EnvOpenAIKey)
	}
	if c.TavilyKey == "" {
		missing = append(missing, EnvTavilyKey)
	}
	if len(missing) > 0 {
		return Credentials{}, &MissingCredentialError{Missing: missing}
	}
	return c, nil
}

func loadSecretsFile(path string) (Credentials, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return Credentials{}, err
	}
	return Credentials{
		OpenAIKey: v.GetString(EnvOpenAIKey),
		TavilyKey: v.GetString(EnvTavilyKey),
	}, nil
}
