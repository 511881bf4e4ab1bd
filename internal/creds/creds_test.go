package creds

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// unset clears both key variables for the test while registering restoration
// of whatever the surrounding environment had.
func unset(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvOpenAIKey, EnvTavilyKey} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func TestResolveFromEnvironment(t *testing.T) {
	unset(t)
	t.Setenv(EnvOpenAIKey, "sk-test")
	t.Setenv(EnvTavilyKey, "tvly-test")

	c, err := Resolve(filepath.Join(t.TempDir(), "nope.env"), filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if c.OpenAIKey != "sk-test" || c.TavilyKey != "tvly-test" {
		t.Fatalf("unexpected credentials: %+v", struct{ o, s string }{c.OpenAIKey, c.TavilyKey})
	}
}

func TestResolveMissingBothKeys(t *testing.T) {
	unset(t)

	_, err := Resolve(filepath.Join(t.TempDir(), "nope.env"), filepath.Join(t.TempDir(), "nope.toml"))
	var missing *MissingCredentialError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingCredentialError, got %v", err)
	}
	if len(missing.Missing) != 2 {
		t.Fatalf("expected both keys reported, got %v", missing.Missing)
	}
}

func TestResolveMissingOneKeyNamesIt(t *testing.T) {
	unset(t)
	t.Setenv(EnvOpenAIKey, "sk-test")

	_, err := Resolve(filepath.Join(t.TempDir(), "nope.env"), filepath.Join(t.TempDir(), "nope.toml"))
	var missing *MissingCredentialError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingCredentialError, got %v", err)
	}
	if len(missing.Missing) != 1 || missing.Missing[0] != EnvTavilyKey {
		t.Fatalf("expected only %s reported, got %v", EnvTavilyKey, missing.Missing)
	}
	if !strings.Contains(err.Error(), EnvTavilyKey) {
		t.Fatalf("error must name the missing key: %v", err)
	}
}

func TestResolveFromDotEnvFile(t *testing.T) {
	unset(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := EnvOpenAIKey + "=sk-from-file\n" + EnvTavilyKey + "=tvly-from-file\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Resolve(envFile, filepath.Join(dir, "nope.toml"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if c.OpenAIKey != "sk-from-file" || c.TavilyKey != "tvly-from-file" {
		t.Fatalf("expected keys from .env, got %q %q", c.OpenAIKey, c.TavilyKey)
	}
}

func TestResolveFromSecretsFile(t *testing.T) {
	unset(t)
	dir := t.TempDir()
	secrets := filepath.Join(dir, "secrets.toml")
	content := EnvOpenAIKey + " = \"sk-from-secrets\"\n" + EnvTavilyKey + " = \"tvly-from-secrets\"\n"
	if err := os.WriteFile(secrets, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Resolve(filepath.Join(dir, "nope.env"), secrets)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if c.OpenAIKey != "sk-from-secrets" || c.TavilyKey != "tvly-from-secrets" {
		t.Fatalf("expected keys from secrets file, got %q %q", c.OpenAIKey, c.TavilyKey)
	}
}

func TestResolveEnvironmentWinsOverFiles(t *testing.T) {
	unset(t)
	t.Setenv(EnvOpenAIKey, "sk-env")
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte(EnvOpenAIKey+"=sk-file\n"+EnvTavilyKey+"=tvly-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Resolve(envFile, filepath.Join(dir, "nope.toml"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if c.OpenAIKey != "sk-env" {
		t.Fatalf("environment must win over .env, got %q", c.OpenAIKey)
	}
	if c.TavilyKey != "tvly-file" {
		t.Fatalf("missing env key must fall back to .env, got %q", c.TavilyKey)
	}
}

func TestCredentialsStringRedacts(t *testing.T) {
	c := Credentials{OpenAIKey: "sk-secret", TavilyKey: "tvly-secret"}
	s := c.String()
	if strings.Contains(s, "sk-secret") || strings.Contains(s, "tvly-secret") {
		t.Fatalf("String must redact key values: %s", s)
	}
}
