package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/wallet/internal/locale"
)

// FileName is the config file looked up in the project directory.
const FileName = "wallet.yaml"

// Environment variables that override the config file.
const (
	EnvFile   = "WALLET_FILE"
	EnvLocale = "WALLET_LOCALE"
	EnvDebug  = "WALLET_DEBUG"
)

// Config represents the top-level wallet.yaml configuration.
type Config struct {
	Ledger   LedgerConfig   `yaml:"ledger"`
	Activity ActivityConfig `yaml:"activity"`
	Git      GitConfig      `yaml:"git"`
	Debug    bool           `yaml:"debug,omitempty"`
}

// LedgerConfig locates the ledger file and selects its dialect.
type LedgerConfig struct {
	File             string `yaml:"file"`   // relative to the project directory
	Locale           string `yaml:"locale"` // "en" or "ru"
	KeepUnterminated bool   `yaml:"keep_unterminated"`
}

// ActivityConfig controls the CSV log of ledger changes.
type ActivityConfig struct {
	Enabled bool   `yaml:"enabled"`
	File    string `yaml:"file"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a wallet.yaml file from disk. Fields missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			File:   "wallet_data.txt",
			Locale: locale.English.Name,
		},
		Activity: ActivityConfig{
			Enabled: true,
			File:    "logs/activity-log.csv",
		},
		Git: GitConfig{
			AuthorName:  "Wallet",
			AuthorEmail: "wallet@localhost",
		},
	}
}

// ApplyEnv overrides fields from WALLET_* variables. Non-empty variables in
// the process environment win over those read from envFile. A missing
// envFile is ignored.
func (c *Config) ApplyEnv(envFile string) error {
	vars := map[string]string{}
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reading %s: %w", envFile, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for _, k := range []string{EnvFile, EnvLocale, EnvDebug} {
		if v := os.Getenv(k); v != "" {
			vars[k] = v
		}
	}

	if v := vars[EnvFile]; v != "" {
		c.Ledger.File = v
	}
	if v := vars[EnvLocale]; v != "" {
		c.Ledger.Locale = v
	}
	if v := vars[EnvDebug]; v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvDebug, err)
		}
		c.Debug = debug
	}
	return nil
}

// Locale returns the label set named by Ledger.Locale.
func (c *Config) Locale() (locale.Locale, error) {
	loc, err := locale.Lookup(c.Ledger.Locale)
	if err != nil {
		return locale.Locale{}, fmt.Errorf("ledger.locale: %w", err)
	}
	return loc, nil
}
