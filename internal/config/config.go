package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	GeminiAPIKey    string   `toml:"gemini_api_key"`
	Model           string   `toml:"model"`
	ChangelogPath   string   `toml:"changelog_path"`
	RepoURL         string   `toml:"repo_url,omitempty"`
	ExcludePatterns []string `toml:"exclude_patterns"`
	GitHubToken     string   `toml:"github_token,omitempty"`

	// PathFile is where the config was loaded from; not serialized.
	PathFile string `toml:"-"`
}

const (
	defaultModel         = "gemini-2.5-flash"
	defaultChangelogPath = "CHANGELOG.md"
)

var defaultExcludePatterns = []string{"chore(release):"}

// LoadConfig reads the config from <path>/.cronista/config.toml, creating a
// default one on first run. A path ending in .toml is used directly, which
// keeps tests away from the real home directory. Environment variables
// GEMINI_API_KEY and GITHUB_TOKEN override their file counterparts.
func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".toml" {
		configPath = path
	} else {
		configPath = filepath.Join(path, ".cronista", "config.toml")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	config.PathFile = configPath

	applyEnvOverrides(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("loaded config is not valid: %w", err)
	}

	return &config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := &Config{
		Model:           defaultModel,
		ChangelogPath:   defaultChangelogPath,
		ExcludePatterns: defaultExcludePatterns,
		PathFile:        path,
	}

	applyEnvOverrides(config)

	if err := SaveConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig persists the config back to its file.
func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("config to save is not valid: %w", err)
	}
	if config.PathFile == "" {
		return errors.New("config file path is not set")
	}

	if err := os.MkdirAll(filepath.Dir(config.PathFile), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	f, err := os.OpenFile(config.PathFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("error opening config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

func applyEnvOverrides(config *Config) {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.GeminiAPIKey = key
	}
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		config.GitHubToken = token
	}
}

func validateConfig(config *Config) error {
	if config.Model == "" {
		return errors.New("model must not be empty")
	}
	if config.ChangelogPath == "" {
		return errors.New("changelog_path must not be empty")
	}
	return nil
}
