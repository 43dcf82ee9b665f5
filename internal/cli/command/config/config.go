package config

import (
	"context"
	"fmt"

	cfg "github.com/tomasalvarez/cronista/internal/config"
	"github.com/tomasalvarez/cronista/internal/ui"
	"github.com/urfave/cli/v3"
)

type ConfigFactory struct{}

func NewConfigFactory() *ConfigFactory {
	return &ConfigFactory{}
}

func (f *ConfigFactory) CreateCommand(config *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect and edit the cronista configuration",
		Commands: []*cli.Command{
			newInitCommand(config),
			newShowCommand(config),
			newSetAPIKeyCommand(config),
			newSetModelCommand(config),
			newSetTokenCommand(config),
		},
	}
}

func newInitCommand(config *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write the config file with its current values",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// LoadConfig already creates the file on first run; init just
			// forces a save so the file exists to edit by hand.
			if err := cfg.SaveConfig(config); err != nil {
				return err
			}
			ui.PrintSuccess("Config written to %s", config.PathFile)
			return nil
		},
	}
}

func newShowCommand(config *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show the current configuration",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Printf("Config file:      %s\n", config.PathFile)
			fmt.Printf("Model:            %s\n", config.Model)
			fmt.Printf("Changelog path:   %s\n", config.ChangelogPath)
			fmt.Printf("Repo URL:         %s\n", valueOrDefault(config.RepoURL, "(from origin remote)"))
			fmt.Printf("Exclude patterns: %v\n", config.ExcludePatterns)
			fmt.Printf("Gemini API key:   %s\n", maskSecret(config.GeminiAPIKey))
			fmt.Printf("GitHub token:     %s\n", maskSecret(config.GitHubToken))
			return nil
		},
	}
}

func newSetAPIKeyCommand(config *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:      "set-api-key",
		Usage:     "Store the Gemini API key",
		ArgsUsage: "<key>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			key := cmd.Args().First()
			if key == "" {
				return fmt.Errorf("usage: cronista config set-api-key <key>")
			}
			config.GeminiAPIKey = key
			if err := cfg.SaveConfig(config); err != nil {
				return err
			}
			ui.PrintSuccess("API key saved")
			return nil
		},
	}
}

func newSetModelCommand(config *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:      "set-model",
		Usage:     "Select the Gemini model used for categorization",
		ArgsUsage: "<model>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			model := cmd.Args().First()
			if model == "" {
				return fmt.Errorf("usage: cronista config set-model <model>")
			}
			config.Model = model
			if err := cfg.SaveConfig(config); err != nil {
				return err
			}
			ui.PrintSuccess("Model set to %s", model)
			return nil
		},
	}
}

func newSetTokenCommand(config *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:      "set-token",
		Usage:     "Store the GitHub token used for publishing releases",
		ArgsUsage: "<token>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			token := cmd.Args().First()
			if token == "" {
				return fmt.Errorf("usage: cronista config set-token <token>")
			}
			config.GitHubToken = token
			if err := cfg.SaveConfig(config); err != nil {
				return err
			}
			ui.PrintSuccess("GitHub token saved")
			return nil
		},
	}
}

func maskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

func valueOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
