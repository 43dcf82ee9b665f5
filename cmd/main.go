package main

import (
	"context"
	"log"
	"os"
	"slices"

	configcmd "github.com/tomasalvarez/cronista/internal/cli/command/config"
	"github.com/tomasalvarez/cronista/internal/cli/command/generate"
	"github.com/tomasalvarez/cronista/internal/cli/command/publish"
	"github.com/tomasalvarez/cronista/internal/cli/registry"
	cfg "github.com/tomasalvarez/cronista/internal/config"
	"github.com/tomasalvarez/cronista/internal/git"
	"github.com/tomasalvarez/cronista/internal/logger"
	"github.com/tomasalvarez/cronista/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	logger.Initialize(
		slices.Contains(os.Args, "--debug"),
		slices.Contains(os.Args, "-v") || slices.Contains(os.Args, "--verbose"),
	)

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error initializing the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func initializeApp() (*cli.Command, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	gitService := git.NewGitService()

	reg := registry.NewRegistry(cfgApp)

	if err := reg.Register("generate", generate.NewGenerateFactory(gitService)); err != nil {
		return nil, err
	}
	if err := reg.Register("preview", generate.NewPreviewFactory(gitService)); err != nil {
		return nil, err
	}
	if err := reg.Register("unreleased", generate.NewUnreleasedFactory(gitService)); err != nil {
		return nil, err
	}
	if err := reg.Register("publish", publish.NewPublishFactory(gitService)); err != nil {
		return nil, err
	}
	if err := reg.Register("config", configcmd.NewConfigFactory()); err != nil {
		return nil, err
	}

	return &cli.Command{
		Name:        "cronista",
		Usage:       "Keep your changelog written for you",
		Description: "cronista turns a range of git commits into Keep a Changelog sections, using AI to categorize changes, and merges them into CHANGELOG.md without touching the rest of the file.",
		Version:     version.FullVersion(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable info logging",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging with source locations",
			},
		},
		Commands:              reg.CreateCommands(),
		EnableShellCompletion: true,
	}, nil
}
