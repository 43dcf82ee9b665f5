package generate

import (
	"context"
	"fmt"
	"time"

	cfg "github.com/tomasalvarez/cronista/internal/config"
	"github.com/tomasalvarez/cronista/internal/git"
	"github.com/tomasalvarez/cronista/internal/services"
	"github.com/tomasalvarez/cronista/internal/ui"
	"github.com/urfave/cli/v3"
)

type GenerateFactory struct {
	base
}

func NewGenerateFactory(gitSvc *git.GitService) *GenerateFactory {
	return &GenerateFactory{base{git: gitSvc}}
}

func (f *GenerateFactory) CreateCommand(config *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"g"},
		Usage:   "Generate a changelog section for a commit range and merge it into the changelog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "version",
				Aliases: []string{"V"},
				Usage:   "Version label for the new section (default: patch bump of the last tag)",
			},
			&cli.StringFlag{
				Name:  "from",
				Usage: "Start of the commit range (default: last tag)",
			},
			&cli.StringFlag{
				Name:  "to",
				Usage: "End of the commit range",
				Value: "HEAD",
			},
			&cli.StringFlag{
				Name:  "date",
				Usage: "Release date as YYYY-MM-DD (default: tag date, else today)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Changelog file to update (default: from config)",
			},
			&cli.StringFlag{
				Name:  "repo-url",
				Usage: "Repository base URL for commit links (default: origin remote)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Print the resulting document without writing it",
			},
			&cli.BoolFlag{
				Name:  "commit",
				Usage: "Commit the updated changelog after writing it",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			service, err := f.createService(ctx, config)
			if err != nil {
				return err
			}
			return runGenerate(ctx, cmd, service)
		},
	}
}

func runGenerate(ctx context.Context, cmd *cli.Command, service *services.ChangelogService) error {
	opts := services.GenerateOptions{
		Version: cmd.String("version"),
		From:    cmd.String("from"),
		To:      cmd.String("to"),
		Path:    cmd.String("output"),
		RepoURL: cmd.String("repo-url"),
		DryRun:  cmd.Bool("dry-run"),
	}

	if d := cmd.String("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", d)
		}
		opts.Date = &parsed
	}

	spin := ui.NewSpinner("Categorizing commits...")
	spin.Start()
	result, err := service.GenerateChangelog(ctx, opts)
	spin.Stop()
	if err != nil {
		return reportError(err)
	}

	if opts.DryRun {
		fmt.Println(string(result.Content))
		ui.PrintInfo("dry run: %s was not modified", result.Path)
		return nil
	}

	ui.PrintSuccess("Updated %s with version %s (%d commits)", result.Path, result.Version, result.Commits)

	if cmd.Bool("commit") {
		if err := service.CommitChangelog(ctx, result.Path, result.Version); err != nil {
			return reportError(err)
		}
		ui.PrintSuccess("Committed %s", result.Path)
	}

	return nil
}
