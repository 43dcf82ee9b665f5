package generate

import (
	"context"
	"fmt"

	cfg "github.com/tomasalvarez/cronista/internal/config"
	"github.com/tomasalvarez/cronista/internal/git"
	"github.com/tomasalvarez/cronista/internal/services"
	"github.com/tomasalvarez/cronista/internal/ui"
	"github.com/urfave/cli/v3"
)

type UnreleasedFactory struct {
	base
}

func NewUnreleasedFactory(gitSvc *git.GitService) *UnreleasedFactory {
	return &UnreleasedFactory{base{git: gitSvc}}
}

func (f *UnreleasedFactory) CreateCommand(config *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:    "unreleased",
		Aliases: []string{"u"},
		Usage:   "Rebuild the Unreleased section from the commits since the last tag",
		Flags: []cli.Flag{
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
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			service, err := f.createService(ctx, config)
			if err != nil {
				return err
			}

			opts := services.GenerateOptions{
				From:    cmd.String("from"),
				To:      cmd.String("to"),
				Path:    cmd.String("output"),
				RepoURL: cmd.String("repo-url"),
				DryRun:  cmd.Bool("dry-run"),
			}

			spin := ui.NewSpinner("Categorizing commits...")
			spin.Start()
			result, err := service.RefreshUnreleased(ctx, opts)
			spin.Stop()
			if err != nil {
				return reportError(err)
			}

			if opts.DryRun {
				fmt.Println(string(result.Content))
				ui.PrintInfo("dry run: %s was not modified", result.Path)
				return nil
			}

			ui.PrintSuccess("Refreshed Unreleased section in %s (%d commits)", result.Path, result.Commits)
			return nil
		},
	}
}
