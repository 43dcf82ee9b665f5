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

type PreviewFactory struct {
	base
}

func NewPreviewFactory(gitSvc *git.GitService) *PreviewFactory {
	return &PreviewFactory{base{git: gitSvc}}
}

// Preview renders through the exact same merge path as generate, so what is
// shown here is byte-identical to what a real run would write.
func (f *PreviewFactory) CreateCommand(config *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:    "preview",
		Aliases: []string{"p"},
		Usage:   "Show the changelog a generate run would produce, without writing it",
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
				Usage:   "Changelog file to read (default: from config)",
			},
			&cli.StringFlag{
				Name:  "repo-url",
				Usage: "Repository base URL for commit links (default: origin remote)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			service, err := f.createService(ctx, config)
			if err != nil {
				return err
			}

			opts := services.GenerateOptions{
				Version: cmd.String("version"),
				From:    cmd.String("from"),
				To:      cmd.String("to"),
				Path:    cmd.String("output"),
				RepoURL: cmd.String("repo-url"),
				DryRun:  true,
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

			fmt.Println(string(result.Content))
			return nil
		},
	}
}
