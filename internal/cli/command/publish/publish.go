package publish

import (
	"context"
	"errors"

	cfg "github.com/tomasalvarez/cronista/internal/config"
	domainErrors "github.com/tomasalvarez/cronista/internal/errors"
	"github.com/tomasalvarez/cronista/internal/git"
	"github.com/tomasalvarez/cronista/internal/services"
	"github.com/tomasalvarez/cronista/internal/ui"
	"github.com/tomasalvarez/cronista/internal/vcs/github"
	"github.com/urfave/cli/v3"
)

type PublishFactory struct {
	git *git.GitService
}

func NewPublishFactory(gitSvc *git.GitService) *PublishFactory {
	return &PublishFactory{git: gitSvc}
}

func (f *PublishFactory) CreateCommand(config *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "publish",
		Usage: "Publish a version's changelog section as a GitHub release",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "version",
				Aliases: []string{"V"},
				Usage:   "Tag to publish (default: last tag)",
			},
			&cli.BoolFlag{
				Name:  "draft",
				Usage: "Create the release as a draft",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			service, err := f.createService(ctx, config)
			if err != nil {
				return reportError(err)
			}

			version := cmd.String("version")
			if version == "" {
				version, err = f.git.GetLastTag(ctx)
				if err != nil || version == "" {
					return reportError(domainErrors.ErrNoCommits.WithContext("reason", "no tag to publish"))
				}
			}

			url, err := service.PublishRelease(ctx, version, cmd.Bool("draft"))
			if err != nil {
				return reportError(err)
			}

			ui.PrintSuccess("Release %s published: %s", version, url)
			return nil
		},
	}
}

func (f *PublishFactory) createService(ctx context.Context, config *cfg.Config) (*services.ChangelogService, error) {
	if config.GitHubToken == "" {
		return nil, domainErrors.ErrMissingToken
	}

	info, err := f.git.GetRepoInfo(ctx)
	if err != nil {
		return nil, err
	}

	publisher := github.NewClient(info.Owner, info.Name, config.GitHubToken)
	return services.NewChangelogService(
		f.git,
		services.WithConfig(config),
		services.WithPublisher(publisher),
	), nil
}

func reportError(err error) error {
	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		ui.PrintSuggestion(appErr.Suggestion)
	}
	return err
}
