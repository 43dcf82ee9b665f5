package generate

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomasalvarez/cronista/internal/ai/gemini"
	cfg "github.com/tomasalvarez/cronista/internal/config"
	domainErrors "github.com/tomasalvarez/cronista/internal/errors"
	"github.com/tomasalvarez/cronista/internal/git"
	"github.com/tomasalvarez/cronista/internal/services"
	"github.com/tomasalvarez/cronista/internal/ui"
)

type base struct {
	git *git.GitService
}

// createService wires the changelog service: the categorizer is only
// attached when an API key is configured, otherwise the service falls back
// to conventional-commit categorization.
func (b base) createService(ctx context.Context, config *cfg.Config) (*services.ChangelogService, error) {
	opts := []services.Option{services.WithConfig(config)}

	if config.GeminiAPIKey != "" {
		categorizer, err := gemini.NewCategorizer(ctx, config)
		if err != nil {
			return nil, fmt.Errorf("error creating AI categorizer: %w", err)
		}
		opts = append(opts, services.WithCategorizer(categorizer))
	}

	return services.NewChangelogService(b.git, opts...), nil
}

// reportError surfaces a domain error's suggestion before handing the error
// back to the CLI runner.
func reportError(err error) error {
	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		ui.PrintSuggestion(appErr.Suggestion)
	}
	return err
}
