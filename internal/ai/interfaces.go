package ai

import (
	"context"

	"github.com/tomasalvarez/cronista/internal/changelog"
	"github.com/tomasalvarez/cronista/internal/models"
)

// ChangeCategorizer maps a range of commits onto the six changelog
// categories. Implementations resolve the mapping fully or fail; callers
// only ever see a completed ChangeSet.
type ChangeCategorizer interface {
	Categorize(ctx context.Context, commits []models.Commit) (changelog.ChangeSet, error)
}
