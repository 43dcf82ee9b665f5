package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomasalvarez/cronista/internal/changelog"
	"github.com/tomasalvarez/cronista/internal/config"
	domainErrors "github.com/tomasalvarez/cronista/internal/errors"
)

func TestNewCategorizer(t *testing.T) {
	t.Run("Error - Missing API key", func(t *testing.T) {
		_, err := NewCategorizer(context.Background(), &config.Config{})

		assert.ErrorIs(t, err, domainErrors.ErrMissingAPIKey)
	})
}

func TestParseChangeSet(t *testing.T) {
	t.Run("Success - Clean JSON response", func(t *testing.T) {
		content := `{
			"added": [{"description": "Add export command", "commits": ["abcdef1234567890"]}],
			"changed": [],
			"deprecated": [],
			"removed": [],
			"fixed": [{"description": "Fix crash on empty input", "commits": ["1234567890abcdef"]}],
			"security": []
		}`

		changes, err := parseChangeSet(content)

		require.NoError(t, err)
		require.Len(t, changes[changelog.Added], 1)
		assert.Equal(t, "Add export command", changes[changelog.Added][0].Description)
		assert.Equal(t, []string{"abcdef1234567890"}, changes[changelog.Added][0].Commits)
		require.Len(t, changes[changelog.Fixed], 1)
		assert.Empty(t, changes[changelog.Changed])
	})

	t.Run("Success - Response wrapped in markdown fences", func(t *testing.T) {
		content := "```json\n{\"added\": [{\"description\": \"Fenced entry\", \"commits\": []}], \"changed\": [], \"deprecated\": [], \"removed\": [], \"fixed\": [], \"security\": []}\n```"

		changes, err := parseChangeSet(content)

		require.NoError(t, err)
		require.Len(t, changes[changelog.Added], 1)
		assert.Equal(t, "Fenced entry", changes[changelog.Added][0].Description)
	})

	t.Run("Success - Blank descriptions are skipped", func(t *testing.T) {
		content := `{
			"added": [{"description": "   ", "commits": ["abc"]}, {"description": "Real entry", "commits": []}],
			"changed": [], "deprecated": [], "removed": [], "fixed": [], "security": []
		}`

		changes, err := parseChangeSet(content)

		require.NoError(t, err)
		require.Len(t, changes[changelog.Added], 1)
		assert.Equal(t, "Real entry", changes[changelog.Added][0].Description)
	})

	t.Run("Success - Descriptions are trimmed", func(t *testing.T) {
		content := `{"added": [{"description": "  Padded entry  ", "commits": []}], "changed": [], "deprecated": [], "removed": [], "fixed": [], "security": []}`

		changes, err := parseChangeSet(content)

		require.NoError(t, err)
		assert.Equal(t, "Padded entry", changes[changelog.Added][0].Description)
	})

	t.Run("Error - Response is not JSON", func(t *testing.T) {
		_, err := parseChangeSet("Sorry, I could not categorize these commits.")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "error parsing categorization JSON")
	})
}
