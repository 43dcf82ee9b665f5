package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tomasalvarez/cronista/internal/changelog"
	"github.com/tomasalvarez/cronista/internal/config"
	domainErrors "github.com/tomasalvarez/cronista/internal/errors"
	"github.com/tomasalvarez/cronista/internal/models"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		ChangelogPath: filepath.Join(t.TempDir(), "CHANGELOG.md"),
		RepoURL:       "https://example.com/org/repo",
	}
}

func testDate() *time.Time {
	d := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestGenerateChangelog(t *testing.T) {
	commits := []models.Commit{
		{Hash: "abcdef1234567890", Message: "feat: add export command"},
		{Hash: "1234567890abcdef", Message: "fix: crash on empty input"},
	}

	t.Run("Success - Writes a new changelog from scratch", func(t *testing.T) {
		cfg := testConfig(t)
		mockGit := new(MockGitService)
		mockGit.On("GetLastTag", mock.Anything).Return("v1.0.0", nil)
		mockGit.On("GetCommitsBetween", mock.Anything, "v1.0.0", "HEAD").Return(commits, nil)

		service := NewChangelogService(mockGit, WithConfig(cfg))

		result, err := service.GenerateChangelog(context.Background(), GenerateOptions{
			Version: "1.1.0",
			Date:    testDate(),
		})

		require.NoError(t, err)
		assert.Equal(t, "1.1.0", result.Version)
		assert.Equal(t, 2, result.Commits)
		assert.True(t, result.Written)

		written, err := os.ReadFile(cfg.ChangelogPath)
		require.NoError(t, err)
		assert.Equal(t, result.Content, written)
		assert.Contains(t, string(written), "## [1.1.0] - 2024-02-01")
		assert.Contains(t, string(written), "### Added\n- add export command ([abcdef1](https://example.com/org/repo/commit/abcdef1234567890))")
		assert.Contains(t, string(written), "### Fixed\n- crash on empty input")
		mockGit.AssertExpectations(t)
	})

	t.Run("Success - Dry run renders the same content without writing", func(t *testing.T) {
		cfg := testConfig(t)
		mockGit := new(MockGitService)
		mockGit.On("GetLastTag", mock.Anything).Return("v1.0.0", nil)
		mockGit.On("GetCommitsBetween", mock.Anything, "v1.0.0", "HEAD").Return(commits, nil)

		service := NewChangelogService(mockGit, WithConfig(cfg))
		opts := GenerateOptions{Version: "1.1.0", Date: testDate()}

		previewOpts := opts
		previewOpts.DryRun = true
		preview, err := service.GenerateChangelog(context.Background(), previewOpts)
		require.NoError(t, err)
		assert.False(t, preview.Written)
		assert.NoFileExists(t, cfg.ChangelogPath)

		mockGit2 := new(MockGitService)
		mockGit2.On("GetLastTag", mock.Anything).Return("v1.0.0", nil)
		mockGit2.On("GetCommitsBetween", mock.Anything, "v1.0.0", "HEAD").Return(commits, nil)
		service2 := NewChangelogService(mockGit2, WithConfig(cfg))

		written, err := service2.GenerateChangelog(context.Background(), opts)
		require.NoError(t, err)
		assert.Equal(t, preview.Content, written.Content)
	})

	t.Run("Success - Merges into an existing changelog without touching the rest", func(t *testing.T) {
		cfg := testConfig(t)
		existing := "# Changelog\n\n## [Unreleased]\n\n## [1.0.0] - 2024-01-01\n\n### Added\n- initial\n"
		require.NoError(t, os.WriteFile(cfg.ChangelogPath, []byte(existing), 0644))

		mockGit := new(MockGitService)
		mockGit.On("GetLastTag", mock.Anything).Return("v1.0.0", nil)
		mockGit.On("GetCommitsBetween", mock.Anything, "v1.0.0", "HEAD").Return(commits, nil)

		service := NewChangelogService(mockGit, WithConfig(cfg))

		result, err := service.GenerateChangelog(context.Background(), GenerateOptions{
			Version: "1.1.0",
			Date:    testDate(),
		})

		require.NoError(t, err)
		content := string(result.Content)
		assert.Contains(t, content, "## [Unreleased]")
		assert.Contains(t, content, "## [1.1.0] - 2024-02-01")
		assert.Contains(t, content, "## [1.0.0] - 2024-01-01\n\n### Added\n- initial\n")
	})

	t.Run("Success - Version is derived from the last tag when omitted", func(t *testing.T) {
		cfg := testConfig(t)
		mockGit := new(MockGitService)
		mockGit.On("GetLastTag", mock.Anything).Return("v1.2.3", nil)
		mockGit.On("GetCommitsBetween", mock.Anything, "v1.2.3", "HEAD").Return(commits, nil)

		service := NewChangelogService(mockGit, WithConfig(cfg))

		result, err := service.GenerateChangelog(context.Background(), GenerateOptions{Date: testDate()})

		require.NoError(t, err)
		assert.Equal(t, "v1.2.4", result.Version)
	})

	t.Run("Success - AI categorizer output drives the section", func(t *testing.T) {
		cfg := testConfig(t)
		mockGit := new(MockGitService)
		mockGit.On("GetLastTag", mock.Anything).Return("v1.0.0", nil)
		mockGit.On("GetCommitsBetween", mock.Anything, "v1.0.0", "HEAD").Return(commits, nil)

		mockCategorizer := new(MockCategorizer)
		mockCategorizer.On("Categorize", mock.Anything, commits).Return(changelog.ChangeSet{
			changelog.Security: {{Description: "Patched token leak", Commits: []string{"abcdef1234567890"}}},
		}, nil)

		service := NewChangelogService(mockGit, WithConfig(cfg), WithCategorizer(mockCategorizer))

		result, err := service.GenerateChangelog(context.Background(), GenerateOptions{
			Version: "1.1.0",
			Date:    testDate(),
		})

		require.NoError(t, err)
		assert.Contains(t, string(result.Content), "### Security\n- Patched token leak")
		mockCategorizer.AssertExpectations(t)
	})

	t.Run("Success - Excluded patterns drop commits before categorization", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.ExcludePatterns = []string{"chore(release):"}
		all := append([]models.Commit{
			{Hash: "feedfeedfeedfeed", Message: "chore(release): 1.0.0"},
		}, commits...)

		mockGit := new(MockGitService)
		mockGit.On("GetLastTag", mock.Anything).Return("v1.0.0", nil)
		mockGit.On("GetCommitsBetween", mock.Anything, "v1.0.0", "HEAD").Return(all, nil)

		service := NewChangelogService(mockGit, WithConfig(cfg))

		result, err := service.GenerateChangelog(context.Background(), GenerateOptions{
			Version: "1.1.0",
			Date:    testDate(),
		})

		require.NoError(t, err)
		assert.Equal(t, 2, result.Commits)
		assert.NotContains(t, string(result.Content), "chore(release)")
	})

	t.Run("Error - Empty commit range", func(t *testing.T) {
		cfg := testConfig(t)
		mockGit := new(MockGitService)
		mockGit.On("GetLastTag", mock.Anything).Return("v1.0.0", nil)
		mockGit.On("GetCommitsBetween", mock.Anything, "v1.0.0", "HEAD").Return([]models.Commit{}, nil)

		service := NewChangelogService(mockGit, WithConfig(cfg))

		_, err := service.GenerateChangelog(context.Background(), GenerateOptions{Version: "1.1.0", Date: testDate()})

		assert.ErrorIs(t, err, domainErrors.ErrNoCommits)
	})

	t.Run("Error - Duplicate version in the existing changelog", func(t *testing.T) {
		cfg := testConfig(t)
		existing := "# Changelog\n\n## [1.1.0] - 2024-01-15\n"
		require.NoError(t, os.WriteFile(cfg.ChangelogPath, []byte(existing), 0644))

		mockGit := new(MockGitService)
		mockGit.On("GetLastTag", mock.Anything).Return("v1.0.0", nil)
		mockGit.On("GetCommitsBetween", mock.Anything, "v1.0.0", "HEAD").Return(commits, nil)

		service := NewChangelogService(mockGit, WithConfig(cfg))

		_, err := service.GenerateChangelog(context.Background(), GenerateOptions{Version: "1.1.0", Date: testDate()})

		assert.ErrorIs(t, err, domainErrors.ErrDuplicateVersion)
	})
}

func TestRefreshUnreleasedService(t *testing.T) {
	commits := []models.Commit{
		{Hash: "abcdef1234567890", Message: "feat: add export command"},
	}

	t.Run("Success - Missing changelog gets bootstrapped first", func(t *testing.T) {
		cfg := testConfig(t)
		mockGit := new(MockGitService)
		mockGit.On("GetLastTag", mock.Anything).Return("v1.0.0", nil)
		mockGit.On("GetCommitsBetween", mock.Anything, "v1.0.0", "HEAD").Return(commits, nil)

		service := NewChangelogService(mockGit, WithConfig(cfg))

		result, err := service.RefreshUnreleased(context.Background(), GenerateOptions{})

		require.NoError(t, err)
		assert.Equal(t, changelog.UnreleasedLabel, result.Version)
		assert.True(t, result.Written)

		content := string(result.Content)
		assert.Contains(t, content, "# Changelog")
		assert.Contains(t, content, "## [Unreleased]\n\n### Added\n- add export command")
	})

	t.Run("Success - Released sections stay untouched", func(t *testing.T) {
		cfg := testConfig(t)
		existing := "# Changelog\n\n## [Unreleased]\n\n### Fixed\n- stale entry\n\n## [1.0.0] - 2024-01-01\n\n### Added\n- initial\n"
		require.NoError(t, os.WriteFile(cfg.ChangelogPath, []byte(existing), 0644))

		mockGit := new(MockGitService)
		mockGit.On("GetLastTag", mock.Anything).Return("v1.0.0", nil)
		mockGit.On("GetCommitsBetween", mock.Anything, "v1.0.0", "HEAD").Return(commits, nil)

		service := NewChangelogService(mockGit, WithConfig(cfg))

		result, err := service.RefreshUnreleased(context.Background(), GenerateOptions{})

		require.NoError(t, err)
		content := string(result.Content)
		assert.NotContains(t, content, "stale entry")
		assert.Contains(t, content, "### Added\n- add export command")
		assert.Contains(t, content, "## [1.0.0] - 2024-01-01\n\n### Added\n- initial\n")
	})
}

func TestNextVersion(t *testing.T) {
	t.Run("Success - Patch bump keeps the v prefix", func(t *testing.T) {
		mockGit := new(MockGitService)
		mockGit.On("GetLastTag", mock.Anything).Return("v1.2.3", nil)

		service := NewChangelogService(mockGit)

		version, err := service.NextVersion(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "v1.2.4", version)
	})

	t.Run("Success - Patch bump without a v prefix", func(t *testing.T) {
		mockGit := new(MockGitService)
		mockGit.On("GetLastTag", mock.Anything).Return("2.0.9", nil)

		service := NewChangelogService(mockGit)

		version, err := service.NextVersion(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "2.0.10", version)
	})

	t.Run("Success - Untagged repository starts at 0.1.0", func(t *testing.T) {
		mockGit := new(MockGitService)
		mockGit.On("GetLastTag", mock.Anything).Return("", nil)

		service := NewChangelogService(mockGit)

		version, err := service.NextVersion(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "0.1.0", version)
	})

	t.Run("Error - Tag that is not semver", func(t *testing.T) {
		mockGit := new(MockGitService)
		mockGit.On("GetLastTag", mock.Anything).Return("release-candidate", nil)

		service := NewChangelogService(mockGit)

		_, err := service.NextVersion(context.Background())

		assert.ErrorIs(t, err, domainErrors.ErrInvalidVersion)
	})
}

func TestCategorizeByConvention(t *testing.T) {
	t.Run("Success - Conventional types map onto the taxonomy", func(t *testing.T) {
		commits := []models.Commit{
			{Hash: "a1", Message: "feat(cli): add export command"},
			{Hash: "b2", Message: "fix: crash on empty input"},
			{Hash: "c3", Message: "revert: remove experimental cache"},
			{Hash: "d4", Message: "refactor: split parser state machine"},
			{Hash: "e5", Message: "plain subject without a type"},
		}

		changes := categorizeByConvention(commits)

		require.Len(t, changes[changelog.Added], 1)
		assert.Equal(t, "add export command", changes[changelog.Added][0].Description)
		assert.Equal(t, []string{"a1"}, changes[changelog.Added][0].Commits)

		require.Len(t, changes[changelog.Fixed], 1)
		assert.Equal(t, "crash on empty input", changes[changelog.Fixed][0].Description)

		require.Len(t, changes[changelog.Removed], 1)
		assert.Equal(t, "remove experimental cache", changes[changelog.Removed][0].Description)

		require.Len(t, changes[changelog.Changed], 2)
		assert.Equal(t, "split parser state machine", changes[changelog.Changed][0].Description)
		assert.Equal(t, "plain subject without a type", changes[changelog.Changed][1].Description)
	})
}

func TestCommitChangelog(t *testing.T) {
	t.Run("Success - Stages and commits the file", func(t *testing.T) {
		mockGit := new(MockGitService)
		mockGit.On("AddFileToStaging", mock.Anything, "CHANGELOG.md").Return(nil)
		mockGit.On("HasStagedChanges", mock.Anything).Return(true)
		mockGit.On("CreateCommit", mock.Anything, "chore: update changelog for 1.1.0").Return(nil)

		service := NewChangelogService(mockGit)

		err := service.CommitChangelog(context.Background(), "CHANGELOG.md", "1.1.0")

		require.NoError(t, err)
		mockGit.AssertExpectations(t)
	})

	t.Run("Error - Nothing staged after adding", func(t *testing.T) {
		mockGit := new(MockGitService)
		mockGit.On("AddFileToStaging", mock.Anything, "CHANGELOG.md").Return(nil)
		mockGit.On("HasStagedChanges", mock.Anything).Return(false)

		service := NewChangelogService(mockGit)

		err := service.CommitChangelog(context.Background(), "CHANGELOG.md", "1.1.0")

		assert.ErrorIs(t, err, domainErrors.ErrNoChanges)
	})
}

func TestPublishRelease(t *testing.T) {
	t.Run("Success - Section body goes out as the release notes", func(t *testing.T) {
		cfg := testConfig(t)
		existing := "# Changelog\n\n## [1.1.0] - 2024-02-01\n\n### Fixed\n- the bug\n"
		require.NoError(t, os.WriteFile(cfg.ChangelogPath, []byte(existing), 0644))

		mockPublisher := new(MockPublisher)
		mockPublisher.On("PublishRelease", mock.Anything, "v1.1.0", "v1.1.0",
			"## [1.1.0] - 2024-02-01\n\n### Fixed\n- the bug", false).
			Return("https://example.com/releases/v1.1.0", nil)

		service := NewChangelogService(new(MockGitService), WithConfig(cfg), WithPublisher(mockPublisher))

		url, err := service.PublishRelease(context.Background(), "v1.1.0", false)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/releases/v1.1.0", url)
		mockPublisher.AssertExpectations(t)
	})

	t.Run("Error - No publisher configured", func(t *testing.T) {
		service := NewChangelogService(new(MockGitService))

		_, err := service.PublishRelease(context.Background(), "v1.1.0", false)

		assert.ErrorIs(t, err, domainErrors.ErrMissingToken)
	})

	t.Run("Error - Version missing from the changelog", func(t *testing.T) {
		cfg := testConfig(t)
		require.NoError(t, os.WriteFile(cfg.ChangelogPath, []byte("# Changelog\n"), 0644))

		service := NewChangelogService(new(MockGitService), WithConfig(cfg), WithPublisher(new(MockPublisher)))

		_, err := service.PublishRelease(context.Background(), "v9.9.9", false)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}
