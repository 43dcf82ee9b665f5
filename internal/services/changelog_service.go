package services

import (
	"context"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/tomasalvarez/cronista/internal/ai"
	"github.com/tomasalvarez/cronista/internal/changelog"
	"github.com/tomasalvarez/cronista/internal/config"
	domainErrors "github.com/tomasalvarez/cronista/internal/errors"
	"github.com/tomasalvarez/cronista/internal/logger"
	"github.com/tomasalvarez/cronista/internal/models"
	"github.com/tomasalvarez/cronista/internal/regex"
	"golang.org/x/mod/semver"
)

// changelogGitService defines only the methods needed by ChangelogService.
type changelogGitService interface {
	GetLastTag(ctx context.Context) (string, error)
	GetTagDate(ctx context.Context, tag string) (time.Time, error)
	GetCommitsBetween(ctx context.Context, from, to string) ([]models.Commit, error)
	GetRepoInfo(ctx context.Context) (models.RepoInfo, error)
	AddFileToStaging(ctx context.Context, file string) error
	HasStagedChanges(ctx context.Context) bool
	CreateCommit(ctx context.Context, message string) error
}

// vcsPublisher is the release-publishing collaborator.
type vcsPublisher interface {
	PublishRelease(ctx context.Context, tag, name, body string, draft bool) (string, error)
}

type ChangelogService struct {
	git         changelogGitService
	categorizer ai.ChangeCategorizer
	publisher   vcsPublisher
	config      *config.Config
}

type Option func(*ChangelogService)

func WithCategorizer(c ai.ChangeCategorizer) Option {
	return func(s *ChangelogService) {
		s.categorizer = c
	}
}

func WithPublisher(p vcsPublisher) Option {
	return func(s *ChangelogService) {
		s.publisher = p
	}
}

func WithConfig(cfg *config.Config) Option {
	return func(s *ChangelogService) {
		s.config = cfg
	}
}

func NewChangelogService(gitSvc changelogGitService, opts ...Option) *ChangelogService {
	s := &ChangelogService{git: gitSvc}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateOptions controls one changelog generation run.
type GenerateOptions struct {
	Version string // release label; derived from the last tag when empty
	From    string // range start; defaults to the last tag
	To      string // range end; defaults to HEAD
	Date    *time.Time
	Path    string // changelog file; config default when empty
	RepoURL string // commit-link base; derived from origin when empty
	DryRun  bool   // render without writing; same path either way
}

// GenerateResult is what a generation run produced.
type GenerateResult struct {
	Version string
	Date    time.Time
	Path    string
	Content []byte // complete replacement document
	Commits int
	Written bool
}

// GenerateChangelog extracts the commit range, categorizes it and merges the
// resulting section into the changelog. With DryRun set the file is left
// alone and the rendered document is only returned, produced by the exact
// same path as a real write.
func (s *ChangelogService) GenerateChangelog(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	log := logger.FromContext(ctx)

	commits, err := s.collectCommits(ctx, opts.From, opts.To)
	if err != nil {
		return nil, err
	}

	version := opts.Version
	if version == "" {
		version, err = s.NextVersion(ctx)
		if err != nil {
			return nil, err
		}
		log.Info("derived next version from last tag", "version", version)
	}
	if !semver.IsValid("v" + strings.TrimPrefix(version, "v")) {
		log.Warn("version label is not semver, using it as-is", "version", version)
	}

	date := time.Now().UTC()
	if opts.Date != nil {
		date = opts.Date.UTC()
	} else if tagDate, err := s.git.GetTagDate(ctx, version); err == nil {
		// the version is already tagged: date the section from the tag
		date = tagDate
	}

	changes, err := s.categorize(ctx, commits)
	if err != nil {
		return nil, err
	}

	filePath := s.changelogPath(opts.Path)
	existing, err := readChangelog(filePath)
	if err != nil {
		return nil, err
	}

	content, err := changelog.Merge(existing, version, &date, changes, s.repoURL(ctx, opts.RepoURL))
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{
		Version: version,
		Date:    date,
		Path:    filePath,
		Content: content,
		Commits: len(commits),
	}

	if opts.DryRun {
		return result, nil
	}

	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return nil, domainErrors.ErrWriteChangelog.WithError(err).WithContext("path", filePath)
	}
	result.Written = true

	log.Info("changelog updated",
		"file", filePath,
		"version", version,
		"commits", len(commits))

	return result, nil
}

// RefreshUnreleased rebuilds only the Unreleased section from the commits
// made since the last tag. A missing changelog file gets bootstrapped with
// an empty skeleton first.
func (s *ChangelogService) RefreshUnreleased(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	log := logger.FromContext(ctx)

	commits, err := s.collectCommits(ctx, opts.From, opts.To)
	if err != nil {
		return nil, err
	}

	changes, err := s.categorize(ctx, commits)
	if err != nil {
		return nil, err
	}

	filePath := s.changelogPath(opts.Path)
	existing, err := readChangelog(filePath)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		existing = []byte(changelog.FormatEmptyDocument())
	}

	content := changelog.RefreshUnreleased(existing, changes, s.repoURL(ctx, opts.RepoURL))

	result := &GenerateResult{
		Version: changelog.UnreleasedLabel,
		Path:    filePath,
		Content: content,
		Commits: len(commits),
	}

	if opts.DryRun {
		return result, nil
	}

	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return nil, domainErrors.ErrWriteChangelog.WithError(err).WithContext("path", filePath)
	}
	result.Written = true

	log.Info("unreleased section refreshed",
		"file", filePath,
		"commits", len(commits))

	return result, nil
}

// NextVersion derives a patch-bumped label from the last tag, keeping its
// "v" prefix convention. Repositories without tags start at 0.1.0.
func (s *ChangelogService) NextVersion(ctx context.Context) (string, error) {
	lastTag, err := s.git.GetLastTag(ctx)
	if err != nil {
		return "", err
	}
	if lastTag == "" {
		return "0.1.0", nil
	}

	m := regex.SemVer.FindStringSubmatch(lastTag)
	if m == nil {
		return "", fmt.Errorf("%w: tag %q", domainErrors.ErrInvalidVersion, lastTag)
	}

	major, _ := strconv.Atoi(m[2])
	minor, _ := strconv.Atoi(m[3])
	patch, _ := strconv.Atoi(m[4])

	return fmt.Sprintf("%s%d.%d.%d", m[1], major, minor, patch+1), nil
}

// CommitChangelog stages the changelog file and commits it.
func (s *ChangelogService) CommitChangelog(ctx context.Context, filePath, version string) error {
	if err := s.git.AddFileToStaging(ctx, filePath); err != nil {
		return err
	}
	if !s.git.HasStagedChanges(ctx) {
		return domainErrors.ErrNoChanges
	}
	return s.git.CreateCommit(ctx, fmt.Sprintf("chore: update changelog for %s", version))
}

// PublishRelease pushes the version's changelog section to the VCS provider
// as the release body for its tag.
func (s *ChangelogService) PublishRelease(ctx context.Context, version string, draft bool) (string, error) {
	if s.publisher == nil {
		return "", domainErrors.ErrMissingToken
	}

	filePath := s.changelogPath("")
	raw, err := readChangelog(filePath)
	if err != nil {
		return "", err
	}
	if raw == nil {
		return "", domainErrors.ErrReadChangelog.WithContext("path", filePath)
	}

	block, ok := changelog.ExtractVersionBlock(raw, strings.TrimPrefix(version, "v"))
	if !ok {
		block, ok = changelog.ExtractVersionBlock(raw, version)
	}
	if !ok {
		return "", fmt.Errorf("version %s not found in %s", version, filePath)
	}

	return s.publisher.PublishRelease(ctx, version, version, block, draft)
}

func (s *ChangelogService) collectCommits(ctx context.Context, from, to string) ([]models.Commit, error) {
	log := logger.FromContext(ctx)

	if from == "" {
		lastTag, err := s.git.GetLastTag(ctx)
		if err != nil {
			return nil, err
		}
		from = lastTag
	}
	if to == "" {
		to = "HEAD"
	}

	commits, err := s.git.GetCommitsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	filtered := s.filterExcluded(commits)
	if len(filtered) < len(commits) {
		log.Debug("commits excluded by pattern",
			"total", len(commits),
			"excluded", len(commits)-len(filtered))
	}
	if len(filtered) == 0 {
		return nil, domainErrors.ErrNoCommits.WithContext("range", from+".."+to)
	}

	return filtered, nil
}

func (s *ChangelogService) categorize(ctx context.Context, commits []models.Commit) (changelog.ChangeSet, error) {
	if s.categorizer == nil {
		logger.FromContext(ctx).Info("no AI provider configured, categorizing by commit convention")
		return categorizeByConvention(commits), nil
	}
	return s.categorizer.Categorize(ctx, commits)
}

// filterExcluded drops commits whose subject matches an exclude pattern,
// either as a substring or as a glob.
func (s *ChangelogService) filterExcluded(commits []models.Commit) []models.Commit {
	if s.config == nil || len(s.config.ExcludePatterns) == 0 {
		return commits
	}

	kept := make([]models.Commit, 0, len(commits))
	for _, commit := range commits {
		if !matchesAny(commit.Subject(), s.config.ExcludePatterns) {
			kept = append(kept, commit)
		}
	}
	return kept
}

func matchesAny(subject string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(subject, pattern) {
			return true
		}
		if ok, err := path.Match(pattern, subject); err == nil && ok {
			return true
		}
	}
	return false
}

// categorizeByConvention is the offline fallback used when no AI provider is
// configured: conventional-commit types map onto the changelog taxonomy.
func categorizeByConvention(commits []models.Commit) changelog.ChangeSet {
	changes := changelog.ChangeSet{}

	for _, commit := range commits {
		subject := commit.Subject()
		category := changelog.Changed
		description := subject

		if m := regex.ConventionalCommit.FindStringSubmatch(subject); m != nil {
			description = strings.TrimSpace(m[5])
			switch m[1] {
			case "feat":
				category = changelog.Added
			case "fix":
				category = changelog.Fixed
			case "revert":
				category = changelog.Removed
			}
		}

		changes[category] = append(changes[category], changelog.Change{
			Description: description,
			Commits:     []string{commit.Hash},
		})
	}

	return changes
}

func (s *ChangelogService) changelogPath(override string) string {
	if override != "" {
		return override
	}
	if s.config != nil && s.config.ChangelogPath != "" {
		return s.config.ChangelogPath
	}
	return "CHANGELOG.md"
}

// repoURL resolves the base URL used for commit links: explicit override
// first, then config, then the origin remote. An empty result just disables
// link rendering.
func (s *ChangelogService) repoURL(ctx context.Context, override string) string {
	if override != "" {
		return override
	}
	if s.config != nil && s.config.RepoURL != "" {
		return s.config.RepoURL
	}

	info, err := s.git.GetRepoInfo(ctx)
	if err != nil {
		logger.FromContext(ctx).Debug("could not resolve repo URL, skipping commit links", "error", err)
		return ""
	}
	return info.URL()
}

// readChangelog reads the existing document, mapping absence to nil: a
// missing file is a valid state, not an error.
func readChangelog(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, domainErrors.ErrReadChangelog.WithError(err).WithContext("path", filePath)
	}
	return data, nil
}
