package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/tomasalvarez/cronista/internal/errors"
	"github.com/tomasalvarez/cronista/internal/models"
	"github.com/tomasalvarez/cronista/internal/regex"
)

type GitService struct{}

func NewGitService() *GitService {
	return &GitService{}
}

// GetLastTag returns the most recent reachable tag, or "" when the
// repository has no tags yet.
func (s *GitService) GetLastTag(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "describe", "--tags", "--abbrev=0")
	output, err := cmd.Output()
	if err != nil {
		// no tags found
		return "", nil
	}
	return strings.TrimSpace(string(output)), nil
}

// GetCommitsBetween lists the commits in from..to, newest first. An empty
// from means the whole history up to to.
func (s *GitService) GetCommitsBetween(ctx context.Context, from, to string) ([]models.Commit, error) {
	rangeSpec := to
	if from != "" {
		rangeSpec = from + ".." + to
	}

	cmd := exec.CommandContext(ctx, "git", "log", rangeSpec, "--pretty=format:%H|%s", "--no-merges")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrGetCommits, err)
	}

	if len(output) == 0 {
		return []models.Commit{}, nil
	}

	var commits []models.Commit
	for _, line := range strings.Split(string(output), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 2)
		if len(parts) == 2 {
			commits = append(commits, models.Commit{Hash: parts[0], Message: parts[1]})
		}
	}
	return commits, nil
}

// GetTagDate returns the commit date of a tag as a UTC calendar date.
func (s *GitService) GetTagDate(ctx context.Context, tag string) (time.Time, error) {
	cmd := exec.CommandContext(ctx, "git", "log", "-1", "--format=%aI", tag)
	output, err := cmd.Output()
	if err != nil {
		return time.Time{}, fmt.Errorf("error getting tag date: %w", err)
	}

	dateStr := strings.TrimSpace(string(output))
	t, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing tag date %q: %w", dateStr, err)
	}
	return t.UTC(), nil
}

// GetRepoInfo derives owner, name and provider from the origin remote URL.
func (s *GitService) GetRepoInfo(ctx context.Context) (models.RepoInfo, error) {
	cmd := exec.CommandContext(ctx, "git", "remote", "get-url", "origin")
	output, err := cmd.Output()
	if err != nil {
		return models.RepoInfo{}, fmt.Errorf("%w: %v", errors.ErrGetRepoURL, err)
	}

	return ParseRepoURL(strings.TrimSpace(string(output)))
}

// HasStagedChanges checks if there are changes in the staging area
func (s *GitService) HasStagedChanges(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, "git", "diff", "--cached", "--quiet")
	err := cmd.Run()

	// exit status 1 means the staging area is not empty
	return err != nil && cmd.ProcessState.ExitCode() == 1
}

func (s *GitService) AddFileToStaging(ctx context.Context, file string) error {
	cmd := exec.CommandContext(ctx, "git", "add", "--", file)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w [%s]: %v: %s", errors.ErrAddFile, file, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func (s *GitService) CreateCommit(ctx context.Context, message string) error {
	if !s.HasStagedChanges(ctx) {
		return errors.ErrNoChanges
	}

	cmd := exec.CommandContext(ctx, "git", "commit", "-m", message)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrCreateCommit, err)
	}
	return nil
}

// ParseRepoURL extracts repository info from an SSH or HTTPS remote URL.
func ParseRepoURL(url string) (models.RepoInfo, error) {
	var matches []string
	if regex.SSHRepo.MatchString(url) {
		matches = regex.SSHRepo.FindStringSubmatch(url)
	} else if regex.HTTPSRepo.MatchString(url) {
		matches = regex.HTTPSRepo.FindStringSubmatch(url)
	}

	if len(matches) < 4 {
		return models.RepoInfo{}, fmt.Errorf("%w [%s]", errors.ErrExtractRepoInfo, url)
	}

	return models.RepoInfo{
		Host:     matches[1],
		Owner:    matches[2],
		Name:     strings.TrimSuffix(matches[3], ".git"),
		Provider: detectProvider(matches[1]),
	}, nil
}

func detectProvider(host string) string {
	if strings.Contains(host, "github") {
		return "github"
	}
	if strings.Contains(host, "gitlab") {
		return "gitlab"
	}
	return "unknown"
}
