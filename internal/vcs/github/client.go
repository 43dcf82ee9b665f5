package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v80/github"
	"github.com/tomasalvarez/cronista/internal/logger"
	"golang.org/x/oauth2"
)

// ReleasesService is a minimal interface for testing purposes
type ReleasesService interface {
	CreateRelease(ctx context.Context, owner, repo string, release *github.RepositoryRelease) (*github.RepositoryRelease, *github.Response, error)
	GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*github.RepositoryRelease, *github.Response, error)
	EditRelease(ctx context.Context, owner, repo string, id int64, release *github.RepositoryRelease) (*github.RepositoryRelease, *github.Response, error)
}

// Client publishes changelog sections as GitHub releases.
type Client struct {
	releases ReleasesService
	owner    string
	repo     string
}

func NewClient(owner, repo, token string) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	return &Client{
		releases: github.NewClient(httpClient).Repositories,
		owner:    owner,
		repo:     repo,
	}
}

// PublishRelease creates a release for the tag, or updates its body when one
// already exists. Returns the release page URL.
func (c *Client) PublishRelease(ctx context.Context, tag, name, body string, draft bool) (string, error) {
	log := logger.FromContext(ctx)

	existing, resp, err := c.releases.GetReleaseByTag(ctx, c.owner, c.repo, tag)
	if err == nil && existing != nil {
		log.Debug("release exists, updating body", "tag", tag)

		existing.Body = github.Ptr(body)
		updated, _, err := c.releases.EditRelease(ctx, c.owner, c.repo, existing.GetID(), existing)
		if err != nil {
			return "", fmt.Errorf("error updating release %s: %w", tag, err)
		}
		return updated.GetHTMLURL(), nil
	}

	if resp != nil && resp.StatusCode != http.StatusNotFound {
		return "", fmt.Errorf("error looking up release %s: %w", tag, err)
	}

	log.Debug("creating release", "tag", tag, "draft", draft)

	created, _, err := c.releases.CreateRelease(ctx, c.owner, c.repo, &github.RepositoryRelease{
		TagName: github.Ptr(tag),
		Name:    github.Ptr(name),
		Body:    github.Ptr(body),
		Draft:   github.Ptr(draft),
	})
	if err != nil {
		return "", fmt.Errorf("error creating release %s: %w", tag, err)
	}
	return created.GetHTMLURL(), nil
}
