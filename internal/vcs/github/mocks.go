package github

import (
	"context"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type MockReleasesService struct {
	mock.Mock
}

func (m *MockReleasesService) CreateRelease(ctx context.Context, owner, repo string, release *github.RepositoryRelease) (*github.RepositoryRelease, *github.Response, error) {
	args := m.Called(ctx, owner, repo, release)
	return args.Get(0).(*github.RepositoryRelease), args.Get(1).(*github.Response), args.Error(2)
}

func (m *MockReleasesService) GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*github.RepositoryRelease, *github.Response, error) {
	args := m.Called(ctx, owner, repo, tag)
	return args.Get(0).(*github.RepositoryRelease), args.Get(1).(*github.Response), args.Error(2)
}

func (m *MockReleasesService) EditRelease(ctx context.Context, owner, repo string, id int64, release *github.RepositoryRelease) (*github.RepositoryRelease, *github.Response, error) {
	args := m.Called(ctx, owner, repo, id, release)
	return args.Get(0).(*github.RepositoryRelease), args.Get(1).(*github.Response), args.Error(2)
}
