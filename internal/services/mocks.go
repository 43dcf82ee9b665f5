package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tomasalvarez/cronista/internal/changelog"
	"github.com/tomasalvarez/cronista/internal/models"
)

type (
	MockGitService struct {
		mock.Mock
	}

	MockCategorizer struct {
		mock.Mock
	}

	MockPublisher struct {
		mock.Mock
	}
)

func (m *MockGitService) GetLastTag(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitService) GetTagDate(ctx context.Context, tag string) (time.Time, error) {
	args := m.Called(ctx, tag)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockGitService) GetCommitsBetween(ctx context.Context, from, to string) ([]models.Commit, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]models.Commit), args.Error(1)
}

func (m *MockGitService) GetRepoInfo(ctx context.Context) (models.RepoInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.RepoInfo), args.Error(1)
}

func (m *MockGitService) AddFileToStaging(ctx context.Context, file string) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockGitService) HasStagedChanges(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockGitService) CreateCommit(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockCategorizer) Categorize(ctx context.Context, commits []models.Commit) (changelog.ChangeSet, error) {
	args := m.Called(ctx, commits)
	return args.Get(0).(changelog.ChangeSet), args.Error(1)
}

func (m *MockPublisher) PublishRelease(ctx context.Context, tag, name, body string, draft bool) (string, error) {
	args := m.Called(ctx, tag, name, body, draft)
	return args.String(0), args.Error(1)
}
