package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shellist/backend/internal/domain"
	"github.com/shellist/backend/internal/infrastructure/logger"
)

type stubFollowRepo struct {
	edges   map[[2]string]bool
	created int
}

func newStubFollowRepo() *stubFollowRepo {
	return &stubFollowRepo{edges: map[[2]string]bool{}}
}

func (s *stubFollowRepo) Create(ctx context.Context, follow *domain.Follow) error {
	s.edges[[2]string{follow.FollowerID, follow.FollowingID}] = true
	s.created++
	return nil
}

func (s *stubFollowRepo) Delete(ctx context.Context, followerID, followingID string) error {
	delete(s.edges, [2]string{followerID, followingID})
	return nil
}

func (s *stubFollowRepo) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	return s.edges[[2]string{followerID, followingID}], nil
}

func (s *stubFollowRepo) GetFollowerIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	for edge := range s.edges {
		if edge[1] == userID {
			ids = append(ids, edge[0])
		}
	}
	return ids, nil
}

func (s *stubFollowRepo) GetFollowingIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	for edge := range s.edges {
		if edge[0] == userID {
			ids = append(ids, edge[1])
		}
	}
	return ids, nil
}

func (s *stubFollowRepo) CountFollowers(ctx context.Context, userID string) (int64, error) {
	ids, _ := s.GetFollowerIDs(ctx, userID)
	return int64(len(ids)), nil
}

func (s *stubFollowRepo) CountFollowing(ctx context.Context, userID string) (int64, error) {
	ids, _ := s.GetFollowingIDs(ctx, userID)
	return int64(len(ids)), nil
}

func newFollowService(repo *stubFollowRepo) *FollowService {
	return NewFollowService(FollowServiceConfig{Repository: repo, Logger: logger.NewNop()})
}

func TestFollowUser(t *testing.T) {
	repo := newStubFollowRepo()
	svc := newFollowService(repo)

	err := svc.FollowUser(context.Background(), "alice", "bob")

	assert.NoError(t, err)
	following, _ := svc.IsFollowing(context.Background(), "alice", "bob")
	assert.True(t, following)
}

func TestFollowUser_SelfFollowRejected(t *testing.T) {
	svc := newFollowService(newStubFollowRepo())

	err := svc.FollowUser(context.Background(), "alice", "alice")

	assert.ErrorIs(t, err, ErrFollowSelf)
}

func TestFollowUser_Idempotent(t *testing.T) {
	repo := newStubFollowRepo()
	svc := newFollowService(repo)
	ctx := context.Background()

	assert.NoError(t, svc.FollowUser(ctx, "alice", "bob"))
	assert.NoError(t, svc.FollowUser(ctx, "alice", "bob"))
	assert.Equal(t, 1, repo.created)
}

func TestUnfollowUser_NotFollowing(t *testing.T) {
	svc := newFollowService(newStubFollowRepo())

	err := svc.UnfollowUser(context.Background(), "alice", "bob")

	assert.ErrorIs(t, err, ErrFollowNotFound)
}

func TestGetFollowStats(t *testing.T) {
	repo := newStubFollowRepo()
	svc := newFollowService(repo)
	ctx := context.Background()

	assert.NoError(t, svc.FollowUser(ctx, "alice", "bob"))
	assert.NoError(t, svc.FollowUser(ctx, "carol", "bob"))
	assert.NoError(t, svc.FollowUser(ctx, "bob", "alice"))

	followers, following, err := svc.GetFollowStats(ctx, "bob")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), followers)
	assert.Equal(t, int64(1), following)
}
