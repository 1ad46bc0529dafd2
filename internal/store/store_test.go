package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mfranke/numguess/internal/dependencies/mocks"
	"github.com/mfranke/numguess/internal/model"
)

type StoreSuite struct {
	suite.Suite
	store *Store
	clock *mocks.MockClock
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	var err error
	s.store, err = Open(filepath.Join(s.T().TempDir(), "test.db"), s.clock)
	s.Require().NoError(err)

	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	_ = s.store.Close()
}

func (s *StoreSuite) createUser(username string) *model.User {
	user := &model.User{
		Username:     username,
		PasswordHash: "hash",
		FirstName:    "First",
		LastName:     "Last",
		Email:        username + "@example.com",
	}
	s.Require().NoError(s.store.CreateUser(s.ctx, user))
	return user
}

// User tests

func (s *StoreSuite) TestCreateAndGetUser() {
	created := s.createUser("alice")
	s.NotZero(created.ID)

	byID, err := s.store.GetUserByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("alice", byID.Username)

	byName, err := s.store.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(created.ID, byName.ID)
}

func (s *StoreSuite) TestGetUnknownUser() {
	_, err := s.store.GetUserByID(s.ctx, 999)
	s.Require().ErrorIs(err, model.ErrUserNotFound)

	_, err = s.store.GetUserByUsername(s.ctx, "nobody")
	s.Require().ErrorIs(err, model.ErrUserNotFound)
}

func (s *StoreSuite) TestDuplicateUsernameLeavesSingleRow() {
	s.createUser("alice")

	dup := &model.User{
		Username:     "alice",
		PasswordHash: "other",
		FirstName:    "Other",
		LastName:     "Person",
		Email:        "other@example.com",
	}
	err := s.store.CreateUser(s.ctx, dup)
	s.Require().ErrorIs(err, model.ErrUsernameTaken)

	var count int64
	s.Require().NoError(s.store.db.Model(&model.User{}).Where("username = ?", "alice").Count(&count).Error)
	s.Equal(int64(1), count)

	// The original row is untouched
	user, err := s.store.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("hash", user.PasswordHash)
}

func (s *StoreSuite) TestDeleteUserCascadesScores() {
	user := s.createUser("alice")
	s.Require().NoError(s.store.RecordScore(s.ctx, user.ID, 3))

	s.Require().NoError(s.store.DeleteUser(s.ctx, user.ID))

	entries, err := s.store.Scoreboard(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(entries)
}

// Score tests

func (s *StoreSuite) TestRecordScoreValidation() {
	user := s.createUser("alice")

	err := s.store.RecordScore(s.ctx, 0, 3)
	s.Require().ErrorIs(err, model.ErrInvalidScore)

	err = s.store.RecordScore(s.ctx, user.ID, -1)
	s.Require().ErrorIs(err, model.ErrInvalidScore)
}

func (s *StoreSuite) TestScoreboardEmptyWithoutScores() {
	s.createUser("alice")

	entries, err := s.store.Scoreboard(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *StoreSuite) TestScoreboardUsesPersonalBest() {
	user := s.createUser("alice")

	for _, tries := range []int{5, 2, 8} {
		s.Require().NoError(s.store.RecordScore(s.ctx, user.ID, tries))
		s.clock.Advance(time.Minute)
	}

	entries, err := s.store.Scoreboard(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(user.ID, entries[0].UserID)
	s.Equal(2, entries[0].Tries)
}

func (s *StoreSuite) TestScoreboardTieBreaksByEarliestScore() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")

	// Both reach 3 tries; bob got there first
	s.Require().NoError(s.store.RecordScore(s.ctx, bob.ID, 3))
	firstAt := s.clock.Now()
	s.clock.Advance(time.Hour)
	s.Require().NoError(s.store.RecordScore(s.ctx, alice.ID, 3))

	// A later equal score for bob must not displace his earlier one
	s.clock.Advance(time.Hour)
	s.Require().NoError(s.store.RecordScore(s.ctx, bob.ID, 3))

	entries, err := s.store.Scoreboard(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("bob", entries[0].Username)
	s.WithinDuration(firstAt, entries[0].CreatedAt, time.Second)
	s.Equal("alice", entries[1].Username)
}

func (s *StoreSuite) TestScoreboardOrder() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")
	carol := s.createUser("carol")

	s.Require().NoError(s.store.RecordScore(s.ctx, alice.ID, 5))
	s.clock.Advance(time.Minute)
	s.Require().NoError(s.store.RecordScore(s.ctx, bob.ID, 2))
	s.clock.Advance(time.Minute)
	s.Require().NoError(s.store.RecordScore(s.ctx, carol.ID, 5))

	entries, err := s.store.Scoreboard(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal("bob", entries[0].Username)
	// alice and carol both have 5 tries; alice scored earlier
	s.Equal("alice", entries[1].Username)
	s.Equal("carol", entries[2].Username)
}

func (s *StoreSuite) TestScoreboardLimit() {
	for i, username := range []string{"alice", "bob", "carol"} {
		user := s.createUser(username)
		s.Require().NoError(s.store.RecordScore(s.ctx, user.ID, i+1))
		s.clock.Advance(time.Minute)
	}

	entries, err := s.store.Scoreboard(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("alice", entries[0].Username)
	s.Equal("bob", entries[1].Username)
}
