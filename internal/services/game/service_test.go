package game

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mfranke/numguess/internal/dependencies/mocks"
	"github.com/mfranke/numguess/internal/model"
	"github.com/mfranke/numguess/internal/storage"
	"github.com/mfranke/numguess/internal/storage/memory"
	"github.com/mfranke/numguess/internal/store"
	"github.com/mfranke/numguess/internal/testutil"
)

const testToken = "sess_test"

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	scores  *store.Store
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
	user    *model.User
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	var err error
	s.scores, err = store.Open(filepath.Join(s.T().TempDir(), "test.db"), clk)
	s.Require().NoError(err)

	s.storage = memory.New()
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.scores, s.random, testutil.NopLogger())
	s.ctx = context.Background()

	s.user = &model.User{
		Username:     "alice",
		PasswordHash: "x",
		FirstName:    "Alice",
		LastName:     "Smith",
		Email:        "alice@example.com",
	}
	s.Require().NoError(s.scores.CreateUser(s.ctx, s.user))
}

func (s *ServiceSuite) TearDownTest() {
	_ = s.scores.Close()
}

// setState pins the round so guesses are deterministic
func (s *ServiceSuite) setState(target, attempts int) {
	state := &model.GameState{Target: target, Attempts: attempts}
	s.Require().NoError(s.storage.SaveGameState(s.ctx, testToken, state))
}

func (s *ServiceSuite) state() *model.GameState {
	state, err := s.storage.GetGameState(s.ctx, testToken)
	s.Require().NoError(err)
	return state
}

// State tests

func (s *ServiceSuite) TestStateCreatesFreshRound() {
	s.random.QueueIntn(42)

	state, err := s.service.State(s.ctx, testToken)
	s.Require().NoError(err)
	s.Equal(42, state.Target)
	s.Equal(0, state.Attempts)
}

func (s *ServiceSuite) TestStateReturnsExistingRound() {
	s.setState(7, 3)

	state, err := s.service.State(s.ctx, testToken)
	s.Require().NoError(err)
	s.Equal(7, state.Target)
	s.Equal(3, state.Attempts)
}

func (s *ServiceSuite) TestStatePropagatesStorageFailure() {
	failing := &failingStorage{Storage: s.storage, err: errors.New("redis: connection refused")}
	service := New(failing, s.scores, s.random, testutil.NopLogger())

	_, err := service.State(s.ctx, testToken)
	s.Require().Error(err)
	s.ErrorContains(err, "redis: connection refused")

	// A transient read failure must not replace the stored round
	_, err = s.storage.GetGameState(s.ctx, testToken)
	s.ErrorIs(err, model.ErrGameStateNotFound)
}

// failingStorage wraps a working backend but fails every game state read
type failingStorage struct {
	storage.Storage
	err error
}

func (f *failingStorage) GetGameState(ctx context.Context, token string) (*model.GameState, error) {
	return nil, f.err
}

// Guess validation tests

func (s *ServiceSuite) TestGuessBlank() {
	s.setState(42, 2)

	result, err := s.service.Guess(s.ctx, testToken, s.user, "   ")
	s.Require().NoError(err)
	s.Equal(FeedbackError, result.Category)
	s.Equal("Please enter a number before guessing.", result.Message)
	s.Equal(2, result.Attempts)
	s.Empty(result.Guess)
	s.Equal(2, s.state().Attempts)
}

func (s *ServiceSuite) TestGuessNonInteger() {
	s.setState(42, 2)

	result, err := s.service.Guess(s.ctx, testToken, s.user, "abc")
	s.Require().NoError(err)
	s.Equal(FeedbackError, result.Category)
	s.Equal("Invalid input. Please enter a whole number between 0 and 100.", result.Message)
	s.Equal(2, result.Attempts)
	s.Equal("abc", result.Guess)
	s.Equal(2, s.state().Attempts)
}

func (s *ServiceSuite) TestGuessOutOfRange() {
	s.setState(42, 2)

	for _, raw := range []string{"-1", "101", "1000"} {
		result, err := s.service.Guess(s.ctx, testToken, s.user, raw)
		s.Require().NoError(err)
		s.Equal(FeedbackError, result.Category)
		s.Equal("The number must be between 0 and 100.", result.Message)
		s.Equal(2, s.state().Attempts)
	}
}

func (s *ServiceSuite) TestBoundaryGuessesAreValid() {
	s.setState(50, 0)

	result, err := s.service.Guess(s.ctx, testToken, s.user, "0")
	s.Require().NoError(err)
	s.Equal(FeedbackHint, result.Category)
	s.Equal(1, result.Attempts)

	result, err = s.service.Guess(s.ctx, testToken, s.user, "100")
	s.Require().NoError(err)
	s.Equal(FeedbackHint, result.Category)
	s.Equal(2, result.Attempts)
}

// Hint tests

func (s *ServiceSuite) TestGuessTooLow() {
	s.setState(42, 0)

	result, err := s.service.Guess(s.ctx, testToken, s.user, "10")
	s.Require().NoError(err)
	s.Equal(FeedbackHint, result.Category)
	s.Equal("10 is too low. Try a higher number!", result.Message)
	s.Equal(1, result.Attempts)
	s.Equal(1, s.state().Attempts)
}

func (s *ServiceSuite) TestGuessTooHigh() {
	s.setState(42, 0)

	result, err := s.service.Guess(s.ctx, testToken, s.user, "80")
	s.Require().NoError(err)
	s.Equal(FeedbackHint, result.Category)
	s.Equal("80 is too high. Try a lower number!", result.Message)
	s.Equal(1, result.Attempts)
}

// Win tests

func (s *ServiceSuite) TestWinningGuessCountsItself() {
	s.setState(42, 2)
	s.random.QueueIntn(7)

	result, err := s.service.Guess(s.ctx, testToken, s.user, "42")
	s.Require().NoError(err)
	s.True(result.Won)
	s.Equal(FeedbackSuccess, result.Category)
	s.Equal(3, result.WonTries)
	s.Contains(result.Message, "after 3 attempts")
}

func (s *ServiceSuite) TestWinRecordsScore() {
	s.setState(42, 0)
	s.random.QueueIntn(7)

	_, err := s.service.Guess(s.ctx, testToken, s.user, "42")
	s.Require().NoError(err)

	entries, err := s.scores.Scoreboard(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(s.user.ID, entries[0].UserID)
	s.Equal(1, entries[0].Tries)
}

func (s *ServiceSuite) TestWinStartsFreshRound() {
	s.setState(42, 4)
	s.random.QueueIntn(77)

	result, err := s.service.Guess(s.ctx, testToken, s.user, "42")
	s.Require().NoError(err)
	s.Equal(0, result.Attempts)
	s.Empty(result.Guess)

	state := s.state()
	s.Equal(77, state.Target)
	s.Equal(0, state.Attempts)
}

// Reset tests

func (s *ServiceSuite) TestResetReplacesRound() {
	s.setState(42, 4)
	s.random.QueueIntn(13)

	result, err := s.service.Reset(s.ctx, testToken)
	s.Require().NoError(err)
	s.Equal(FeedbackInfo, result.Category)
	s.Equal(0, result.Attempts)

	state := s.state()
	s.Equal(13, state.Target)
	s.Equal(0, state.Attempts)
}

// Image selection tests

func TestImageIndex(t *testing.T) {
	tests := []struct {
		attempts int
		want     int
	}{
		{0, 1},
		{1, 2},
		{10, 11},
		{11, 12},
		{12, 12},
		{20, 12},
		{100, 12},
	}

	for _, tt := range tests {
		if got := ImageIndex(tt.attempts); got != tt.want {
			t.Errorf("ImageIndex(%d) = %d, want %d", tt.attempts, got, tt.want)
		}
	}
}

func TestImageURL(t *testing.T) {
	if got := ImageURL(0, false); got != "/static/img/round_1.png" {
		t.Errorf("ImageURL(0, false) = %q", got)
	}
	if got := ImageURL(50, false); got != "/static/img/round_12.png" {
		t.Errorf("ImageURL(50, false) = %q", got)
	}
	// The win asset is fixed regardless of attempts
	if got := ImageURL(50, true); got != "/static/img/win.png" {
		t.Errorf("ImageURL(50, true) = %q", got)
	}
}
