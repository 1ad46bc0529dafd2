package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mfranke/numguess/internal/dependencies/random"
	"github.com/mfranke/numguess/internal/model"
	"github.com/mfranke/numguess/internal/storage"
	"github.com/mfranke/numguess/internal/store"
)

// Feedback categorises a result message for presentation
type Feedback string

// Feedback categories
const (
	FeedbackInfo    Feedback = "info"
	FeedbackError   Feedback = "error"
	FeedbackHint    Feedback = "hint"
	FeedbackSuccess Feedback = "success"
)

// maxImageIndex is the last numbered game illustration; the selector
// saturates here rather than wrapping.
const maxImageIndex = 12

// Result is the outcome of a guess or reset, carrying everything the
// presentation layer needs for both full-page and fragment responses.
type Result struct {
	Message  string
	Category Feedback
	// Attempts is the attempt counter after the action
	Attempts int
	// Won is true when this action completed a round
	Won bool
	// WonTries is the attempt count of the just-won round (valid when Won)
	WonTries int
	// Guess echoes the submitted input; cleared after a win or reset
	Guess string
}

// Service runs the guessing game state machine on top of the session
// storage backend, recording completed rounds in the score store.
type Service struct {
	storage storage.Storage
	scores  *store.Store
	random  random.Random
	logger  *slog.Logger
}

// New creates a new game Service
func New(sessions storage.Storage, scores *store.Store, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: sessions,
		scores:  scores,
		random:  rnd,
		logger:  logger,
	}
}

// State returns the session's game state, creating a fresh round if
// none exists yet.
func (s *Service) State(ctx context.Context, token string) (*model.GameState, error) {
	state, err := s.storage.GetGameState(ctx, token)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, model.ErrGameStateNotFound) {
		return nil, err
	}

	state = &model.GameState{
		Target:   s.newTarget(),
		Attempts: 0,
	}
	if err := s.storage.SaveGameState(ctx, token, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Reset starts a new round regardless of prior state
func (s *Service) Reset(ctx context.Context, token string) (*Result, error) {
	state := &model.GameState{
		Target:   s.newTarget(),
		Attempts: 0,
	}
	if err := s.storage.SaveGameState(ctx, token, state); err != nil {
		return nil, err
	}

	return &Result{
		Message:  "New round started! A fresh number is ready for you.",
		Category: FeedbackInfo,
		Attempts: 0,
	}, nil
}

// Guess evaluates one guess for the session. Invalid input (blank,
// non-integer, out of range) never touches the attempt counter; a valid
// guess increments it before the comparison, so the winning guess
// counts too. A win records a score for the player and starts a new
// round.
func (s *Service) Guess(ctx context.Context, token string, player model.Authenticatable, raw string) (*Result, error) {
	state, err := s.State(ctx, token)
	if err != nil {
		return nil, err
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return &Result{
			Message:  "Please enter a number before guessing.",
			Category: FeedbackError,
			Attempts: state.Attempts,
		}, nil
	}

	guess, err := strconv.Atoi(raw)
	if err != nil {
		return &Result{
			Message:  "Invalid input. Please enter a whole number between 0 and 100.",
			Category: FeedbackError,
			Attempts: state.Attempts,
			Guess:    raw,
		}, nil
	}

	if !model.InRange(guess) {
		return &Result{
			Message:  "The number must be between 0 and 100.",
			Category: FeedbackError,
			Attempts: state.Attempts,
			Guess:    raw,
		}, nil
	}

	state.Attempts++

	switch {
	case guess < state.Target:
		if err := s.storage.SaveGameState(ctx, token, state); err != nil {
			return nil, err
		}
		return &Result{
			Message:  fmt.Sprintf("%d is too low. Try a higher number!", guess),
			Category: FeedbackHint,
			Attempts: state.Attempts,
			Guess:    raw,
		}, nil

	case guess > state.Target:
		if err := s.storage.SaveGameState(ctx, token, state); err != nil {
			return nil, err
		}
		return &Result{
			Message:  fmt.Sprintf("%d is too high. Try a lower number!", guess),
			Category: FeedbackHint,
			Attempts: state.Attempts,
			Guess:    raw,
		}, nil

	default:
		tries := state.Attempts
		if err := s.scores.RecordScore(ctx, player.UserID(), tries); err != nil {
			return nil, err
		}

		fresh := &model.GameState{
			Target:   s.newTarget(),
			Attempts: 0,
		}
		if err := s.storage.SaveGameState(ctx, token, fresh); err != nil {
			return nil, err
		}

		s.logger.Info("round won",
			slog.Uint64("user_id", uint64(player.UserID())),
			slog.Int("tries", tries),
		)

		return &Result{
			Message: fmt.Sprintf(
				"Hit! You found the secret number %d after %d attempts. A new number is already waiting for you!",
				guess, tries,
			),
			Category: FeedbackSuccess,
			Attempts: 0,
			Won:      true,
			WonTries: tries,
		}, nil
	}
}

// newTarget draws a target uniformly from [TargetMin, TargetMax]
func (s *Service) newTarget() int {
	return model.TargetMin + s.random.Intn(model.TargetMax-model.TargetMin+1)
}

// ImageIndex selects the numbered illustration for an unfinished round:
// asset 1 at zero attempts, saturating at the last asset.
func ImageIndex(attempts int) int {
	if attempts+1 > maxImageIndex {
		return maxImageIndex
	}
	return attempts + 1
}

// ImageURL is the illustration for the current state. A won round always
// shows the fixed win asset, irrespective of attempts.
func ImageURL(attempts int, won bool) string {
	if won {
		return "/static/img/win.png"
	}
	return fmt.Sprintf("/static/img/round_%d.png", ImageIndex(attempts))
}
