package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mfranke/numguess/internal/dependencies/mocks"
	"github.com/mfranke/numguess/internal/services/auth"
	"github.com/mfranke/numguess/internal/storage/memory"
	"github.com/mfranke/numguess/internal/store"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked
// dependencies. dbPath should live in a test temp dir.
func NewTestApp(dbPath string) (*TestApp, error) {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	db, err := store.Open(dbPath, mockClock)
	if err != nil {
		return nil, err
	}

	sessions := memory.New()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(db, sessions, mockClock, mockRandom, auth.DefaultConfig(), logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}, nil
}
