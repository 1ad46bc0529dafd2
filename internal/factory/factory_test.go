package factory

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfranke/numguess/internal/config"
)

func TestNewWiresComponents(t *testing.T) {
	app, err := New(Config{
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	defer func() { require.NoError(t, app.Close()) }()

	assert.NotNil(t, app.Store)
	assert.NotNil(t, app.Storage)
	assert.NotNil(t, app.AuthService)
	assert.NotNil(t, app.GameService)
}

func TestNewRejectsRedisWithoutConfig(t *testing.T) {
	_, err := New(Config{
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
		StorageType:  config.StorageTypeRedis,
	})
	require.Error(t, err)
}

func TestNewRejectsUnknownStorageType(t *testing.T) {
	_, err := New(Config{
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
		StorageType:  "bogus",
	})
	require.Error(t, err)
}

func TestTestAppFullFlow(t *testing.T) {
	app, err := NewTestApp(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	ctx := t.Context()

	user, err := app.AuthService.Register(ctx, "alice", "secret123", "Alice", "Smith", "alice@example.com")
	require.NoError(t, err)

	session, _, err := app.AuthService.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	// Force the round target, then win it on the first guess
	app.MockRandom.QueueIntn(42, 7)
	_, err = app.GameService.State(ctx, session.Token)
	require.NoError(t, err)

	result, err := app.GameService.Guess(ctx, session.Token, user, "42")
	require.NoError(t, err)
	assert.True(t, result.Won)
	assert.Equal(t, 1, result.WonTries)

	entries, err := app.Store.Scoreboard(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, 1, entries[0].Tries)
}
