package auth

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mfranke/numguess/internal/dependencies/clock"
	"github.com/mfranke/numguess/internal/model"
	"github.com/mfranke/numguess/internal/storage"
	"github.com/mfranke/numguess/internal/store"
)

// Errors
var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords; callers must not be able to tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// DefaultSecretKey is the fallback signing key. It is a known,
// non-secret placeholder; deployments must override it via SECRET_KEY.
const DefaultSecretKey = "change-me"

// Service handles registration, credential verification and session
// lifecycle. Sessions live in the storage backend; the cookie value a
// client holds is the session token plus an HMAC-SHA256 signature, so
// forged cookies are rejected before they reach storage.
type Service struct {
	users   *store.Store
	storage storage.Storage
	clock   clock.Clock

	secret     []byte
	sessionTTL time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SecretKey  string
	SessionTTL time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SecretKey:  DefaultSecretKey,
		SessionTTL: 7 * 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(users *store.Store, sessions storage.Storage, clk clock.Clock, cfg Config) *Service {
	if cfg.SecretKey == "" {
		cfg.SecretKey = DefaultSecretKey
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = DefaultConfig().SessionTTL
	}
	return &Service{
		users:      users,
		storage:    sessions,
		clock:      clk,
		secret:     []byte(cfg.SecretKey),
		sessionTTL: cfg.SessionTTL,
	}
}

// Register creates a new user account. The password is bcrypt-hashed
// before it is persisted; the plaintext never reaches the store. A
// duplicate username surfaces as model.ErrUsernameTaken with no partial
// row written.
func (s *Service) Register(ctx context.Context, username, password, firstName, lastName, email string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Verify checks a username/password pair against the stored hash.
// Comparison is delegated to bcrypt; plaintexts are never compared.
func (s *Service) Verify(ctx context.Context, username, password string) bool {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// Login authenticates a user and creates a session. The returned cookie
// value is the signed token to hand to the client.
func (s *Service) Login(ctx context.Context, username, password string) (*model.Session, string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	return s.createSession(ctx, user.ID)
}

// GetUser resolves a session cookie value to the authenticated user.
// Returns ErrInvalidSession for tampered, unknown or expired cookies.
func (s *Service) GetUser(ctx context.Context, cookieValue string) (*model.User, error) {
	session, err := s.validateSession(ctx, cookieValue)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, ErrInvalidSession
	}
	return user, nil
}

// Authenticate resolves a session cookie value to the authenticated
// user and their session in one lookup. Game state is keyed by the
// session's token.
func (s *Service) Authenticate(ctx context.Context, cookieValue string) (*model.User, *model.Session, error) {
	session, err := s.validateSession(ctx, cookieValue)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, ErrInvalidSession
	}
	return user, session, nil
}

// Logout removes a session and the game state it scopes. Unknown or
// invalid cookies are a no-op.
func (s *Service) Logout(ctx context.Context, cookieValue string) {
	token, err := s.parseCookie(cookieValue)
	if err != nil {
		return
	}
	_ = s.storage.DeleteSession(ctx, token)
	_ = s.storage.DeleteGameState(ctx, token)
}

// createSession creates and persists a new session for a user
func (s *Service) createSession(ctx context.Context, userID uint) (*model.Session, string, error) {
	token := generateToken()
	now := s.clock.Now()

	session := &model.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, "", err
	}

	return session, s.signToken(token), nil
}

// validateSession verifies the cookie signature, looks the session up
// and enforces expiry (deleting expired sessions as it goes).
func (s *Service) validateSession(ctx context.Context, cookieValue string) (*model.Session, error) {
	token, err := s.parseCookie(cookieValue)
	if err != nil {
		return nil, err
	}

	session, err := s.storage.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	if session.Expired(s.clock.Now()) {
		_ = s.storage.DeleteSession(ctx, token)
		_ = s.storage.DeleteGameState(ctx, token)
		return nil, ErrInvalidSession
	}

	return session, nil
}

// signToken produces the cookie value: token + "." + HMAC-SHA256(token)
func (s *Service) signToken(token string) string {
	return token + "." + s.signature(token)
}

// parseCookie splits and verifies a cookie value, returning the raw token
func (s *Service) parseCookie(cookieValue string) (string, error) {
	i := strings.LastIndexByte(cookieValue, '.')
	if i <= 0 {
		return "", ErrInvalidSession
	}
	token, sig := cookieValue[:i], cookieValue[i+1:]
	if !hmac.Equal([]byte(sig), []byte(s.signature(token))) {
		return "", ErrInvalidSession
	}
	return token, nil
}

func (s *Service) signature(token string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// generateToken generates a random opaque session token
func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}
