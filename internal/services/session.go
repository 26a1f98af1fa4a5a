package services

import (
	"context"
	"errors"
	"time"

	"github.com/notehub/apiserver/internal/auth"
	"github.com/notehub/apiserver/internal/store"
	"github.com/notehub/apiserver/types"
)

// DefaultSessionTTL is the fixed session validity window.
const DefaultSessionTTL = 7 * 24 * time.Hour

// SessionRepository defines persistence operations for sessions.
type SessionRepository interface {
	Create(ctx context.Context, session types.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (types.Session, error)
	Delete(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context) (int, error)
}

// SessionService issues, validates, and revokes opaque session tokens.
//
// Sessions use a fixed expiry window: validity runs from issue time
// plus the TTL and is never extended by activity. Validation is a pure
// read, so the same token behaves identically on every code path.
type SessionService struct {
	repo SessionRepository
	ttl  time.Duration
	now  func() time.Time
}

func NewSessionService(repo SessionRepository, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{
		repo: repo,
		ttl:  ttl,
		now:  time.Now,
	}
}

// Issue creates a session for the user and returns the bearer token.
// The token is returned exactly once; only its digest is stored.
func (s *SessionService) Issue(ctx context.Context, userID int) (string, types.Session, error) {
	token, digest, err := auth.NewToken()
	if err != nil {
		return "", types.Session{}, err
	}

	issuedAt := s.now()
	session := types.Session{
		TokenHash: digest,
		UserID:    userID,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(s.ttl),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return "", types.Session{}, err
	}
	return token, session, nil
}

// Validate resolves a token to its user id. It returns
// ErrInvalidSession when the token is unknown or expired and never
// extends the expiry.
func (s *SessionService) Validate(ctx context.Context, token string) (int, error) {
	if token == "" {
		return 0, ErrInvalidSession
	}

	session, err := s.repo.GetByTokenHash(ctx, auth.TokenDigest(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrInvalidSession
		}
		return 0, err
	}
	if session.Expired(s.now()) {
		return 0, ErrInvalidSession
	}
	return session.UserID, nil
}

// Revoke removes a session. Revoking an unknown token is not an error.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repo.Delete(ctx, auth.TokenDigest(token))
}

// PurgeExpired deletes sessions past their expiry and returns the
// number removed.
func (s *SessionService) PurgeExpired(ctx context.Context) (int, error) {
	return s.repo.DeleteExpired(ctx)
}
