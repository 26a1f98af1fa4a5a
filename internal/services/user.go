package services

import (
	"context"
	"errors"
	"strings"

	"github.com/notehub/apiserver/internal/auth"
	"github.com/notehub/apiserver/internal/store"
	"github.com/notehub/apiserver/types"
)

// dummyPasswordHash is compared against when an email is unknown, so
// authentication failures cost the same on both paths.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
}

// UserService encapsulates identity use-cases: registration,
// authentication, and profile lookup.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// NormalizeEmail trims surrounding whitespace and lowercases an email
// address. The normalized form is the account uniqueness key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account. At most one registration per
// normalized email succeeds; a concurrent duplicate receives
// ErrEmailTaken from the unique index, never a second record.
func (s *UserService) Register(ctx context.Context, name, email, password string) (types.User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if name == "" {
		return types.User{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if email == "" {
		return types.User{}, &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if password == "" {
		return types.User{}, &ValidationError{Field: "password", Reason: "must not be empty"}
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return types.User{}, err
	}

	user, err := s.repo.Create(ctx, types.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return types.User{}, ErrEmailTaken
		}
		return types.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Authenticate verifies an email/password pair. Unknown email and
// wrong password return the same ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (types.User, error) {
	user, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_, _ = auth.CheckPassword(password, dummyPasswordHash)
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, err
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return types.User{}, err
	}
	if !ok {
		return types.User{}, ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return user, nil
}

// GetProfile returns the public profile for a user id. The credential
// hash never leaves this layer.
func (s *UserService) GetProfile(ctx context.Context, id int) (types.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}
