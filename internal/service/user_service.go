package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"Members/internal/auth"
	dom "Members/internal/domain"
	"Members/internal/repo"
	"Members/internal/utils"

	"github.com/jackc/pgx/v5"
)

var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrUsernameTaken = errors.New("username already taken")

// storeTimeout bounds each credential store round trip.
const storeTimeout = 3 * time.Second

// UserService handles user auth logic.
type UserService struct {
	repo   repo.UserRepo
	hasher *auth.Hasher
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo, hasher *auth.Hasher) *UserService {
	return &UserService{repo: repo, hasher: hasher}
}

// ValidateCredentials checks username and password; returns the user if valid.
// An unknown username and a wrong password are indistinguishable to the
// caller: both come back as ErrInvalidCredentials.
func (s *UserService) ValidateCredentials(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	rctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	u, err := s.repo.GetByUsername(rctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	ok, err := s.hasher.Verify(ctx, password, u.PasswordHash)
	if err != nil {
		return dom.User{}, err
	}
	if !ok {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Register creates a new user with a hashed password. A taken username is
// reported as ErrUsernameTaken; any other store failure passes through.
func (s *UserService) Register(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return dom.User{}, err
	}
	rctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	u, err := s.repo.Create(rctx, username, hash)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrUsernameTaken
		}
		return dom.User{}, err
	}
	return u, nil
}
