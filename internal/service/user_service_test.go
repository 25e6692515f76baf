package service

import (
	"context"
	"errors"
	"testing"

	"Members/internal/auth"
	dom "Members/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// stubUserRepo keeps users in a map and mimics the pg error surface.
type stubUserRepo struct {
	users map[string]dom.User
	err   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]dom.User)}
}

func (r *stubUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	if r.err != nil {
		return dom.User{}, r.err
	}
	u, ok := r.users[username]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *stubUserRepo) Create(ctx context.Context, username, passwordHash string) (dom.User, error) {
	if r.err != nil {
		return dom.User{}, r.err
	}
	if _, ok := r.users[username]; ok {
		return dom.User{}, &pgconn.PgError{Code: "23505"}
	}
	u := dom.User{ID: int64(len(r.users) + 1), Username: username, PasswordHash: passwordHash}
	r.users[username] = u
	return u, nil
}

func newTestService(r *stubUserRepo) *UserService {
	return NewUserService(r, auth.NewHasher(1))
}

func TestRegisterAndValidate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "Passw0rd1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Username != "alice" {
		t.Fatalf("username = %q", u.Username)
	}
	if u.PasswordHash == "Passw0rd1" {
		t.Fatal("password stored as plaintext")
	}

	got, err := svc.ValidateCredentials(ctx, "alice", "Passw0rd1")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("got user %d, want %d", got.ID, u.ID)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "Passw0rd1"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, "alice", "Other9pass")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestRegisterStoreFaultPassesThrough(t *testing.T) {
	repo := newStubUserRepo()
	repo.err = errors.New("connection refused")
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), "alice", "Passw0rd1")
	if err == nil || errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("fault should not collapse into a credential error, got %v", err)
	}
}

func TestValidateWrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "Passw0rd1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPw := svc.ValidateCredentials(ctx, "alice", "wrong")
	_, noUser := svc.ValidateCredentials(ctx, "nobody", "Passw0rd1")

	if !errors.Is(wrongPw, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", wrongPw)
	}
	if !errors.Is(noUser, ErrInvalidCredentials) {
		t.Fatalf("unknown user: %v", noUser)
	}
	// Enumeration resistance: both cases must be the same error value.
	if !errors.Is(wrongPw, noUser) {
		t.Fatal("wrong-password and unknown-user errors differ")
	}
}

func TestValidateEmptyInput(t *testing.T) {
	svc := newTestService(newStubUserRepo())
	if _, err := svc.ValidateCredentials(context.Background(), "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}
