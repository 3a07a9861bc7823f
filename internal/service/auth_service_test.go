package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aliyevk1/bdgtweb/internal/domain"
	"github.com/aliyevk1/bdgtweb/internal/testutil"
)

func newAuthService(userRepo *testutil.MockUserRepository) *AuthService {
	return NewAuthService(userRepo, "test-secret", time.Hour)
}

func TestRegister_Success(t *testing.T) {
	authService := newAuthService(testutil.NewMockUserRepository())

	user, token, err := authService.Register(context.Background(), "alice", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("Expected username 'alice', got %s", user.Username)
	}
	if user.PasswordHash == "hunter2hunter2" {
		t.Error("Expected the password to be hashed")
	}
	if token == "" {
		t.Error("Expected a token to be issued")
	}

	userID, err := authService.ParseToken(token)
	if err != nil {
		t.Fatalf("Expected the issued token to parse, got %v", err)
	}
	if userID != user.ID {
		t.Errorf("Expected user id %d in token, got %d", user.ID, userID)
	}
}

func TestRegister_UsernameLength(t *testing.T) {
	authService := newAuthService(testutil.NewMockUserRepository())

	if _, _, err := authService.Register(context.Background(), "ab", "longenoughpw"); !errors.Is(err, domain.ErrUsernameLength) {
		t.Errorf("Expected ErrUsernameLength for short username, got %v", err)
	}

	long := make([]byte, domain.MaxUsernameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	if _, _, err := authService.Register(context.Background(), string(long), "longenoughpw"); !errors.Is(err, domain.ErrUsernameLength) {
		t.Errorf("Expected ErrUsernameLength for long username, got %v", err)
	}
}

func TestRegister_PasswordTooShort(t *testing.T) {
	authService := newAuthService(testutil.NewMockUserRepository())

	if _, _, err := authService.Register(context.Background(), "alice", "short"); !errors.Is(err, domain.ErrPasswordLength) {
		t.Errorf("Expected ErrPasswordLength, got %v", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	authService := newAuthService(testutil.NewMockUserRepository())

	if _, _, err := authService.Register(context.Background(), "alice", "longenoughpw"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, _, err := authService.Register(context.Background(), "ALICE", "longenoughpw"); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Errorf("Expected ErrDuplicateUsername for case-insensitive duplicate, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	authService := newAuthService(testutil.NewMockUserRepository())

	registered, _, err := authService.Register(context.Background(), "alice", "longenoughpw")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	user, token, err := authService.Login(context.Background(), "alice", "longenoughpw")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("Expected user id %d, got %d", registered.ID, user.ID)
	}
	if token == "" {
		t.Error("Expected a token to be issued")
	}
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	authService := newAuthService(testutil.NewMockUserRepository())

	if _, _, err := authService.Register(context.Background(), "alice", "longenoughpw"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, _, unknownUser := authService.Login(context.Background(), "bob", "longenoughpw")
	_, _, wrongPassword := authService.Login(context.Background(), "alice", "wrongpassword")

	if !errors.Is(unknownUser, domain.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown user, got %v", unknownUser)
	}
	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
	}
}

func TestParseToken_RejectsGarbageAndForeignTokens(t *testing.T) {
	authService := newAuthService(testutil.NewMockUserRepository())

	if _, err := authService.ParseToken("not-a-token"); err == nil {
		t.Error("Expected an error for a malformed token")
	}

	other := NewAuthService(testutil.NewMockUserRepository(), "other-secret", time.Hour)
	_, token, err := other.Register(context.Background(), "alice", "longenoughpw")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := authService.ParseToken(token); err == nil {
		t.Error("Expected an error for a token signed with another secret")
	}
}

func TestParseToken_RejectsExpiredTokens(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	authService := NewAuthService(userRepo, "test-secret", -time.Minute)

	_, token, err := authService.Register(context.Background(), "alice", "longenoughpw")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := authService.ParseToken(token); err == nil {
		t.Error("Expected an error for an expired token")
	}
}
