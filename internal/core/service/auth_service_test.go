package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhub/task-api/internal/core/domain"
	"github.com/taskhub/task-api/internal/core/ports"
)

func newAuthFixture() (*AuthService, *userRepoStub, *TokenService) {
	users := newUserRepoStub()
	tokens := NewTokenService(testSecret, time.Hour)
	return NewAuthService(users, tokens, zerolog.Nop()), users, tokens
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, tokens := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, ports.RegisterInput{
		Email:    "alice@example.com",
		Password: "Passw0rd",
		Name:     "  Alice  ",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected assigned user ID")
	}
	if user.Name != "Alice" {
		t.Errorf("expected trimmed name, got %q", user.Name)
	}
	if user.Role != domain.RoleUser {
		t.Errorf("expected default role, got %q", user.Role)
	}
	if user.PasswordHash == "Passw0rd" {
		t.Error("password stored in plaintext")
	}

	token, logged, err := svc.Login(ctx, "alice@example.com", "Passw0rd")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != user.ID {
		t.Errorf("expected user %d, got %d", user.ID, logged.ID)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != domain.RoleUser {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	input := ports.RegisterInput{Email: "dup@example.com", Password: "Passw0rd", Name: "First"}
	if _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("first register: %v", err)
	}

	input.Name = "Second"
	if _, err := svc.Register(ctx, input); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	cases := []struct {
		name  string
		input ports.RegisterInput
	}{
		{"missing email", ports.RegisterInput{Password: "Passw0rd", Name: "A"}},
		{"missing password", ports.RegisterInput{Email: "a@example.com", Name: "A"}},
		{"missing name", ports.RegisterInput{Email: "a@example.com", Password: "Passw0rd"}},
		{"bad email", ports.RegisterInput{Email: "not-an-email", Password: "Passw0rd", Name: "A"}},
		{"weak password", ports.RegisterInput{Email: "a@example.com", Password: "password", Name: "A"}},
	}
	for _, tc := range cases {
		var verr *domain.ValidationError
		if _, err := svc.Register(ctx, tc.input); !errors.As(err, &verr) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestRegisterRoleCoercion(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, ports.RegisterInput{
		Email: "u@example.com", Password: "Passw0rd", Name: "U", Role: "superuser",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Errorf("expected unknown role coerced to %q, got %q", domain.RoleUser, user.Role)
	}

	admin, err := svc.Register(ctx, ports.RegisterInput{
		Email: "a@example.com", Password: "Passw0rd", Name: "A", Role: domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Errorf("expected admin role kept, got %q", admin.Role)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{
		Email: "bob@example.com", Password: "Passw0rd", Name: "Bob",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Unknown email and wrong password must be indistinguishable.
	if _, _, err := svc.Login(ctx, "nobody@example.com", "Passw0rd"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "bob@example.com", "WrongPass1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	digest, err := hashPassword("Passw0rd")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !checkPassword("Passw0rd", digest) {
		t.Error("expected digest to verify against its input")
	}
	tail := "x"
	if digest[len(digest)-1] == 'x' {
		tail = "y"
	}
	if checkPassword("Passw0rd", digest[:len(digest)-1]+tail) {
		t.Error("expected mutated digest to fail verification")
	}

	again, err := hashPassword("Passw0rd")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == again {
		t.Error("expected per-call salt to produce distinct digests")
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, ports.RegisterInput{
		Email: "carol@example.com", Password: "Passw0rd", Name: "Carol",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.ChangePassword(ctx, user.ID, "WrongPass1", "NextPass1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong current: expected ErrInvalidCredentials, got %v", err)
	}

	var verr *domain.ValidationError
	if err := svc.ChangePassword(ctx, user.ID, "Passw0rd", "weak"); !errors.As(err, &verr) {
		t.Fatalf("weak next: expected validation error, got %v", err)
	}

	if err := svc.ChangePassword(ctx, user.ID, "Passw0rd", "NextPass1"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, _, err := svc.Login(ctx, "carol@example.com", "NextPass1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, _, err := svc.Login(ctx, "carol@example.com", "Passw0rd"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password should be rejected, got %v", err)
	}
}

func TestUpdateName(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, ports.RegisterInput{
		Email: "dan@example.com", Password: "Passw0rd", Name: "Dan",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := svc.UpdateName(ctx, user.ID, "  Daniel  ")
	if err != nil {
		t.Fatalf("update name: %v", err)
	}
	if updated.Name != "Daniel" {
		t.Errorf("expected Daniel, got %q", updated.Name)
	}

	var verr *domain.ValidationError
	if _, err := svc.UpdateName(ctx, user.ID, "   "); !errors.As(err, &verr) {
		t.Fatalf("blank name: expected validation error, got %v", err)
	}
}

func TestDeleteUserCascadesTasks(t *testing.T) {
	users := newUserRepoStub()
	tasks := newTaskRepoStub()
	users.tasks = tasks

	authSvc := NewAuthService(users, NewTokenService(testSecret, time.Hour), zerolog.Nop())
	taskSvc := NewTaskService(tasks, zerolog.Nop())
	ctx := context.Background()

	user, err := authSvc.Register(ctx, ports.RegisterInput{
		Email: "eve@example.com", Password: "Passw0rd", Name: "Eve",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	claims := domain.Claims{UserID: user.ID, Role: user.Role}
	if _, err := taskSvc.Create(ctx, ports.CreateTaskInput{Title: "Orphan me", Claims: claims}); err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := authSvc.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if err := authSvc.DeleteUser(ctx, user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("second delete: expected ErrUserNotFound, got %v", err)
	}
	if n, _ := tasks.Count(ctx, ports.TaskFilter{UserID: user.ID}); n != 0 {
		t.Errorf("expected owned tasks removed, %d remain", n)
	}
}
