package ports

import (
	"context"

	"github.com/taskhub/task-api/internal/core/domain"
)

// RegisterInput carries sanitized registration fields.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// AuthService implements registration, login, and account management.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
	UpdateName(ctx context.Context, userID int64, name string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int64, current, next string) error
	ListUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}
