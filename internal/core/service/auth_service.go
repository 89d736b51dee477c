package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/task-api/internal/api/metrics"
	"github.com/taskhub/task-api/internal/core/domain"
	"github.com/taskhub/task-api/internal/core/ports"
	"github.com/taskhub/task-api/internal/pkg/validate"
)

// bcryptCost is the fixed work factor for password hashing.
const bcryptCost = 12

// AuthService implements registration, login, and account management.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Register creates a new account. Email uniqueness is checked with a
// pre-existence query before the insert; the store's unique constraint is the
// backstop for races.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	email := validate.Sanitize(input.Email)
	name := validate.Sanitize(input.Name)

	if email == "" || input.Password == "" || name == "" {
		return nil, domain.NewValidationError("email, password, and name are required")
	}
	if !validate.Email(email) {
		return nil, domain.NewValidationError("invalid email format")
	}
	if err := validate.Password(input.Password); err != nil {
		return nil, err
	}

	// Unknown roles fall back to the default rather than failing the request.
	role := validate.Sanitize(input.Role)
	if !domain.ValidRole(role) {
		role = domain.RoleUser
	}

	if existing, err := s.users.FindByEmail(ctx, email); err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	} else if existing != nil {
		s.logger.Warn().Str("email", email).Msg("registration with existing email")
		return nil, domain.ErrEmailTaken
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Email: email, PasswordHash: hash, Name: name, Role: role}
	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	metrics.RegistrationsTotal.Inc()
	s.logger.Info().Int64("user_id", id).Str("email", email).Msg("user registered")
	return user, nil
}

// Login verifies credentials and issues a bearer token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = validate.Sanitize(email)
	if email == "" || password == "" {
		return "", nil, domain.NewValidationError("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn().Str("email", email).Msg("login with unknown email")
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !checkPassword(password, user.PasswordHash) {
		s.logger.Warn().Int64("user_id", user.ID).Msg("failed login attempt")
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Int64("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

// Profile returns the account behind a set of verified claims.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateName changes the caller's display name.
func (s *AuthService) UpdateName(ctx context.Context, userID int64, name string) (*domain.User, error) {
	name = validate.Sanitize(name)
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}

	if err := s.users.UpdateName(ctx, userID, name); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, userID)
}

// ChangePassword rotates the caller's password after verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !checkPassword(current, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}
	if err := validate.Password(next); err != nil {
		return err
	}

	hash, err := hashPassword(next)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", userID).Msg("password changed")
	return nil
}

// ListUsers returns every account. Password hashes are stripped at the JSON
// layer via the struct tag on domain.User.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAll(ctx)
}

// DeleteUser removes an account and all tasks it owns.
func (s *AuthService) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

// hashPassword produces a salted bcrypt digest; the salt is random per call,
// so equal inputs yield different digests.
func hashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// checkPassword compares in constant time; any malformed digest reads as a
// mismatch rather than an error.
func checkPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
