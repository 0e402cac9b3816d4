package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnknownRole        = errors.New("unknown role")
)

type Service struct {
	repo   Repository
	tokens *TokenIssuer
	logger *zap.Logger
}

func NewService(repo Repository, tokens *TokenIssuer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		tokens: tokens,
		logger: logger,
	}
}

// Login verifies credentials and returns a signed access token for the user.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(*user)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
	)

	return token, user, nil
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Roles    []Role
}

// CreateUser registers a user with a bcrypt-hashed password. Role validity
// is checked here so the API layer only deals with sentinel errors.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*User, error) {
	for _, r := range in.Roles {
		if !ValidRole(r) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRole, r)
		}
	}
	if len(in.Roles) == 0 {
		in.Roles = []Role{RoleStudent}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
		Roles:        in.Roles,
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	s.logger.Info("user created",
		zap.String("user_id", created.ID.String()),
		zap.Strings("roles", fromRoles(created.Roles)),
	)

	return created, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// AssignRoles replaces a user's role set.
func (s *Service) AssignRoles(ctx context.Context, id uuid.UUID, roles []Role) (*User, error) {
	if len(roles) == 0 {
		return nil, fmt.Errorf("%w: at least one role required", ErrUnknownRole)
	}
	for _, r := range roles {
		if !ValidRole(r) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRole, r)
		}
	}

	updated, err := s.repo.UpdateRoles(ctx, id, roles)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update roles: %w", err)
	}

	s.logger.Info("roles assigned",
		zap.String("user_id", id.String()),
		zap.Strings("roles", fromRoles(roles)),
	)

	return updated, nil
}

// ValidateToken exposes token validation to the API middleware.
func (s *Service) ValidateToken(token string) (Claims, error) {
	return s.tokens.Validate(token)
}
