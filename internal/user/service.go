package user

import (
	"context"
	"errors"
	"strings"

	"ptslot/internal/auth"
	"ptslot/internal/logger"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error)
	GetByID(ctx context.Context, userID int) (*User, error)
	SetPushID(ctx context.Context, userID int, pushID string) error
}

type service struct {
	repo   Repository
	tokens *auth.Tokens
	// trainerEmail is granted the admin role on registration.
	trainerEmail string
}

func NewService(repo Repository, tokens *auth.Tokens, trainerEmail string) Service {
	return &service{
		repo:         repo,
		tokens:       tokens,
		trainerEmail: strings.ToLower(strings.TrimSpace(trainerEmail)),
	}
}

func (s *service) respond(u *User) (*AuthResponse, error) {
	pair, err := s.tokens.Issue(u.Identity())
	if err != nil {
		return nil, err
	}
	return &AuthResponse{TokenPair: *pair, User: *u}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := auth.RoleMember
	if s.trainerEmail != "" && email == s.trainerEmail {
		role = auth.RoleAdmin
	}

	u, err := s.repo.Create(ctx, strings.TrimSpace(req.Name), email, passwordHash, role)
	if err != nil {
		return nil, err
	}

	logger.Info("member registered", "user_id", u.ID, "role", u.Role)
	return s.respond(u)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.respond(u)
}

// Refresh re-reads the member so a role change takes effect on the next
// token pair.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return s.respond(u)
}

func (s *service) GetByID(ctx context.Context, userID int) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *service) SetPushID(ctx context.Context, userID int, pushID string) error {
	pushID = strings.TrimSpace(pushID)
	if pushID == "" {
		return s.repo.UpdatePushID(ctx, userID, nil)
	}
	return s.repo.UpdatePushID(ctx, userID, &pushID)
}
