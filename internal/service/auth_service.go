package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"spotbook/internal/auth"
	apperrors "spotbook/internal/errors"
	"spotbook/internal/model"
	"spotbook/internal/repository"
)

const bcryptCost = 10

// SignupInput carries the fields of a new account.
type SignupInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// Session is an issued token and the user it was issued for.
type Session struct {
	User  model.SessionUser
	Token string
}

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, credential, password string) (*Session, error)
	Signup(ctx context.Context, in SignupInput) (*Session, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Login accepts a username or an email. Unknown users and wrong passwords
// fail the same way.
func (s *authService) Login(ctx context.Context, credential, password string) (*Session, error) {
	user, err := s.userRepo.FindByCredential(ctx, credential)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.AuthenticationFailed()
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.AuthenticationFailed()
	}

	return s.issue(user)
}

// Signup creates a user with a hashed password and logs them in.
func (s *authService) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        in.Email,
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			return nil, apperrors.DuplicateUser(dup.Field)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issue(user)
}

// Logout revokes the session for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return nil
	}
	return s.tokenStore.Revoke(ctx, claims.ID, s.jwtService.Remaining(claims))
}

func (s *authService) issue(user *model.User) (*Session, error) {
	safe := user.Safe()
	token, _, err := s.jwtService.Issue(safe)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{User: safe, Token: token}, nil
}
