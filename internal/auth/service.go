package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	pkgauth "github.com/hellolocalo/localo-backend/pkg/auth"
	"github.com/hellolocalo/localo-backend/pkg/auth/session"
	"github.com/hellolocalo/localo-backend/pkg/config"
	"github.com/hellolocalo/localo-backend/pkg/db"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	"github.com/hellolocalo/localo-backend/pkg/enums"
	pkgerrors "github.com/hellolocalo/localo-backend/pkg/errors"
	"github.com/hellolocalo/localo-backend/pkg/security"
	"gorm.io/gorm"
)

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// Service exposes credential login, token refresh, and session teardown.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*TokenPair, error)
	Refresh(ctx context.Context, input RefreshInput) (*TokenPair, error)
	Logout(ctx context.Context, accessID string) error
	RegisterUser(ctx context.Context, input RegisterUserInput) (*UserView, error)
}

type service struct {
	repo     Repository
	sessions sessionManager
	jwt      config.JWTConfig
	password config.PasswordConfig
	now      func() time.Time
}

// NewService builds an auth service with the required dependencies.
func NewService(repo Repository, sessions sessionManager, jwt config.JWTConfig, password config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if jwt.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	return &service{
		repo:     repo,
		sessions: sessions,
		jwt:      jwt,
		password: password,
		now:      time.Now,
	}, nil
}

// Login verifies credentials and issues an access/refresh pair.
func (s *service) Login(ctx context.Context, input LoginInput) (*TokenPair, error) {
	user, err := s.repo.FindUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	return s.issueTokens(ctx, user, session.NewAccessID())
}

// Refresh rotates the refresh session and mints a fresh access token.
// The access token may already be expired; only its signature and jti
// are used.
func (s *service) Refresh(ctx context.Context, input RefreshInput) (*TokenPair, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwt, input.AccessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, input.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	user, err := s.repo.FindUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account no longer exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account disabled")
	}

	accessToken, err := pkgauth.MintAccessToken(s.jwt, s.now(), pkgauth.AccessTokenPayload{
		UserID:   user.ID,
		VendorID: user.VendorID,
		Role:     user.Role,
		JTI:      newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		User:         userViewFromModel(*user),
	}, nil
}

// Logout revokes the refresh session tied to the access token's jti.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

// RegisterUser creates an operator account with a hashed password.
func (s *service) RegisterUser(ctx context.Context, input RegisterUserInput) (*UserView, error) {
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid user role").
			WithDetails(map[string]string{"role": input.Role.String()})
	}

	var vendorID *uuid.UUID
	if input.VendorID != nil && *input.VendorID != "" {
		parsed, err := uuid.Parse(*input.VendorID)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid vendor id")
		}
		vendorID = &parsed
	}
	if input.Role == enums.UserRoleVendor && vendorID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor accounts require a vendor id")
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.repo.CreateUser(ctx, &models.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		Role:         input.Role,
		VendorID:     vendorID,
		IsActive:     true,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	view := userViewFromModel(*user)
	return &view, nil
}

func (s *service) issueTokens(ctx context.Context, user *models.User, accessID string) (*TokenPair, error) {
	accessToken, err := pkgauth.MintAccessToken(s.jwt, s.now(), pkgauth.AccessTokenPayload{
		UserID:   user.ID,
		VendorID: user.VendorID,
		Role:     user.Role,
		JTI:      accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	refreshToken, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	if err := s.repo.TouchLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record login")
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         userViewFromModel(*user),
	}, nil
}
