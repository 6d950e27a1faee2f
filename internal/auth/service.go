// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/sweetcorner/backend/internal/core"
	"github.com/sweetcorner/backend/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
)

// AccountInfo is the account snapshot the issuer works with, decoupled from
// the user package's storage entity.
type AccountInfo struct {
	ID           string
	Name         string
	Email        string
	Contact      string
	Address      string
	PasswordHash string
	Role         string
	ProfilePic   *string
}

type CreateAccountParams struct {
	Name         string
	Email        string
	Contact      string
	Address      string
	PasswordHash string
}

type AccountProvider interface {
	GetByEmail(ctx context.Context, email string) (*AccountInfo, error)
	GetByID(ctx context.Context, id string) (*AccountInfo, error)
	Create(ctx context.Context, params CreateAccountParams) (*AccountInfo, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type Service struct {
	jwt      *JWTManager
	accounts AccountProvider
}

func NewService(jwt *JWTManager, accounts AccountProvider) *Service {
	return &Service{
		jwt:      jwt,
		accounts: accounts,
	}
}

// Register creates a standard account. Duplicate emails are rejected by an
// explicit pre-check so the caller gets a distinct condition rather than a
// surfaced constraint violation; the unique index still backs the invariant
// against races.
func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	exists, err := s.accounts.EmailExists(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		return ErrEmailExists
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = s.accounts.Create(ctx, CreateAccountParams{
		Name:         req.Name,
		Email:        req.Email,
		Contact:      req.Contact,
		Address:      req.Address,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return ErrEmailExists
		}
		return fmt.Errorf("create account: %w", err)
	}

	return nil
}

// Login verifies credentials and issues a signed session token carrying the
// account's identity and authority claims.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (string, *AccountInfo, error) {
	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get account: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&account.PasswordHash,
	)
	if err != nil {
		return "", nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwt.CreateSessionToken(SessionTokenClaims{
		UserID: account.ID,
		Email:  account.Email,
		Role:   account.Role,
	})
	if err != nil {
		return "", nil, fmt.Errorf("create session token: %w", err)
	}

	return token, account, nil
}

// GetUserData returns the profile of the authenticated account.
func (s *Service) GetUserData(
	ctx context.Context,
	userID string,
) (*UserData, error) {
	account, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserData{
		Name:       account.Name,
		Email:      account.Email,
		IsAdmin:    account.Role == middleware.RoleAdmin,
		Address:    account.Address,
		ProfilePic: account.ProfilePic,
		Contact:    account.Contact,
	}, nil
}
