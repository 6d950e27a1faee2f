// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sweetcorner/backend/internal/auth"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.AccountInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toAccountInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.AccountInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toAccountInfo(user), nil
}

// Create registers a new standard-authority account. Admins are never
// created through this path.
func (s *Service) Create(
	ctx context.Context,
	params auth.CreateAccountParams,
) (*auth.AccountInfo, error) {
	user := &User{
		ID:           uuid.New().String(),
		Name:         params.Name,
		Email:        strings.ToLower(params.Email),
		Contact:      params.Contact,
		Address:      params.Address,
		PasswordHash: params.PasswordHash,
		Role:         RoleStandard,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toAccountInfo(user), nil
}

func (s *Service) EmailExists(
	ctx context.Context,
	email string,
) (bool, error) {
	return s.repo.ExistsByEmail(ctx, strings.ToLower(email))
}

func toAccountInfo(u *User) *auth.AccountInfo {
	return &auth.AccountInfo{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Contact:      u.Contact,
		Address:      u.Address,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		ProfilePic:   u.ProfilePic,
	}
}

var _ auth.AccountProvider = (*Service)(nil)
