package service

import (
	"context"

	"github.com/I-s-h-a-n-1/I-Tech/internal/models"
	"github.com/I-s-h-a-n-1/I-Tech/internal/repository"
	"github.com/I-s-h-a-n-1/I-Tech/internal/security"
)

// AuthService checks login credentials against the user store.
type AuthService struct {
	users repository.Users
}

func NewAuthService(users repository.Users) *AuthService {
	return &AuthService{users: users}
}

var _ Authorization = (*AuthService)(nil)

// Login looks the account up by exact email and verifies the password.
// An unknown email and a wrong password fail differently on purpose; the
// login page shows distinct messages for the two cases.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNoSuchAccount
	}
	if err := security.VerifyPassword(u.PasswordHash, password); err != nil {
		return nil, ErrBadCredentials
	}
	return u, nil
}
