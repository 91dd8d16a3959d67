package service

import (
	"context"
	"fmt"

	"github.com/I-s-h-a-n-1/I-Tech/internal/models"
	"github.com/I-s-h-a-n-1/I-Tech/internal/repository"
	"github.com/I-s-h-a-n-1/I-Tech/internal/security"
)

// defaultPassword is assigned when the admin "add user" form leaves the
// password blank; the admin is expected to reset it afterwards.
const defaultPassword = "1234"

// UserService implements account management rules on top of the user repo.
type UserService struct {
	users repository.Users
}

func NewUserService(users repository.Users) *UserService {
	return &UserService{users: users}
}

var _ Users = (*UserService)(nil)

// Create adds an account, rejecting duplicate emails before any write.
func (s *UserService) Create(ctx context.Context, p CreateUserParams) (*models.User, error) {
	existing, err := s.users.GetByEmail(ctx, p.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	password := p.Password
	if password == "" {
		password = defaultPassword
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: hash,
		Year:         p.Year,
		Department:   p.Department,
		Balance:      p.Balance,
		AmountPaid:   p.AmountPaid,
		IsAdmin:      p.IsAdmin,
	}
	id, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	u.ID = id
	return u, nil
}

// Get resolves an account by id; missing rows yield ErrNotFound.
func (s *UserService) Get(ctx context.Context, id int) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// UpdateProfilePicture overwrites the stored blob and MIME type without
// further validation; the upload form is the only gate.
func (s *UserService) UpdateProfilePicture(ctx context.Context, id int, pic []byte, mimeType string) error {
	return s.users.UpdateProfilePicture(ctx, id, pic, mimeType)
}

// ResetPassword rehashes and overwrites. A blank password is a no-op, so an
// admin submitting an empty reset form changes nothing.
func (s *UserService) ResetPassword(ctx context.Context, id int, newPassword string) error {
	if newPassword == "" {
		return nil
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNotFound
	}
	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, id, hash)
}

// Delete removes the target account. Admins may not delete themselves; the
// record is left intact in that case.
func (s *UserService) Delete(ctx context.Context, actorID, targetID int) error {
	if actorID == targetID {
		return ErrSelfDeleteDenied
	}
	deleted, err := s.users.Delete(ctx, targetID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// EnsureAdmin seeds the default admin account on first run. No-op when an
// account with the email already exists.
func (s *UserService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	_, err = s.Create(ctx, CreateUserParams{
		Username:   username,
		Email:      email,
		Password:   password,
		Year:       "N/A",
		Department: "IT",
		IsAdmin:    true,
	})
	if err != nil {
		return fmt.Errorf("seed admin %q: %w", email, err)
	}
	return nil
}
