package service

import (
	"context"
	"errors"

	"github.com/I-s-h-a-n-1/I-Tech/internal/models"
	"github.com/I-s-h-a-n-1/I-Tech/internal/repository"
)

// Domain errors. The HTTP layer maps each to a flash message plus redirect;
// none of them ever reach a client as a raw fault.
var (
	ErrNoSuchAccount    = errors.New("no account found with that email")
	ErrBadCredentials   = errors.New("incorrect password")
	ErrEmailExists      = errors.New("email already exists")
	ErrSelfDeleteDenied = errors.New("cannot delete your own account")
	ErrNotFound         = errors.New("not found")
)

// Authorization validates credentials and resolves session identities.
type Authorization interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
}

// CreateUserParams carries the admin "add user" form fields. Balance and
// AmountPaid are independent scalars; no accounting relation is enforced.
type CreateUserParams struct {
	Username   string
	Email      string
	Password   string
	Year       string
	Department string
	Balance    float64
	AmountPaid float64
	IsAdmin    bool
}

// Users exposes account management: admin CRUD plus the one self-service
// mutation (profile picture).
type Users interface {
	Create(ctx context.Context, p CreateUserParams) (*models.User, error)
	Get(ctx context.Context, id int) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateProfilePicture(ctx context.Context, id int, pic []byte, mimeType string) error
	ResetPassword(ctx context.Context, id int, newPassword string) error
	Delete(ctx context.Context, actorID, targetID int) error
	EnsureAdmin(ctx context.Context, username, email, password string) error
}

// Files exposes upload, delivery and deletion of stored documents.
type Files interface {
	Upload(ctx context.Context, filename, contentType, year string, data []byte) (*models.StoredFile, error)
	Get(ctx context.Context, id int) (*models.StoredFile, error)
	List(ctx context.Context, order repository.ListOrder) ([]models.StoredFile, error)
	Delete(ctx context.Context, id int) error
}

// Announcements exposes the dashboard notice board.
type Announcements interface {
	Post(ctx context.Context, title, content string) (*models.Announcement, error)
	Get(ctx context.Context, id int) (*models.Announcement, error)
	List(ctx context.Context, order repository.ListOrder) ([]models.Announcement, error)
	Delete(ctx context.Context, id int) error
}

// Service aggregates all sub-services for the HTTP layer.
type Service struct {
	Auth          Authorization
	Users         Users
	Files         Files
	Announcements Announcements
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository) *Service {
	return &Service{
		Auth:          NewAuthService(repos.Users),
		Users:         NewUserService(repos.Users),
		Files:         NewFileService(repos.Files),
		Announcements: NewAnnouncementService(repos.Announcements),
	}
}
