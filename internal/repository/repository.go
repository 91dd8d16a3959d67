package repository

import (
	"context"
	"database/sql"

	"github.com/I-s-h-a-n-1/I-Tech/internal/models"
	"github.com/I-s-h-a-n-1/I-Tech/internal/repository/db"
)

// ListOrder picks the direction of id-ordered listings. The dashboard shows
// newest entries first; the admin view shows oldest first.
type ListOrder int

const (
	OrderNewestFirst ListOrder = iota
	OrderOldestFirst
)

func (o ListOrder) direction() string {
	if o == OrderOldestFirst {
		return "ASC"
	}
	return "DESC"
}

type Users interface {
	Create(ctx context.Context, u *models.User) (int, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	UpdateProfilePicture(ctx context.Context, id int, pic []byte, mimeType string) error
	Delete(ctx context.Context, id int) (bool, error)
}

type Files interface {
	Create(ctx context.Context, f *models.StoredFile) (int, error)
	GetByID(ctx context.Context, id int) (*models.StoredFile, error)
	List(ctx context.Context, order ListOrder) ([]models.StoredFile, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type Announcements interface {
	Create(ctx context.Context, a *models.Announcement) (int, error)
	GetByID(ctx context.Context, id int) (*models.Announcement, error)
	List(ctx context.Context, order ListOrder) ([]models.Announcement, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type Repository struct {
	Users         Users
	Files         Files
	Announcements Announcements
}

func NewRepository(conn *sql.DB) *Repository {
	return &Repository{
		Users:         NewUserRepository(conn),
		Files:         NewFileRepository(conn),
		Announcements: NewAnnouncementRepository(conn),
	}
}

// InitDB re-exports the connection bootstrap so callers wire one package.
func InitDB(driver, dsn string) (*sql.DB, error) {
	return db.InitDB(driver, dsn)
}
