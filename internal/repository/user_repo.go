package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/I-s-h-a-n-1/I-Tech/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of the Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (username, email, password_hash, year, department, amount_paid, balance, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	userColumns = `id, username, email, password_hash, year, department, amount_paid, balance, profile_pic, pic_mimetype, is_admin`

	selectUserByIDSQL    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	selectUserByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	listUsersSQL         = `SELECT ` + userColumns + ` FROM users ORDER BY id ASC`

	updateUserPasswordSQL = `UPDATE users SET password_hash = $1 WHERE id = $2`
	updateUserPictureSQL  = `UPDATE users SET profile_pic = $1, pic_mimetype = $2 WHERE id = $3`
	deleteUserSQL         = `DELETE FROM users WHERE id = $1`
)

// Create inserts a new user and returns its ID. PasswordHash must already
// be hashed by the caller.
func (r *UserRepository) Create(ctx context.Context, u *models.User) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, insertUserSQL,
		u.Username, u.Email, u.PasswordHash, u.Year, u.Department,
		u.AmountPaid, u.Balance, u.IsAdmin,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", u.Email, err)
	}
	return id, nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user id=%d: %w", id, err)
	}
	return u, nil
}

// GetByEmail fetches a user by exact email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserByEmailSQL, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", email, err)
	}
	return u, nil
}

// List returns all users in creation order (the admin roster view).
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, listUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// UpdatePassword overwrites the stored hash unconditionally.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	if _, err := r.db.ExecContext(ctx, updateUserPasswordSQL, passwordHash, id); err != nil {
		return fmt.Errorf("update password for user id=%d: %w", id, err)
	}
	return nil
}

// UpdateProfilePicture overwrites the stored blob and its MIME type.
func (r *UserRepository) UpdateProfilePicture(ctx context.Context, id int, pic []byte, mimeType string) error {
	if _, err := r.db.ExecContext(ctx, updateUserPictureSQL, pic, mimeType, id); err != nil {
		return fmt.Errorf("update profile picture for user id=%d: %w", id, err)
	}
	return nil
}

// Delete removes the row permanently. Returns false when no row matched.
func (r *UserRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteUserSQL, id)
	if err != nil {
		return false, fmt.Errorf("delete user id=%d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for user id=%d: %w", id, err)
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Year, &u.Department,
		&u.AmountPaid, &u.Balance, &u.ProfilePic, &u.PicMimeType, &u.IsAdmin,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
