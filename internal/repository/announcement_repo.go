package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/I-s-h-a-n-1/I-Tech/internal/models"
)

type AnnouncementRepository struct {
	db *sql.DB
}

func NewAnnouncementRepository(db *sql.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

var _ Announcements = (*AnnouncementRepository)(nil)

const (
	insertAnnouncementSQL     = `INSERT INTO announcements (header, content) VALUES ($1, $2) RETURNING id`
	selectAnnouncementByIDSQL = `SELECT id, header, content FROM announcements WHERE id = $1`
	listAnnouncementsSQL      = `SELECT id, header, content FROM announcements ORDER BY id `
	deleteAnnouncementSQL     = `DELETE FROM announcements WHERE id = $1`
)

// Create inserts a new announcement and returns its id. The id sequence is
// the only creation-order record, so listings order by it.
func (r *AnnouncementRepository) Create(ctx context.Context, a *models.Announcement) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, insertAnnouncementSQL, a.Header, a.Content).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert announcement %q: %w", a.Header, err)
	}
	return id, nil
}

// GetByID fetches an announcement. Returns (nil, nil) if not found.
func (r *AnnouncementRepository) GetByID(ctx context.Context, id int) (*models.Announcement, error) {
	var a models.Announcement
	err := r.db.QueryRowContext(ctx, selectAnnouncementByIDSQL, id).
		Scan(&a.ID, &a.Header, &a.Content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select announcement id=%d: %w", id, err)
	}
	return &a, nil
}

func (r *AnnouncementRepository) List(ctx context.Context, order ListOrder) ([]models.Announcement, error) {
	rows, err := r.db.QueryContext(ctx, listAnnouncementsSQL+order.direction())
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	var out []models.Announcement
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(&a.ID, &a.Header, &a.Content); err != nil {
			return nil, fmt.Errorf("scan announcement row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate announcements: %w", err)
	}
	return out, nil
}

// Delete removes the row permanently. Returns false when no row matched.
func (r *AnnouncementRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteAnnouncementSQL, id)
	if err != nil {
		return false, fmt.Errorf("delete announcement id=%d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for announcement id=%d: %w", id, err)
	}
	return n > 0, nil
}
