package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/I-s-h-a-n-1/I-Tech/internal/models"
)

type FileRepository struct {
	db *sql.DB
}

func NewFileRepository(db *sql.DB) *FileRepository {
	return &FileRepository{db: db}
}

var _ Files = (*FileRepository)(nil)

const (
	insertFileSQL     = `INSERT INTO files (filename, filetype, year, data) VALUES ($1, $2, $3, $4) RETURNING id`
	selectFileByIDSQL = `SELECT id, filename, filetype, year, data FROM files WHERE id = $1`
	listFilesSQL      = `SELECT id, filename, filetype, year, data FROM files ORDER BY id `
	deleteFileSQL     = `DELETE FROM files WHERE id = $1`
)

// Create stores filename, content type and raw bytes verbatim, returning
// the new id.
func (r *FileRepository) Create(ctx context.Context, f *models.StoredFile) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, insertFileSQL, f.Filename, f.Filetype, f.Year, f.Data).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert file %q: %w", f.Filename, err)
	}
	return id, nil
}

// GetByID fetches a file with its payload. Returns (nil, nil) if not found.
func (r *FileRepository) GetByID(ctx context.Context, id int) (*models.StoredFile, error) {
	var f models.StoredFile
	err := r.db.QueryRowContext(ctx, selectFileByIDSQL, id).
		Scan(&f.ID, &f.Filename, &f.Filetype, &f.Year, &f.Data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select file id=%d: %w", id, err)
	}
	return &f, nil
}

// List returns every stored file, payload included, in the given id order.
func (r *FileRepository) List(ctx context.Context, order ListOrder) ([]models.StoredFile, error) {
	rows, err := r.db.QueryContext(ctx, listFilesSQL+order.direction())
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var files []models.StoredFile
	for rows.Next() {
		var f models.StoredFile
		if err := rows.Scan(&f.ID, &f.Filename, &f.Filetype, &f.Year, &f.Data); err != nil {
			return nil, fmt.Errorf("scan file row: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}
	return files, nil
}

// Delete removes the row permanently. Returns false when no row matched.
func (r *FileRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteFileSQL, id)
	if err != nil {
		return false, fmt.Errorf("delete file id=%d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for file id=%d: %w", id, err)
	}
	return n > 0, nil
}
