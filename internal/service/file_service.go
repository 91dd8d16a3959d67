package service

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"github.com/I-s-h-a-n-1/I-Tech/internal/models"
	"github.com/I-s-h-a-n-1/I-Tech/internal/repository"
)

// FileService implements upload/delivery rules on top of the file repo.
type FileService struct {
	files repository.Files
}

func NewFileService(files repository.Files) *FileService {
	return &FileService{files: files}
}

var _ Files = (*FileService)(nil)

// Upload sanitizes the client-supplied filename and stores content type and
// bytes verbatim. No dedup, no scanning, no size cap beyond upstream limits.
func (s *FileService) Upload(ctx context.Context, filename, contentType, year string, data []byte) (*models.StoredFile, error) {
	f := &models.StoredFile{
		Filename: SanitizeFilename(filename),
		Filetype: contentType,
		Year:     year,
		Data:     data,
	}
	id, err := s.files.Create(ctx, f)
	if err != nil {
		return nil, err
	}
	f.ID = id
	return f, nil
}

// Get returns the file with its payload for download or inline view; the
// disposition difference lives entirely in the HTTP layer.
func (s *FileService) Get(ctx context.Context, id int) (*models.StoredFile, error) {
	f, err := s.files.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrNotFound
	}
	return f, nil
}

func (s *FileService) List(ctx context.Context, order repository.ListOrder) ([]models.StoredFile, error) {
	return s.files.List(ctx, order)
}

func (s *FileService) Delete(ctx context.Context, id int) error {
	deleted, err := s.files.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// SanitizeFilename reduces a client-supplied name to a safe slug while
// keeping the extension, so "../../etc passwd.PDF" becomes "etc-passwd.pdf".
// Empty or fully-stripped names fall back to "file".
func SanitizeFilename(name string) string {
	// Strip any path components, whichever separator the client used.
	base := path.Base(filepath.ToSlash(name))

	ext := filepath.Ext(base)
	stem := slug.Make(strings.TrimSuffix(base, ext))
	if stem == "" {
		stem = "file"
	}
	if cleanExt := slug.Make(strings.TrimPrefix(ext, ".")); cleanExt != "" {
		return stem + "." + cleanExt
	}
	return stem
}
