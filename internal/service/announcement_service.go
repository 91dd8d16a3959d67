package service

import (
	"context"

	"github.com/I-s-h-a-n-1/I-Tech/internal/models"
	"github.com/I-s-h-a-n-1/I-Tech/internal/repository"
)

// defaultAnnouncementTitle fills the header when the form omits one.
const defaultAnnouncementTitle = "Announcement"

// AnnouncementService implements the notice board on top of its repo.
type AnnouncementService struct {
	announcements repository.Announcements
}

func NewAnnouncementService(announcements repository.Announcements) *AnnouncementService {
	return &AnnouncementService{announcements: announcements}
}

var _ Announcements = (*AnnouncementService)(nil)

// Post creates a notice. Content length is bounded only by the storage
// column; announcements are never edited afterwards.
func (s *AnnouncementService) Post(ctx context.Context, title, content string) (*models.Announcement, error) {
	if title == "" {
		title = defaultAnnouncementTitle
	}
	a := &models.Announcement{Header: title, Content: content}
	id, err := s.announcements.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = id
	return a, nil
}

// Get resolves a notice by id; missing rows yield ErrNotFound.
func (s *AnnouncementService) Get(ctx context.Context, id int) (*models.Announcement, error) {
	a, err := s.announcements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *AnnouncementService) List(ctx context.Context, order repository.ListOrder) ([]models.Announcement, error) {
	return s.announcements.List(ctx, order)
}

func (s *AnnouncementService) Delete(ctx context.Context, id int) error {
	deleted, err := s.announcements.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
