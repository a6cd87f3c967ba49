package journal

import (
	"context"

	"mindnest-svc/src/internal/clock"
	"mindnest-svc/src/internal/models"

	"github.com/sirupsen/logrus"
)

type Service interface {
	CreateEntry(ctx context.Context, userID string, req *CreateEntryRequest) (*Entry, error)
	ListEntries(ctx context.Context, userID string) ([]*Entry, error)
	RecentEntries(ctx context.Context, userID string, limit int64) ([]*Entry, error)
	CountEntries(ctx context.Context, userID string) (int64, error)
	DeleteEntry(ctx context.Context, userID, entryID string) error
}

type journalService struct {
	repository Repository
	clk        clock.Clock
}

func NewJournalService(repository Repository, clk clock.Clock) Service {
	return &journalService{
		repository: repository,
		clk:        clk,
	}
}

func (s *journalService) CreateEntry(ctx context.Context, userID string, req *CreateEntryRequest) (*Entry, error) {
	if req.Content == "" {
		return nil, models.ErrContentRequired
	}

	entry := &Entry{
		UserID:        userID,
		Title:         req.Title,
		Content:       req.Content,
		Mood:          req.Mood,
		Tags:          req.Tags,
		ImageFilename: req.ImageFilename,
		CreatedAt:     s.clk.Now(),
	}

	created, err := s.repository.Create(ctx, entry)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"entry_id": created.ID.Hex(),
	}).Info("Journal entry saved")

	return created, nil
}

func (s *journalService) ListEntries(ctx context.Context, userID string) ([]*Entry, error) {
	return s.repository.ListByUser(ctx, userID, 0)
}

func (s *journalService) RecentEntries(ctx context.Context, userID string, limit int64) ([]*Entry, error) {
	return s.repository.ListByUser(ctx, userID, limit)
}

func (s *journalService) CountEntries(ctx context.Context, userID string) (int64, error) {
	return s.repository.CountByUser(ctx, userID)
}

func (s *journalService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	if err := s.repository.Delete(ctx, userID, entryID); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"entry_id": entryID,
	}).Info("Journal entry deleted")

	return nil
}
