package service

import (
	"context"
	"strings"
	"time"

	"farmsight-backend/internal/domain"
	"farmsight-backend/internal/repository"

	"github.com/google/uuid"
)

type reminderService struct {
	reminderRepo repository.ReminderRepository
}

func NewReminderService(reminderRepo repository.ReminderRepository) ReminderService {
	return &reminderService{reminderRepo: reminderRepo}
}

func (s *reminderService) Create(ctx context.Context, userID, date, content string) (*domain.Reminder, error) {
	date = strings.TrimSpace(date)
	content = strings.TrimSpace(content)
	if date == "" {
		return nil, domain.NewValidationError("date", "is required")
	}
	if content == "" {
		return nil, domain.NewValidationError("content", "is required")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, domain.NewValidationError("date", "must be YYYY-MM-DD")
	}

	rem := &domain.Reminder{
		ID:      uuid.NewString(),
		UserID:  userID,
		Date:    date,
		Content: content,
	}
	if err := s.reminderRepo.Create(ctx, rem); err != nil {
		return nil, err
	}
	return rem, nil
}

func (s *reminderService) List(ctx context.Context, userID string) ([]domain.Reminder, error) {
	return s.reminderRepo.ListByUser(ctx, userID)
}

func (s *reminderService) UpdateContent(ctx context.Context, userID, reminderID, content string) (*domain.Reminder, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.NewValidationError("content", "is required")
	}

	rem, err := s.owned(ctx, userID, reminderID)
	if err != nil {
		return nil, err
	}

	rem.Content = content
	if err := s.reminderRepo.Update(ctx, rem); err != nil {
		return nil, err
	}
	return rem, nil
}

func (s *reminderService) Delete(ctx context.Context, userID, reminderID string) error {
	if _, err := s.owned(ctx, userID, reminderID); err != nil {
		return err
	}
	return s.reminderRepo.Delete(ctx, reminderID)
}

func (s *reminderService) owned(ctx context.Context, userID, reminderID string) (*domain.Reminder, error) {
	rem, err := s.reminderRepo.GetByID(ctx, reminderID)
	if err != nil {
		return nil, err
	}
	if rem.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	return rem, nil
}
