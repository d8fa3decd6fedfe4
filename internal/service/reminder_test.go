package service

import (
	"context"
	"testing"

	"farmsight-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReminderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockReminderRepo)
		svc := NewReminderService(repo)

		repo.On("Create", ctx, mock.AnythingOfType("*domain.Reminder")).Return(nil)

		rem, err := svc.Create(ctx, "u1", "2026-09-01", "Fertilize the north field")
		require.NoError(t, err)
		assert.Equal(t, "2026-09-01", rem.Date)
		repo.AssertExpectations(t)
	})

	t.Run("RejectsBadDate", func(t *testing.T) {
		svc := NewReminderService(new(MockReminderRepo))

		_, err := svc.Create(ctx, "u1", "01/09/2026", "Fertilize")
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("RejectsEmptyContent", func(t *testing.T) {
		svc := NewReminderService(new(MockReminderRepo))

		_, err := svc.Create(ctx, "u1", "2026-09-01", "   ")
		assert.True(t, domain.IsValidation(err))
	})
}

func TestReminderService_UpdateContent(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockReminderRepo)
		svc := NewReminderService(repo)

		repo.On("GetByID", ctx, "r1").Return(&domain.Reminder{ID: "r1", UserID: "u1", Date: "2026-09-01", Content: "old"}, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.Reminder")).Return(nil)

		rem, err := svc.UpdateContent(ctx, "u1", "r1", "new text")
		require.NoError(t, err)
		assert.Equal(t, "new text", rem.Content)
	})

	t.Run("OtherUsersReminder", func(t *testing.T) {
		repo := new(MockReminderRepo)
		svc := NewReminderService(repo)

		repo.On("GetByID", ctx, "r1").Return(&domain.Reminder{ID: "r1", UserID: "u1"}, nil)

		_, err := svc.UpdateContent(ctx, "u2", "r1", "new text")
		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})
}
