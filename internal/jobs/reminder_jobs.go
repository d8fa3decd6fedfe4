package jobs

import (
	"context"
	"time"

	"farmsight-backend/internal/domain"
	"farmsight-backend/internal/logger"
)

// SendReminderDigests emails every user their reminders due today.
func (jr *JobRunner) SendReminderDigests() {
	jr.runWithRecovery("SendReminderDigests", func() {
		ctx := context.Background()
		today := time.Now().UTC().Format("2006-01-02")

		reminders, err := jr.store.ReminderRepository.ListDueOn(ctx, today)
		if err != nil {
			logger.Error("Failed to list due reminders", "date", today, "error", err)
			return
		}
		if len(reminders) == 0 {
			logger.Info("No reminders due", "date", today)
			return
		}

		byUser := make(map[string][]domain.Reminder)
		for _, rem := range reminders {
			byUser[rem.UserID] = append(byUser[rem.UserID], rem)
		}

		sent := 0
		for userID, rems := range byUser {
			user, err := jr.store.UserRepository.GetByID(ctx, userID)
			if err != nil {
				logger.Error("Failed to load user for digest", "user_id", userID, "error", err)
				continue
			}
			if err := jr.services.Email.SendReminderDigest(ctx, user.Email, user.Name, rems); err != nil {
				logger.Error("Failed to send reminder digest", "user_id", userID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Reminder digests sent", "date", today, "users", sent)
	})
}
