package repository

import (
	"context"

	"farmsight-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmailOrName(ctx context.Context, email, name string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	// Delete removes the user; owned rows cascade at the schema level.
	Delete(ctx context.Context, id string) error
}

type CropRepository interface {
	Create(ctx context.Context, crop *domain.Crop) error
	GetByID(ctx context.Context, id string) (*domain.Crop, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Crop, error)
	Update(ctx context.Context, crop *domain.Crop) error
	Delete(ctx context.Context, id string) error
}

type FinanceRepository interface {
	// Create inserts the transaction. prevID is the id of the latest row
	// the caller read when computing tx.Total ("" when the ledger was
	// empty); if a different row is latest by the time the insert runs,
	// Create returns domain.ErrStaleTotal and writes nothing.
	Create(ctx context.Context, tx *domain.Transaction, prevID string) error
	// Latest returns the most recent transaction for the user by
	// timestamp, or domain.ErrNotFound when the ledger is empty.
	Latest(ctx context.Context, userID string) (*domain.Transaction, error)
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	// ListByUser returns all transactions newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error)
	// ListByUserAsc returns all transactions in total-computation order.
	ListByUserAsc(ctx context.Context, userID string) ([]domain.Transaction, error)
	Update(ctx context.Context, tx *domain.Transaction) error
	Delete(ctx context.Context, id string) error
	// SaveTotals overwrites the stored totals of the given rows in one
	// database transaction.
	SaveTotals(ctx context.Context, totals map[string]decimal.Decimal) error
}

type ReminderRepository interface {
	Create(ctx context.Context, rem *domain.Reminder) error
	GetByID(ctx context.Context, id string) (*domain.Reminder, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Reminder, error)
	// ListDueOn returns all reminders for the given YYYY-MM-DD day,
	// across users, for the digest job.
	ListDueOn(ctx context.Context, date string) ([]domain.Reminder, error)
	Update(ctx context.Context, rem *domain.Reminder) error
	Delete(ctx context.Context, id string) error
}

type PlotRepository interface {
	Create(ctx context.Context, plot *domain.Plot) error
	GetByID(ctx context.Context, id string) (*domain.Plot, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Plot, error)
	Update(ctx context.Context, plot *domain.Plot) error
	Delete(ctx context.Context, id string) error
}

type SoilRepository interface {
	Create(ctx context.Context, reading *domain.SoilReading) error
	ListByPlot(ctx context.Context, plotID string) ([]domain.SoilReading, error)
	// LatestByPlot returns the newest reading per plot for the user.
	LatestByPlot(ctx context.Context, userID string) ([]domain.SoilReading, error)
}
