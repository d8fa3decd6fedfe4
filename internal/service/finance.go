package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"farmsight-backend/internal/domain"
	"farmsight-backend/internal/events"
	"farmsight-backend/internal/logger"
	"farmsight-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// recordRetries bounds how often Record repeats the read-compute-write
// sequence after a stale-total conflict from another process.
const recordRetries = 3

type financeService struct {
	repo      repository.FinanceRepository
	publisher events.Publisher

	muMap map[string]*sync.Mutex // serializes Record/Recompute per user
	mapMu sync.Mutex             // protects muMap itself
}

func NewFinanceService(repo repository.FinanceRepository, publisher events.Publisher) FinanceService {
	return &financeService{
		repo:      repo,
		publisher: publisher,
		muMap:     make(map[string]*sync.Mutex),
	}
}

func (s *financeService) userLock(userID string) *sync.Mutex {
	s.mapMu.Lock()
	defer s.mapMu.Unlock()

	if _, exists := s.muMap[userID]; !exists {
		s.muMap[userID] = &sync.Mutex{}
	}
	return s.muMap[userID]
}

func (s *financeService) Record(ctx context.Context, userID string, in RecordTransactionInput) (*domain.Transaction, error) {
	if userID == "" {
		return nil, domain.NewValidationError("user_id", "is required")
	}
	if in.Amount.Sign() <= 0 {
		return nil, domain.NewValidationError("amount", "must be a positive number")
	}
	if in.Currency == "" {
		return nil, domain.NewValidationError("currency", "is required")
	}
	direction, ok := domain.ParseDirection(in.Direction)
	if !ok {
		return nil, domain.NewValidationError("status", "must be either 'Received' or 'Sent'")
	}

	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	var tx *domain.Transaction
	for attempt := 0; ; attempt++ {
		prevID := ""
		prevTotal := decimal.Zero
		latest, err := s.repo.Latest(ctx, userID)
		switch {
		case err == nil:
			prevID = latest.ID
			prevTotal = latest.Total
		case errors.Is(err, domain.ErrNotFound):
			// first transaction for this user
		default:
			return nil, err
		}

		tx = &domain.Transaction{
			ID:           uuid.NewString(),
			UserID:       userID,
			Amount:       in.Amount,
			Currency:     in.Currency,
			Direction:    direction,
			Notes:        in.Notes,
			Timestamp:    time.Now().UTC(),
			ReceiptImage: in.ReceiptImage,
		}
		tx.Total = prevTotal.Add(tx.Signed())

		err = s.repo.Create(ctx, tx, prevID)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrStaleTotal) && attempt < recordRetries {
			continue
		}
		return nil, err
	}

	if err := s.publisher.TransactionRecorded(ctx, events.TransactionRecorded{
		TransactionID: tx.ID,
		UserID:        tx.UserID,
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		Direction:     string(tx.Direction),
		Total:         tx.Total,
		Timestamp:     tx.Timestamp,
	}); err != nil {
		// Event delivery is best effort; the row is already committed.
		logger.Warn("Failed to publish transaction event", "transaction_id", tx.ID, "error", err)
	}

	return tx, nil
}

func (s *financeService) Update(ctx context.Context, userID, txID string, in UpdateTransactionInput) (*domain.Transaction, error) {
	tx, err := s.owned(ctx, userID, txID)
	if err != nil {
		return nil, err
	}

	if in.Amount != nil {
		if in.Amount.Sign() <= 0 {
			return nil, domain.NewValidationError("amount", "must be a positive number")
		}
		tx.Amount = *in.Amount
	}
	if in.Currency != nil {
		if *in.Currency == "" {
			return nil, domain.NewValidationError("currency", "is required")
		}
		tx.Currency = *in.Currency
	}
	if in.Direction != nil {
		direction, ok := domain.ParseDirection(*in.Direction)
		if !ok {
			return nil, domain.NewValidationError("status", "must be either 'Received' or 'Sent'")
		}
		tx.Direction = direction
	}
	if in.Notes != nil {
		tx.Notes = *in.Notes
	}
	if in.ReceiptImage != nil {
		tx.ReceiptImage = in.ReceiptImage
	}

	// Stored totals of this row and later rows are left as they were
	// recorded; Recompute exists to repair the sequence on demand.
	if err := s.repo.Update(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *financeService) Delete(ctx context.Context, userID, txID string) error {
	if _, err := s.owned(ctx, userID, txID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, txID)
}

func (s *financeService) List(ctx context.Context, userID string) ([]domain.Transaction, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *financeService) Recompute(ctx context.Context, userID string) (int, error) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	txs, err := s.repo.ListByUserAsc(ctx, userID)
	if err != nil {
		return 0, err
	}

	running := decimal.Zero
	changed := make(map[string]decimal.Decimal)
	for i := range txs {
		running = running.Add(txs[i].Signed())
		if !txs[i].Total.Equal(running) {
			changed[txs[i].ID] = running
		}
	}

	if err := s.repo.SaveTotals(ctx, changed); err != nil {
		return 0, err
	}
	return len(changed), nil
}

// owned fetches the transaction and enforces that userID owns it.
func (s *financeService) owned(ctx context.Context, userID, txID string) (*domain.Transaction, error) {
	tx, err := s.repo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	return tx, nil
}
