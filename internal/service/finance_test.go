package service

import (
	"context"
	"sort"
	"sync"
	"testing"

	"farmsight-backend/internal/domain"
	"farmsight-backend/internal/events"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFinanceRepo is an in-memory FinanceRepository that enforces the
// same stale-total guard as the postgres implementation, so the retry
// path can be exercised without a database.
type fakeFinanceRepo struct {
	mu  sync.Mutex
	txs []domain.Transaction

	// failCreates makes the next n Create calls report a stale read.
	failCreates int
}

func (f *fakeFinanceRepo) Create(_ context.Context, tx *domain.Transaction, prevID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCreates > 0 {
		f.failCreates--
		return domain.ErrStaleTotal
	}

	latestID := ""
	if latest := f.latestLocked(tx.UserID); latest != nil {
		latestID = latest.ID
	}
	if latestID != prevID {
		return domain.ErrStaleTotal
	}

	f.txs = append(f.txs, *tx)
	return nil
}

func (f *fakeFinanceRepo) Latest(_ context.Context, userID string) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	latest := f.latestLocked(userID)
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeFinanceRepo) latestLocked(userID string) *domain.Transaction {
	var latest *domain.Transaction
	for i := range f.txs {
		if f.txs[i].UserID != userID {
			continue
		}
		if latest == nil || f.txs[i].Timestamp.After(latest.Timestamp) ||
			(f.txs[i].Timestamp.Equal(latest.Timestamp) && f.txs[i].ID > latest.ID) {
			latest = &f.txs[i]
		}
	}
	return latest
}

func (f *fakeFinanceRepo) GetByID(_ context.Context, id string) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.txs {
		if f.txs[i].ID == id {
			cp := f.txs[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeFinanceRepo) ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	asc, err := f.ListByUserAsc(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Transaction, 0, len(asc))
	for i := len(asc) - 1; i >= 0; i-- {
		out = append(out, asc[i])
	}
	return out, nil
}

func (f *fakeFinanceRepo) ListByUserAsc(_ context.Context, userID string) ([]domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Transaction
	for i := range f.txs {
		if f.txs[i].UserID == userID {
			out = append(out, f.txs[i])
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeFinanceRepo) Update(_ context.Context, tx *domain.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.txs {
		if f.txs[i].ID == tx.ID {
			f.txs[i] = *tx
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeFinanceRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.txs {
		if f.txs[i].ID == id {
			f.txs = append(f.txs[:i], f.txs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeFinanceRepo) SaveTotals(_ context.Context, totals map[string]decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.txs {
		if total, ok := totals[f.txs[i].ID]; ok {
			f.txs[i].Total = total
		}
	}
	return nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func record(t *testing.T, svc FinanceService, userID, amount, direction string) *domain.Transaction {
	t.Helper()
	tx, err := svc.Record(context.Background(), userID, RecordTransactionInput{
		Amount:    dec(amount),
		Currency:  "USD",
		Direction: direction,
	})
	require.NoError(t, err)
	return tx
}

func TestFinanceService_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("RunningTotalExtendsPerDirection", func(t *testing.T) {
		repo := &fakeFinanceRepo{}
		svc := NewFinanceService(repo, events.NoopPublisher{})

		tx1 := record(t, svc, "u1", "100", "Received")
		tx2 := record(t, svc, "u1", "30", "Sent")
		tx3 := record(t, svc, "u1", "50", "Received")

		assert.True(t, tx1.Total.Equal(dec("100")), "got %s", tx1.Total)
		assert.True(t, tx2.Total.Equal(dec("70")), "got %s", tx2.Total)
		assert.True(t, tx3.Total.Equal(dec("120")), "got %s", tx3.Total)
	})

	t.Run("FirstSentGoesNegative", func(t *testing.T) {
		repo := &fakeFinanceRepo{}
		svc := NewFinanceService(repo, events.NoopPublisher{})

		tx := record(t, svc, "u1", "25", "Sent")
		assert.True(t, tx.Total.Equal(dec("-25")), "got %s", tx.Total)
	})

	t.Run("UsersDoNotShareLedgers", func(t *testing.T) {
		repo := &fakeFinanceRepo{}
		svc := NewFinanceService(repo, events.NoopPublisher{})

		record(t, svc, "u1", "100", "Received")
		tx := record(t, svc, "u2", "40", "Received")
		assert.True(t, tx.Total.Equal(dec("40")), "got %s", tx.Total)
	})

	t.Run("DirectionIsCaseInsensitive", func(t *testing.T) {
		repo := &fakeFinanceRepo{}
		svc := NewFinanceService(repo, events.NoopPublisher{})

		tx := record(t, svc, "u1", "10", "received")
		assert.Equal(t, domain.DirectionReceived, tx.Direction)
	})

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		repo := &fakeFinanceRepo{}
		svc := NewFinanceService(repo, events.NoopPublisher{})

		_, err := svc.Record(ctx, "u1", RecordTransactionInput{
			Amount: dec("-5"), Currency: "USD", Direction: "Received",
		})
		assert.True(t, domain.IsValidation(err))

		_, err = svc.Record(ctx, "u1", RecordTransactionInput{
			Amount: decimal.Zero, Currency: "USD", Direction: "Received",
		})
		assert.True(t, domain.IsValidation(err))

		txs, _ := repo.ListByUserAsc(ctx, "u1")
		assert.Empty(t, txs, "rejected input must not write a row")
	})

	t.Run("RejectsUnknownDirection", func(t *testing.T) {
		svc := NewFinanceService(&fakeFinanceRepo{}, events.NoopPublisher{})

		_, err := svc.Record(ctx, "u1", RecordTransactionInput{
			Amount: dec("5"), Currency: "USD", Direction: "Pending",
		})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("RetriesAfterStaleRead", func(t *testing.T) {
		repo := &fakeFinanceRepo{failCreates: 2}
		svc := NewFinanceService(repo, events.NoopPublisher{})

		tx := record(t, svc, "u1", "10", "Received")
		assert.True(t, tx.Total.Equal(dec("10")), "got %s", tx.Total)
	})

	t.Run("GivesUpAfterRepeatedStaleReads", func(t *testing.T) {
		repo := &fakeFinanceRepo{failCreates: 10}
		svc := NewFinanceService(repo, events.NoopPublisher{})

		_, err := svc.Record(ctx, "u1", RecordTransactionInput{
			Amount: dec("10"), Currency: "USD", Direction: "Received",
		})
		assert.ErrorIs(t, err, domain.ErrStaleTotal)
	})

	t.Run("ConcurrentRecordsSerialize", func(t *testing.T) {
		repo := &fakeFinanceRepo{}
		svc := NewFinanceService(repo, events.NoopPublisher{})

		var wg sync.WaitGroup
		for _, amount := range []string{"10", "20"} {
			wg.Add(1)
			go func(amount string) {
				defer wg.Done()
				_, err := svc.Record(ctx, "u1", RecordTransactionInput{
					Amount: dec(amount), Currency: "USD", Direction: "Received",
				})
				assert.NoError(t, err)
			}(amount)
		}
		wg.Wait()

		txs, err := repo.ListByUserAsc(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, txs, 2)

		// Either order is valid; the totals must chain without gaps.
		first, second := txs[0], txs[1]
		assert.True(t, first.Total.Equal(first.Signed()), "got %s", first.Total)
		assert.True(t, second.Total.Equal(first.Total.Add(second.Signed())), "got %s", second.Total)
		assert.True(t, second.Total.Equal(dec("30")), "got %s", second.Total)
	})
}

func TestFinanceService_List(t *testing.T) {
	ctx := context.Background()
	repo := &fakeFinanceRepo{}
	svc := NewFinanceService(repo, events.NoopPublisher{})

	record(t, svc, "u1", "100", "Received")
	record(t, svc, "u1", "30", "Sent")

	t.Run("NewestFirst", func(t *testing.T) {
		txs, err := svc.List(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, txs, 2)
		assert.True(t, txs[0].Total.Equal(dec("70")), "got %s", txs[0].Total)
		assert.True(t, txs[1].Total.Equal(dec("100")), "got %s", txs[1].Total)
	})

	t.Run("ReadIsIdempotent", func(t *testing.T) {
		before, err := svc.List(ctx, "u1")
		require.NoError(t, err)
		after, err := svc.List(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestFinanceService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("DoesNotTouchStoredTotals", func(t *testing.T) {
		repo := &fakeFinanceRepo{}
		svc := NewFinanceService(repo, events.NoopPublisher{})

		tx1 := record(t, svc, "u1", "100", "Received")
		tx2 := record(t, svc, "u1", "30", "Sent")

		amount := dec("10")
		updated, err := svc.Update(ctx, "u1", tx1.ID, UpdateTransactionInput{Amount: &amount})
		require.NoError(t, err)
		assert.True(t, updated.Amount.Equal(dec("10")))

		// The edited row and its successors keep their recorded totals.
		got1, _ := repo.GetByID(ctx, tx1.ID)
		got2, _ := repo.GetByID(ctx, tx2.ID)
		assert.True(t, got1.Total.Equal(dec("100")), "got %s", got1.Total)
		assert.True(t, got2.Total.Equal(dec("70")), "got %s", got2.Total)
	})

	t.Run("RejectsOtherUsersRow", func(t *testing.T) {
		repo := &fakeFinanceRepo{}
		svc := NewFinanceService(repo, events.NoopPublisher{})

		tx := record(t, svc, "u1", "100", "Received")
		notes := "mine now"
		_, err := svc.Update(ctx, "u2", tx.ID, UpdateTransactionInput{Notes: &notes})
		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := NewFinanceService(&fakeFinanceRepo{}, events.NoopPublisher{})
		notes := "x"
		_, err := svc.Update(ctx, "u1", "missing", UpdateTransactionInput{Notes: &notes})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestFinanceService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("LeavesLaterTotalsAlone", func(t *testing.T) {
		repo := &fakeFinanceRepo{}
		svc := NewFinanceService(repo, events.NoopPublisher{})

		tx1 := record(t, svc, "u1", "100", "Received")
		tx2 := record(t, svc, "u1", "30", "Sent")

		require.NoError(t, svc.Delete(ctx, "u1", tx1.ID))

		got2, err := repo.GetByID(ctx, tx2.ID)
		require.NoError(t, err)
		assert.True(t, got2.Total.Equal(dec("70")), "got %s", got2.Total)
	})

	t.Run("RejectsOtherUsersRow", func(t *testing.T) {
		repo := &fakeFinanceRepo{}
		svc := NewFinanceService(repo, events.NoopPublisher{})

		tx := record(t, svc, "u1", "100", "Received")
		err := svc.Delete(ctx, "u2", tx.ID)
		assert.ErrorIs(t, err, domain.ErrNotOwner)

		_, err = repo.GetByID(ctx, tx.ID)
		assert.NoError(t, err, "row must survive a rejected delete")
	})
}

func TestFinanceService_Recompute(t *testing.T) {
	ctx := context.Background()

	t.Run("RepairsTotalsAfterEditAndDelete", func(t *testing.T) {
		repo := &fakeFinanceRepo{}
		svc := NewFinanceService(repo, events.NoopPublisher{})

		tx1 := record(t, svc, "u1", "100", "Received")
		tx2 := record(t, svc, "u1", "30", "Sent")
		tx3 := record(t, svc, "u1", "50", "Received")

		amount := dec("10")
		_, err := svc.Update(ctx, "u1", tx1.ID, UpdateTransactionInput{Amount: &amount})
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, "u1", tx2.ID))

		repaired, err := svc.Recompute(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 2, repaired)

		got1, _ := repo.GetByID(ctx, tx1.ID)
		got3, _ := repo.GetByID(ctx, tx3.ID)
		assert.True(t, got1.Total.Equal(dec("10")), "got %s", got1.Total)
		assert.True(t, got3.Total.Equal(dec("60")), "got %s", got3.Total)
	})

	t.Run("ConsistentLedgerIsUntouched", func(t *testing.T) {
		repo := &fakeFinanceRepo{}
		svc := NewFinanceService(repo, events.NoopPublisher{})

		record(t, svc, "u1", "100", "Received")
		record(t, svc, "u1", "30", "Sent")

		repaired, err := svc.Recompute(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 0, repaired)
	})

	t.Run("EmptyLedger", func(t *testing.T) {
		svc := NewFinanceService(&fakeFinanceRepo{}, events.NoopPublisher{})

		repaired, err := svc.Recompute(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 0, repaired)
	})
}
