package postgres

import (
	"context"
	"database/sql"
	"errors"

	"farmsight-backend/internal/domain"
	"farmsight-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type financeRepository struct {
	db *sql.DB
}

func NewFinanceRepository(db *sql.DB) repository.FinanceRepository {
	return &financeRepository{db: db}
}

const financeColumns = `id, user_id, amount, currency, status, COALESCE(notes, ''), total, timestamp, receipt_image`

func (r *financeRepository) Create(ctx context.Context, tx *domain.Transaction, prevID string) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer dbTx.Rollback()

	// The caller computed tx.Total from the row it believed was latest.
	// Re-read the latest row under lock; if it moved, the total is stale.
	var latestID string
	err = dbTx.QueryRowContext(ctx,
		`SELECT id FROM finances WHERE user_id = $1 ORDER BY timestamp DESC, id DESC LIMIT 1 FOR UPDATE`,
		tx.UserID).Scan(&latestID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if latestID != prevID {
		return domain.ErrStaleTotal
	}

	_, err = dbTx.ExecContext(ctx,
		`INSERT INTO finances (id, user_id, amount, currency, status, notes, total, timestamp, receipt_image)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		tx.ID, tx.UserID, tx.Amount, tx.Currency, tx.Direction, tx.Notes, tx.Total, tx.Timestamp, tx.ReceiptImage)
	if err != nil {
		return err
	}
	return dbTx.Commit()
}

func (r *financeRepository) Latest(ctx context.Context, userID string) (*domain.Transaction, error) {
	query := `SELECT ` + financeColumns + ` FROM finances WHERE user_id = $1 ORDER BY timestamp DESC, id DESC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID))
}

func (r *financeRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + financeColumns + ` FROM finances WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *financeRepository) ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	query := `SELECT ` + financeColumns + ` FROM finances WHERE user_id = $1 ORDER BY timestamp DESC, id DESC`
	return r.list(ctx, query, userID)
}

func (r *financeRepository) ListByUserAsc(ctx context.Context, userID string) ([]domain.Transaction, error) {
	query := `SELECT ` + financeColumns + ` FROM finances WHERE user_id = $1 ORDER BY timestamp ASC, id ASC`
	return r.list(ctx, query, userID)
}

func (r *financeRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	query := `UPDATE finances SET amount=$1, currency=$2, status=$3, notes=$4, receipt_image=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, tx.Amount, tx.Currency, tx.Direction, tx.Notes, tx.ReceiptImage, tx.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *financeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM finances WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *financeRepository) SaveTotals(ctx context.Context, totals map[string]decimal.Decimal) error {
	if len(totals) == 0 {
		return nil
	}
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer dbTx.Rollback()

	for id, total := range totals {
		if _, err := dbTx.ExecContext(ctx, `UPDATE finances SET total = $1 WHERE id = $2`, total, id); err != nil {
			return err
		}
	}
	return dbTx.Commit()
}

func (r *financeRepository) scanOne(row *sql.Row) (*domain.Transaction, error) {
	tx := &domain.Transaction{}
	err := row.Scan(&tx.ID, &tx.UserID, &tx.Amount, &tx.Currency, &tx.Direction, &tx.Notes, &tx.Total, &tx.Timestamp, &tx.ReceiptImage)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (r *financeRepository) list(ctx context.Context, query, userID string) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Amount, &tx.Currency, &tx.Direction, &tx.Notes, &tx.Total, &tx.Timestamp, &tx.ReceiptImage); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
