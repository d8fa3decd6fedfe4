package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"farmsight-backend/internal/domain"
	"farmsight-backend/internal/repository"
)

type reminderRepository struct {
	db *sql.DB
}

func NewReminderRepository(db *sql.DB) repository.ReminderRepository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) Create(ctx context.Context, rem *domain.Reminder) error {
	query := `INSERT INTO reminders (id, user_id, date, content) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, rem.ID, rem.UserID, rem.Date, rem.Content)
	return err
}

func (r *reminderRepository) GetByID(ctx context.Context, id string) (*domain.Reminder, error) {
	rem := &domain.Reminder{}
	var date time.Time
	query := `SELECT id, user_id, date, content FROM reminders WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rem.ID, &rem.UserID, &date, &rem.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rem.Date = date.Format("2006-01-02")
	return rem, nil
}

func (r *reminderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Reminder, error) {
	query := `SELECT id, user_id, date, content FROM reminders WHERE user_id = $1 ORDER BY date ASC`
	return r.list(ctx, query, userID)
}

func (r *reminderRepository) ListDueOn(ctx context.Context, date string) ([]domain.Reminder, error) {
	query := `SELECT id, user_id, date, content FROM reminders WHERE date = $1 ORDER BY user_id`
	return r.list(ctx, query, date)
}

func (r *reminderRepository) Update(ctx context.Context, rem *domain.Reminder) error {
	res, err := r.db.ExecContext(ctx, `UPDATE reminders SET content = $1 WHERE id = $2`, rem.Content, rem.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *reminderRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *reminderRepository) list(ctx context.Context, query string, arg any) ([]domain.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rems []domain.Reminder
	for rows.Next() {
		var rem domain.Reminder
		var date time.Time
		if err := rows.Scan(&rem.ID, &rem.UserID, &date, &rem.Content); err != nil {
			return nil, err
		}
		rem.Date = date.Format("2006-01-02")
		rems = append(rems, rem)
	}
	return rems, rows.Err()
}
