package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"farmsight-backend/internal/domain"
	"farmsight-backend/internal/repository"
)

type plotRepository struct {
	db *sql.DB
}

func NewPlotRepository(db *sql.DB) repository.PlotRepository {
	return &plotRepository{db: db}
}

const plotColumns = `id, user_id, name, latitude, longitude, area_hectares, crop_id, created_on`

func (r *plotRepository) Create(ctx context.Context, p *domain.Plot) error {
	query := `INSERT INTO plots (id, user_id, name, latitude, longitude, area_hectares, crop_id, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	p.CreatedOn = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query, p.ID, p.UserID, p.Name, p.Latitude, p.Longitude, p.AreaHectares, p.CropID, p.CreatedOn)
	return err
}

func (r *plotRepository) GetByID(ctx context.Context, id string) (*domain.Plot, error) {
	p := &domain.Plot{}
	query := `SELECT ` + plotColumns + ` FROM plots WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.UserID, &p.Name, &p.Latitude, &p.Longitude, &p.AreaHectares, &p.CropID, &p.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *plotRepository) ListByUser(ctx context.Context, userID string) ([]domain.Plot, error) {
	query := `SELECT ` + plotColumns + ` FROM plots WHERE user_id = $1 ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plots []domain.Plot
	for rows.Next() {
		var p domain.Plot
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Latitude, &p.Longitude, &p.AreaHectares, &p.CropID, &p.CreatedOn); err != nil {
			return nil, err
		}
		plots = append(plots, p)
	}
	return plots, rows.Err()
}

func (r *plotRepository) Update(ctx context.Context, p *domain.Plot) error {
	query := `UPDATE plots SET name=$1, latitude=$2, longitude=$3, area_hectares=$4, crop_id=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, p.Name, p.Latitude, p.Longitude, p.AreaHectares, p.CropID, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *plotRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plots WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
