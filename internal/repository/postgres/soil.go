package postgres

import (
	"context"
	"database/sql"

	"farmsight-backend/internal/domain"
	"farmsight-backend/internal/repository"
)

type soilRepository struct {
	db *sql.DB
}

func NewSoilRepository(db *sql.DB) repository.SoilRepository {
	return &soilRepository{db: db}
}

const soilColumns = `id, user_id, plot_id, moisture, ph, temperature, recorded_on`

func (r *soilRepository) Create(ctx context.Context, s *domain.SoilReading) error {
	query := `INSERT INTO soil_readings (id, user_id, plot_id, moisture, ph, temperature, recorded_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.UserID, s.PlotID, s.Moisture, s.PH, s.Temperature, s.RecordedOn)
	return err
}

func (r *soilRepository) ListByPlot(ctx context.Context, plotID string) ([]domain.SoilReading, error) {
	query := `SELECT ` + soilColumns + ` FROM soil_readings WHERE plot_id = $1 ORDER BY recorded_on DESC`
	return r.list(ctx, query, plotID)
}

func (r *soilRepository) LatestByPlot(ctx context.Context, userID string) ([]domain.SoilReading, error) {
	query := `SELECT DISTINCT ON (plot_id) ` + soilColumns + `
	          FROM soil_readings WHERE user_id = $1 ORDER BY plot_id, recorded_on DESC`
	return r.list(ctx, query, userID)
}

func (r *soilRepository) list(ctx context.Context, query, arg string) ([]domain.SoilReading, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []domain.SoilReading
	for rows.Next() {
		var s domain.SoilReading
		if err := rows.Scan(&s.ID, &s.UserID, &s.PlotID, &s.Moisture, &s.PH, &s.Temperature, &s.RecordedOn); err != nil {
			return nil, err
		}
		readings = append(readings, s)
	}
	return readings, rows.Err()
}
