package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"farmsight-backend/internal/domain"
	"farmsight-backend/internal/repository"
)

type cropRepository struct {
	db *sql.DB
}

func NewCropRepository(db *sql.DB) repository.CropRepository {
	return &cropRepository{db: db}
}

const cropColumns = `id, user_id, crop_type, variety, growth_stage, amount_sown, COALESCE(extra_notes, ''), location, crop_image, created_on`

func (r *cropRepository) Create(ctx context.Context, c *domain.Crop) error {
	query := `INSERT INTO crops (id, user_id, crop_type, variety, growth_stage, amount_sown, extra_notes, location, crop_image, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	c.CreatedOn = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query, c.ID, c.UserID, c.CropType, c.Variety, c.GrowthStage, c.AmountSown, c.ExtraNotes, c.Location, c.CropImage, c.CreatedOn)
	return err
}

func (r *cropRepository) GetByID(ctx context.Context, id string) (*domain.Crop, error) {
	c := &domain.Crop{}
	query := `SELECT ` + cropColumns + ` FROM crops WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.UserID, &c.CropType, &c.Variety, &c.GrowthStage, &c.AmountSown, &c.ExtraNotes, &c.Location, &c.CropImage, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *cropRepository) ListByUser(ctx context.Context, userID string) ([]domain.Crop, error) {
	query := `SELECT ` + cropColumns + ` FROM crops WHERE user_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var crops []domain.Crop
	for rows.Next() {
		var c domain.Crop
		if err := rows.Scan(&c.ID, &c.UserID, &c.CropType, &c.Variety, &c.GrowthStage, &c.AmountSown, &c.ExtraNotes, &c.Location, &c.CropImage, &c.CreatedOn); err != nil {
			return nil, err
		}
		crops = append(crops, c)
	}
	return crops, rows.Err()
}

func (r *cropRepository) Update(ctx context.Context, c *domain.Crop) error {
	query := `UPDATE crops SET crop_type=$1, variety=$2, growth_stage=$3, amount_sown=$4, extra_notes=$5, location=$6, crop_image=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, c.CropType, c.Variety, c.GrowthStage, c.AmountSown, c.ExtraNotes, c.Location, c.CropImage, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *cropRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM crops WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
