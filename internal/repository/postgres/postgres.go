package postgres

import (
	"database/sql"

	"farmsight-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.CropRepository
	repository.FinanceRepository
	repository.ReminderRepository
	repository.PlotRepository
	repository.SoilRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		UserRepository:     NewUserRepository(db),
		CropRepository:     NewCropRepository(db),
		FinanceRepository:  NewFinanceRepository(db),
		ReminderRepository: NewReminderRepository(db),
		PlotRepository:     NewPlotRepository(db),
		SoilRepository:     NewSoilRepository(db),
	}
}
