package service

import (
	"context"
	"time"

	"farmsight-backend/internal/domain"
	"farmsight-backend/internal/repository"

	"github.com/google/uuid"
)

type soilService struct {
	soilRepo repository.SoilRepository
	plotRepo repository.PlotRepository
}

func NewSoilService(soilRepo repository.SoilRepository, plotRepo repository.PlotRepository) SoilService {
	return &soilService{soilRepo: soilRepo, plotRepo: plotRepo}
}

func (s *soilService) Record(ctx context.Context, userID string, in SoilReadingInput) (*domain.SoilReading, error) {
	if in.PlotID == "" {
		return nil, domain.NewValidationError("plot_id", "is required")
	}
	if in.Moisture < 0 || in.Moisture > 100 {
		return nil, domain.NewValidationError("moisture", "must be a percentage between 0 and 100")
	}
	if in.PH < 0 || in.PH > 14 {
		return nil, domain.NewValidationError("ph", "must be between 0 and 14")
	}
	if _, err := s.ownedPlot(ctx, userID, in.PlotID); err != nil {
		return nil, err
	}

	reading := &domain.SoilReading{
		ID:          uuid.NewString(),
		UserID:      userID,
		PlotID:      in.PlotID,
		Moisture:    in.Moisture,
		PH:          in.PH,
		Temperature: in.Temperature,
		RecordedOn:  time.Now().UTC(),
	}
	if err := s.soilRepo.Create(ctx, reading); err != nil {
		return nil, err
	}
	return reading, nil
}

func (s *soilService) ListByPlot(ctx context.Context, userID, plotID string) ([]domain.SoilReading, error) {
	if _, err := s.ownedPlot(ctx, userID, plotID); err != nil {
		return nil, err
	}
	return s.soilRepo.ListByPlot(ctx, plotID)
}

func (s *soilService) LatestPerPlot(ctx context.Context, userID string) ([]domain.SoilReading, error) {
	return s.soilRepo.LatestByPlot(ctx, userID)
}

func (s *soilService) ownedPlot(ctx context.Context, userID, plotID string) (*domain.Plot, error) {
	plot, err := s.plotRepo.GetByID(ctx, plotID)
	if err != nil {
		return nil, err
	}
	if plot.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	return plot, nil
}
