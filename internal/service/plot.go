package service

import (
	"context"
	"time"

	"farmsight-backend/internal/domain"
	"farmsight-backend/internal/repository"

	"github.com/google/uuid"
)

type plotService struct {
	plotRepo repository.PlotRepository
	cropRepo repository.CropRepository
}

func NewPlotService(plotRepo repository.PlotRepository, cropRepo repository.CropRepository) PlotService {
	return &plotService{plotRepo: plotRepo, cropRepo: cropRepo}
}

func (s *plotService) Create(ctx context.Context, userID string, in PlotInput) (*domain.Plot, error) {
	if err := s.validate(ctx, userID, in); err != nil {
		return nil, err
	}

	plot := &domain.Plot{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         in.Name,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		AreaHectares: in.AreaHectares,
		CropID:       in.CropID,
		CreatedOn:    time.Now().UTC(),
	}
	if err := s.plotRepo.Create(ctx, plot); err != nil {
		return nil, err
	}
	return plot, nil
}

func (s *plotService) List(ctx context.Context, userID string) ([]domain.Plot, error) {
	return s.plotRepo.ListByUser(ctx, userID)
}

func (s *plotService) Update(ctx context.Context, userID, plotID string, in PlotInput) (*domain.Plot, error) {
	plot, err := s.owned(ctx, userID, plotID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, userID, in); err != nil {
		return nil, err
	}

	plot.Name = in.Name
	plot.Latitude = in.Latitude
	plot.Longitude = in.Longitude
	plot.AreaHectares = in.AreaHectares
	plot.CropID = in.CropID

	if err := s.plotRepo.Update(ctx, plot); err != nil {
		return nil, err
	}
	return plot, nil
}

func (s *plotService) Delete(ctx context.Context, userID, plotID string) error {
	if _, err := s.owned(ctx, userID, plotID); err != nil {
		return err
	}
	return s.plotRepo.Delete(ctx, plotID)
}

func (s *plotService) validate(ctx context.Context, userID string, in PlotInput) error {
	if in.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if in.Latitude < -90 || in.Latitude > 90 {
		return domain.NewValidationError("latitude", "must be between -90 and 90")
	}
	if in.Longitude < -180 || in.Longitude > 180 {
		return domain.NewValidationError("longitude", "must be between -180 and 180")
	}
	if in.AreaHectares < 0 {
		return domain.NewValidationError("area_hectares", "must not be negative")
	}
	if in.CropID != nil {
		crop, err := s.cropRepo.GetByID(ctx, *in.CropID)
		if err != nil {
			return err
		}
		if crop.UserID != userID {
			return domain.ErrNotOwner
		}
	}
	return nil
}

func (s *plotService) owned(ctx context.Context, userID, plotID string) (*domain.Plot, error) {
	plot, err := s.plotRepo.GetByID(ctx, plotID)
	if err != nil {
		return nil, err
	}
	if plot.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	return plot, nil
}
