package service

import (
	"context"
	"time"

	"farmsight-backend/internal/domain"
	"farmsight-backend/internal/repository"

	"github.com/google/uuid"
)

type cropService struct {
	cropRepo repository.CropRepository
}

func NewCropService(cropRepo repository.CropRepository) CropService {
	return &cropService{cropRepo: cropRepo}
}

func (s *cropService) Create(ctx context.Context, userID string, in CropInput) (*domain.Crop, error) {
	if in.CropType == "" {
		return nil, domain.NewValidationError("crop_type", "is required")
	}
	if in.Variety == "" {
		return nil, domain.NewValidationError("variety", "is required")
	}
	if in.GrowthStage == "" {
		return nil, domain.NewValidationError("growth_stage", "is required")
	}
	if in.Location == "" {
		return nil, domain.NewValidationError("location", "is required")
	}
	if in.AmountSown <= 0 {
		return nil, domain.NewValidationError("amount_sown", "must be a valid positive number")
	}

	crop := &domain.Crop{
		ID:          uuid.NewString(),
		UserID:      userID,
		CropType:    in.CropType,
		Variety:     in.Variety,
		GrowthStage: in.GrowthStage,
		AmountSown:  in.AmountSown,
		ExtraNotes:  in.ExtraNotes,
		Location:    in.Location,
		CropImage:   in.CropImage,
		CreatedOn:   time.Now().UTC(),
	}
	if err := s.cropRepo.Create(ctx, crop); err != nil {
		return nil, err
	}
	return crop, nil
}

func (s *cropService) Get(ctx context.Context, userID, cropID string) (*domain.Crop, error) {
	return s.owned(ctx, userID, cropID)
}

func (s *cropService) List(ctx context.Context, userID string) ([]domain.Crop, error) {
	return s.cropRepo.ListByUser(ctx, userID)
}

func (s *cropService) Update(ctx context.Context, userID, cropID string, in CropUpdateInput) (*domain.Crop, error) {
	crop, err := s.owned(ctx, userID, cropID)
	if err != nil {
		return nil, err
	}

	if in.CropType != nil {
		crop.CropType = *in.CropType
	}
	if in.Variety != nil {
		crop.Variety = *in.Variety
	}
	if in.GrowthStage != nil {
		crop.GrowthStage = *in.GrowthStage
	}
	if in.AmountSown != nil {
		if *in.AmountSown <= 0 {
			return nil, domain.NewValidationError("amount_sown", "must be a valid positive number")
		}
		crop.AmountSown = *in.AmountSown
	}
	if in.ExtraNotes != nil {
		crop.ExtraNotes = *in.ExtraNotes
	}
	if in.Location != nil {
		crop.Location = *in.Location
	}
	if in.CropImage != nil {
		crop.CropImage = in.CropImage
	}

	if err := s.cropRepo.Update(ctx, crop); err != nil {
		return nil, err
	}
	return crop, nil
}

func (s *cropService) Delete(ctx context.Context, userID, cropID string) error {
	if _, err := s.owned(ctx, userID, cropID); err != nil {
		return err
	}
	return s.cropRepo.Delete(ctx, cropID)
}

func (s *cropService) owned(ctx context.Context, userID, cropID string) (*domain.Crop, error) {
	crop, err := s.cropRepo.GetByID(ctx, cropID)
	if err != nil {
		return nil, err
	}
	if crop.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	return crop, nil
}
