package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"farmsight-backend/internal/classifier"
	"farmsight-backend/internal/domain"
	"farmsight-backend/internal/logger"
	"farmsight-backend/internal/storage"

	"github.com/google/uuid"
)

type diagnosisService struct {
	classifier *classifier.Client
	files      storage.FileStorage
}

func NewDiagnosisService(c *classifier.Client, files storage.FileStorage) DiagnosisService {
	return &diagnosisService{classifier: c, files: files}
}

func (s *diagnosisService) Diagnose(ctx context.Context, userID, filename string, image io.Reader) (*domain.Diagnosis, error) {
	raw, err := io.ReadAll(image)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, domain.NewValidationError("image", "is empty")
	}

	// Keep a copy of what was analyzed so users can review it later.
	key := fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(filename))
	if _, err := s.files.Save(key, bytes.NewReader(raw)); err != nil {
		logger.Warn("Failed to persist diagnosis image", "user_id", userID, "error", err)
	}

	diag, err := s.classifier.Predict(ctx, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	logger.Info("Leaf diagnosis completed", "user_id", userID, "label", diag.Label, "confidence", diag.Confidence)
	return diag, nil
}
