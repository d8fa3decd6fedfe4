package http

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"farmsight-backend/internal/config"
	"farmsight-backend/internal/domain"
	"farmsight-backend/internal/storage"

	"github.com/google/uuid"
)

// uploadPolicy enforces the size and content-type limits on image
// uploads before they reach file storage.
type uploadPolicy struct {
	files        storage.FileStorage
	maxBytes     int64
	allowedTypes map[string]bool
}

func newUploadPolicy(files storage.FileStorage, cfg config.StorageConfig) *uploadPolicy {
	allowed := make(map[string]bool, len(cfg.AllowedTypes))
	for _, t := range cfg.AllowedTypes {
		allowed[strings.ToLower(t)] = true
	}
	return &uploadPolicy{
		files:        files,
		maxBytes:     cfg.MaxFileSize * 1024 * 1024,
		allowedTypes: allowed,
	}
}

// saveFormFile stores the named multipart file and returns its storage
// key, or nil when the field is absent.
func (p *uploadPolicy) saveFormFile(r *http.Request, field string) (*string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewValidationError(field, "must be a file upload")
	}
	defer file.Close()

	if err := p.check(header); err != nil {
		return nil, err
	}

	key := uuid.NewString() + "_" + filepath.Base(header.Filename)
	if _, err := p.files.Save(key, file); err != nil {
		return nil, fmt.Errorf("save uploaded file: %w", err)
	}
	return &key, nil
}

func (p *uploadPolicy) check(header *multipart.FileHeader) error {
	if header.Size > p.maxBytes {
		return domain.NewValidationError(header.Filename, fmt.Sprintf("exceeds the %d MB upload limit", p.maxBytes/(1024*1024)))
	}
	contentType := strings.ToLower(header.Header.Get("Content-Type"))
	if contentType == "" || !p.allowedTypes[contentType] {
		return domain.NewValidationError(header.Filename, "has an unsupported content type")
	}
	return nil
}
