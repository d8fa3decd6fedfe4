package http

import (
	"errors"
	"net/http"

	"farmsight-backend/internal/domain"
	"farmsight-backend/internal/service"
)

type DiagnosisHandler struct {
	diagnosis service.DiagnosisService
	uploads   *uploadPolicy
}

func NewDiagnosisHandler(diagnosis service.DiagnosisService, uploads *uploadPolicy) *DiagnosisHandler {
	return &DiagnosisHandler{diagnosis: diagnosis, uploads: uploads}
}

// Diagnose accepts a leaf photo as multipart field "image" and returns
// the classifier's label and confidence.
func (h *DiagnosisHandler) Diagnose(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		respondError(w, domain.NewValidationError("image", "is required"))
		return
	}
	if err != nil {
		respondError(w, domain.NewValidationError("image", "must be a file upload"))
		return
	}
	defer file.Close()

	if err := h.uploads.check(header); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.diagnosis.Diagnose(r.Context(), userID, header.Filename, file)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
