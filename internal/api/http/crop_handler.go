package http

import (
	"net/http"
	"strconv"

	"farmsight-backend/internal/domain"
	"farmsight-backend/internal/service"
	"farmsight-backend/internal/storage"

	"github.com/gorilla/mux"
)

type CropHandler struct {
	crops   service.CropService
	files   storage.FileStorage
	uploads *uploadPolicy
}

func NewCropHandler(crops service.CropService, files storage.FileStorage, uploads *uploadPolicy) *CropHandler {
	return &CropHandler{crops: crops, files: files, uploads: uploads}
}

type cropRequest struct {
	CropType    string  `json:"crop_type"`
	Variety     string  `json:"variety"`
	GrowthStage string  `json:"growth_stage"`
	AmountSown  float64 `json:"amount_sown"`
	ExtraNotes  string  `json:"extra_notes"`
	Location    string  `json:"location"`
}

func (h *CropHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var in service.CropInput
	if isMultipart(r) {
		in, err = h.cropInputFromForm(r)
	} else {
		var req cropRequest
		if err = decodeJSON(r, &req); err == nil {
			in = service.CropInput{
				CropType:    req.CropType,
				Variety:     req.Variety,
				GrowthStage: req.GrowthStage,
				AmountSown:  req.AmountSown,
				ExtraNotes:  req.ExtraNotes,
				Location:    req.Location,
			}
		}
	}
	if err != nil {
		respondError(w, err)
		return
	}

	crop, err := h.crops.Create(r.Context(), userID, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, h.withImageURL(*crop))
}

func (h *CropHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	crop, err := h.crops.Get(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.withImageURL(*crop))
}

func (h *CropHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	crops, err := h.crops.List(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]domain.Crop, len(crops))
	for i, crop := range crops {
		out[i] = h.withImageURL(crop)
	}
	respondJSON(w, http.StatusOK, out)
}

type cropUpdateRequest struct {
	CropType    *string  `json:"crop_type"`
	Variety     *string  `json:"variety"`
	GrowthStage *string  `json:"growth_stage"`
	AmountSown  *float64 `json:"amount_sown"`
	ExtraNotes  *string  `json:"extra_notes"`
	Location    *string  `json:"location"`
}

func (h *CropHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var in service.CropUpdateInput
	if isMultipart(r) {
		in, err = h.cropUpdateFromForm(r)
	} else {
		var req cropUpdateRequest
		if err = decodeJSON(r, &req); err == nil {
			in = service.CropUpdateInput{
				CropType:    req.CropType,
				Variety:     req.Variety,
				GrowthStage: req.GrowthStage,
				AmountSown:  req.AmountSown,
				ExtraNotes:  req.ExtraNotes,
				Location:    req.Location,
			}
		}
	}
	if err != nil {
		respondError(w, err)
		return
	}

	crop, err := h.crops.Update(r.Context(), userID, mux.Vars(r)["id"], in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.withImageURL(*crop))
}

func (h *CropHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.crops.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *CropHandler) cropInputFromForm(r *http.Request) (service.CropInput, error) {
	var in service.CropInput

	in.CropType = r.FormValue("crop_type")
	in.Variety = r.FormValue("variety")
	in.GrowthStage = r.FormValue("growth_stage")
	in.ExtraNotes = r.FormValue("extra_notes")
	in.Location = r.FormValue("location")

	if v := r.FormValue("amount_sown"); v != "" {
		amount, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return in, domain.NewValidationError("amount_sown", "must be a number")
		}
		in.AmountSown = amount
	}

	image, err := h.uploads.saveFormFile(r, "crop_image")
	if err != nil {
		return in, err
	}
	in.CropImage = image
	return in, nil
}

func (h *CropHandler) cropUpdateFromForm(r *http.Request) (service.CropUpdateInput, error) {
	var in service.CropUpdateInput

	if v := r.FormValue("crop_type"); v != "" {
		in.CropType = &v
	}
	if v := r.FormValue("variety"); v != "" {
		in.Variety = &v
	}
	if v := r.FormValue("growth_stage"); v != "" {
		in.GrowthStage = &v
	}
	if _, ok := r.Form["extra_notes"]; ok {
		v := r.FormValue("extra_notes")
		in.ExtraNotes = &v
	}
	if v := r.FormValue("location"); v != "" {
		in.Location = &v
	}
	if v := r.FormValue("amount_sown"); v != "" {
		amount, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return in, domain.NewValidationError("amount_sown", "must be a number")
		}
		in.AmountSown = &amount
	}

	image, err := h.uploads.saveFormFile(r, "crop_image")
	if err != nil {
		return in, err
	}
	if image != nil {
		in.CropImage = image
	}
	return in, nil
}

func (h *CropHandler) withImageURL(crop domain.Crop) domain.Crop {
	if crop.CropImage != nil {
		url := h.files.URL(*crop.CropImage)
		crop.CropImage = &url
	}
	return crop
}
