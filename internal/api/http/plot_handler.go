package http

import (
	"net/http"

	"farmsight-backend/internal/service"

	"github.com/gorilla/mux"
)

type PlotHandler struct {
	plots service.PlotService
	soil  service.SoilService
}

func NewPlotHandler(plots service.PlotService, soil service.SoilService) *PlotHandler {
	return &PlotHandler{plots: plots, soil: soil}
}

type plotRequest struct {
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	AreaHectares float64 `json:"area_hectares"`
	CropID       *string `json:"crop_id"`
}

func (r plotRequest) toInput() service.PlotInput {
	return service.PlotInput{
		Name:         r.Name,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		AreaHectares: r.AreaHectares,
		CropID:       r.CropID,
	}
}

func (h *PlotHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var req plotRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	plot, err := h.plots.Create(r.Context(), userID, req.toInput())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, plot)
}

func (h *PlotHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	plots, err := h.plots.List(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, plots)
}

func (h *PlotHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var req plotRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	plot, err := h.plots.Update(r.Context(), userID, mux.Vars(r)["id"], req.toInput())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, plot)
}

func (h *PlotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.plots.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type soilReadingRequest struct {
	Moisture    float64 `json:"moisture"`
	PH          float64 `json:"ph"`
	Temperature float64 `json:"temperature"`
}

func (h *PlotHandler) RecordSoil(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var req soilReadingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	reading, err := h.soil.Record(r.Context(), userID, service.SoilReadingInput{
		PlotID:      mux.Vars(r)["id"],
		Moisture:    req.Moisture,
		PH:          req.PH,
		Temperature: req.Temperature,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, reading)
}

func (h *PlotHandler) ListSoil(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	readings, err := h.soil.ListByPlot(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, readings)
}

// LatestSoil returns the newest reading for each of the caller's plots,
// for the map overlay.
func (h *PlotHandler) LatestSoil(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	readings, err := h.soil.LatestPerPlot(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, readings)
}
