package domain

import "time"

// Plot is a mapped field boundary. CropID optionally links the plot to
// the crop currently planted on it.
type Plot struct {
	ID           string    `json:"id"`
	UserID       string    `json:"-"`
	Name         string    `json:"name"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	AreaHectares float64   `json:"area_hectares"`
	CropID       *string   `json:"crop_id"`
	CreatedOn    time.Time `json:"created_on"`
}

// SoilReading is one sensor sample taken on a plot.
type SoilReading struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	PlotID      string    `json:"plot_id"`
	Moisture    float64   `json:"moisture"`
	PH          float64   `json:"ph"`
	Temperature float64   `json:"temperature"`
	RecordedOn  time.Time `json:"recorded_on"`
}
