package domain

import "time"

type Crop struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	CropType    string    `json:"crop_type"`
	Variety     string    `json:"variety"`
	GrowthStage string    `json:"growth_stage"`
	AmountSown  float64   `json:"amount_sown"`
	ExtraNotes  string    `json:"extra_notes"`
	Location    string    `json:"location"`
	CropImage   *string   `json:"crop_image"`
	CreatedOn   time.Time `json:"created_on"`
}
