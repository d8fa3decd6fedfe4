package domain

// Diagnosis is the classifier's verdict for one uploaded leaf image.
type Diagnosis struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}
