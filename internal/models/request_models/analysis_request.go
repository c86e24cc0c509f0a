package request_models

// AnalyzeImageRequest is a result computed by an external analysis provider.
// Pointers distinguish "missing" from zero values.
type AnalyzeImageRequest struct {
	Condition          *string          `json:"condition"`
	Confidence         *float64         `json:"confidence"`
	RecommendationType *string          `json:"recommendation_type"`
	Message            string           `json:"message"`
	Recommendations    []Recommendation `json:"recommendations,omitempty"`
}

type Recommendation struct {
	Product string `json:"Product"`
}
