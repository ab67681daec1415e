package domain

import "context"

// LabelScore is one candidate label with its classifier score
type LabelScore struct {
	Label string
	Score float64
}

// ClassificationRequest holds the input of a zero-shot classification call
type ClassificationRequest struct {
	Text               string
	CandidateLabels    []string
	HypothesisTemplate string
	// MultiLabel scores every label independently instead of normalizing across labels.
	MultiLabel bool
}

// ZeroShotClassifier labels text against candidate labels unseen during training.
// Implementations return scores sorted from highest to lowest.
type ZeroShotClassifier interface {
	Classify(ctx context.Context, req ClassificationRequest) ([]LabelScore, error)
}

// CategoryPrediction is the winning label of one label set
type CategoryPrediction struct {
	PredictedCategory string
	ConfidenceScore   float64
}
