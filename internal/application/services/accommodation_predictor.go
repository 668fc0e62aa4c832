package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/unify-edu/unify-backend/internal/domain/entities"
)

// AccommodationPredictor runs the multi-label accommodation model: one
// independent sigmoid unit per vocabulary label. Prediction is pure
// computation over an immutable artifact, so a single predictor is safe for
// concurrent use.
type AccommodationPredictor struct {
	model      *entities.ModelArtifact
	vocabulary *entities.Vocabulary
	threshold  float64
	topK       int
}

// NewAccommodationPredictor creates a predictor over a validated artifact
func NewAccommodationPredictor(model *entities.ModelArtifact, vocabulary *entities.Vocabulary, threshold float64, topK int) *AccommodationPredictor {
	return &AccommodationPredictor{
		model:      model,
		vocabulary: vocabulary,
		threshold:  threshold,
		topK:       topK,
	}
}

// Probabilities returns the per-label sigmoid activations in vocabulary
// order. The feature vector length is an invariant established by the
// encoder; a mismatch means the model and encoder are out of sync.
func (p *AccommodationPredictor) Probabilities(features []float64) []float64 {
	if len(features) != entities.FeatureCount {
		panic(fmt.Sprintf("feature vector has %d features, want %d", len(features), entities.FeatureCount))
	}

	probs := make([]float64, len(p.model.Labels))
	for i, row := range p.model.Weights {
		z := p.model.Bias[i]
		for j, w := range row {
			z += w * features[j]
		}
		probs[i] = sigmoid(z)
	}
	return probs
}

// Predict returns the accommodation labels for a feature vector. Labels whose
// activation clears the threshold are selected in vocabulary order; only when
// no label clears it are the k highest-activation labels returned instead, so
// a student never receives an empty needs list.
func (p *AccommodationPredictor) Predict(features []float64) []string {
	probs := p.Probabilities(features)

	var selected []string
	for i, prob := range probs {
		if prob >= p.threshold {
			selected = append(selected, p.vocabulary.Label(i))
		}
	}
	if len(selected) > 0 {
		return selected
	}

	// Top-k floor: rank by activation, breaking ties by vocabulary order.
	indices := make([]int, len(probs))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return probs[indices[a]] > probs[indices[b]]
	})

	k := p.topK
	if k > len(indices) {
		k = len(indices)
	}

	labels := make([]string, 0, k)
	for _, i := range indices[:k] {
		labels = append(labels, p.vocabulary.Label(i))
	}
	return labels
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
