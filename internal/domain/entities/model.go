package entities

import "fmt"

// CategoryEncoder maps a categorical profile field to a stable numeric index.
// Encoders are fixed at training time and serialized with the model; values
// the training data never saw map to the reserved unknown index instead of
// failing.
type CategoryEncoder struct {
	Values  map[string]int `json:"values"`
	Unknown int            `json:"unknown"`
}

// Encode returns the index for a value, falling back to the unknown bucket.
// Matching is exact on the normalized category string.
func (e CategoryEncoder) Encode(value string) int {
	if i, ok := e.Values[value]; ok {
		return i
	}
	return e.Unknown
}

// ModelArtifact is the trained multi-label accommodation model as loaded from
// the artifact store: one linear unit per vocabulary label plus the fixed
// categorical encoders the feature vector depends on. The artifact is
// immutable once loaded.
type ModelArtifact struct {
	Version        string          `json:"version"`
	Labels         []string        `json:"labels"`
	MentalHealth   CategoryEncoder `json:"mental_health_encoder"`
	PhysicalHealth CategoryEncoder `json:"physical_health_encoder"`
	Courses        CategoryEncoder `json:"courses_encoder"`
	// Weights is indexed [label][feature]; Bias is indexed [label].
	Weights [][]float64 `json:"weights"`
	Bias    []float64   `json:"bias"`
}

// FeatureCount is the fixed length of the encoded feature vector:
// mental health, physical health, courses, gpa, severity.
const FeatureCount = 5

// Validate checks the structural integrity of a loaded artifact. A model
// that fails this check is unusable and must abort startup.
func (m *ModelArtifact) Validate() error {
	if len(m.Labels) == 0 {
		return fmt.Errorf("model artifact has no labels")
	}
	if len(m.Weights) != len(m.Labels) {
		return fmt.Errorf("model artifact has %d weight rows for %d labels", len(m.Weights), len(m.Labels))
	}
	if len(m.Bias) != len(m.Labels) {
		return fmt.Errorf("model artifact has %d bias terms for %d labels", len(m.Bias), len(m.Labels))
	}
	for i, row := range m.Weights {
		if len(row) != FeatureCount {
			return fmt.Errorf("weight row %d has %d features, want %d", i, len(row), FeatureCount)
		}
	}
	return nil
}
