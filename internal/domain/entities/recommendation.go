package entities

// Source identifies which tier of the cascade produced a result.
type Source string

const (
	SourceMLPipeline        Source = "ml_pipeline"
	SourceGeminiAI          Source = "gemini_ai"
	SourceDefaultFallback   Source = "default_fallback"
	SourceEmergencyFallback Source = "emergency_fallback"
	SourceVerified          Source = "verified"
)

// IsValid checks if the source value is one of the defined constants.
func (s Source) IsValid() bool {
	switch s {
	case SourceMLPipeline, SourceGeminiAI, SourceDefaultFallback, SourceEmergencyFallback, SourceVerified:
		return true
	}
	return false
}

// VerificationSummary describes how the ML and AI evaluations agreed during
// a verification pass.
type VerificationSummary struct {
	MLCount       int `json:"ml_count"`
	AICount       int `json:"ai_count"`
	OverlapCount  int `json:"overlap_count"`
	TotalVerified int `json:"total_verified"`
}

// ResultError carries the machine-readable error attached to a terminal
// failure result.
type ResultError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RecommendationResult is the engine's single response shape. Recommendations
// is never nil: callers always receive a well-formed result, and degraded
// quality is signaled through Source rather than an error.
type RecommendationResult struct {
	Success              bool                  `json:"success"`
	Source               Source                `json:"source"`
	NeededAccommodations []string              `json:"needed_accommodations"`
	Recommendations      []UniversityCandidate `json:"recommendations"`
	VerificationSummary  *VerificationSummary  `json:"verification_summary,omitempty"`
	Error                *ResultError          `json:"error,omitempty"`
}

// UniversityNames returns the candidate names in rank order.
func (r *RecommendationResult) UniversityNames() []string {
	names := make([]string, len(r.Recommendations))
	for i, c := range r.Recommendations {
		names[i] = c.Name
	}
	return names
}
