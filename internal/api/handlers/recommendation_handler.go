package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/unify-edu/unify-backend/internal/application/services"
	"github.com/unify-edu/unify-backend/internal/domain/entities"
	"github.com/unify-edu/unify-backend/internal/infrastructure/observability"
)

// RecommendationHandler handles recommendation-related HTTP requests
type RecommendationHandler struct {
	engine   *services.RecommendationService
	verifier *services.VerificationService
	catalog  *services.CatalogService
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(
	engine *services.RecommendationService,
	verifier *services.VerificationService,
	catalog *services.CatalogService,
) *RecommendationHandler {
	return &RecommendationHandler{
		engine:   engine,
		verifier: verifier,
		catalog:  catalog,
	}
}

// Recommend handles POST /api/recommendations
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	result := h.engine.Recommend(r.Context(), profile)
	respondWithJSON(w, http.StatusOK, result)
}

// RecommendVerified handles POST /api/recommendations/verify
func (h *RecommendationHandler) RecommendVerified(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	result := h.verifier.Verify(r.Context(), profile)
	respondWithJSON(w, http.StatusOK, result)
}

// RecommendAI handles POST /api/gemini. Unlike the cascade endpoints this one
// surfaces AI failures to the caller instead of falling back.
func (h *RecommendationHandler) RecommendAI(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	result, err := h.engine.AIRecommend(r.Context(), profile)
	if err != nil {
		logger := observability.LoggerFromContext(r.Context())
		logger.Warn().Err(err).Msg("AI recommendation failed")
		respondWithResultError(w, http.StatusBadGateway, "ai_unavailable", "AI recommendation service is unavailable")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// TestRecommendation handles GET /api/test. It runs the cascade against a
// fixed diagnostic profile so operators can smoke-test the pipeline.
func (h *RecommendationHandler) TestRecommendation(w http.ResponseWriter, r *http.Request) {
	profile := entities.StudentProfile{
		MentalHealth:   "ADHD",
		PhysicalHealth: entities.NoCondition,
		Courses:        "Computer Science",
		GPA:            3.8,
		Severity:       entities.SeverityModerate,
	}

	result := h.engine.Recommend(r.Context(), profile)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"profile": profile,
		"result":  result,
	})
}

// ListUniversities handles GET /api/universities
func (h *RecommendationHandler) ListUniversities(w http.ResponseWriter, r *http.Request) {
	universities := h.catalog.Universities()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"universities": universities,
		"count":        len(universities),
	})
}

func (h *RecommendationHandler) decodeProfile(w http.ResponseWriter, r *http.Request) (entities.StudentProfile, bool) {
	var profile entities.StudentProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondWithResultError(w, http.StatusBadRequest, "invalid_request", "request body must be a JSON student profile")
		return profile, false
	}

	profile = profile.Normalized()
	if err := profile.Validate(); err != nil {
		respondWithResultError(w, http.StatusBadRequest, "invalid_profile", err.Error())
		return profile, false
	}

	return profile, true
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithResultError(w http.ResponseWriter, statusCode int, code, message string) {
	respondWithJSON(w, statusCode, entities.RecommendationResult{
		Success:         false,
		Recommendations: []entities.UniversityCandidate{},
		Error: &entities.ResultError{
			Code:    code,
			Message: message,
		},
	})
}
