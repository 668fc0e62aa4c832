package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unify-edu/unify-backend/internal/application/services"
	"github.com/unify-edu/unify-backend/internal/domain/entities"
	"github.com/unify-edu/unify-backend/internal/domain/providers"
	"github.com/unify-edu/unify-backend/pkg/config"
)

type fixedRepository struct {
	universities []*entities.University
}

func (r *fixedRepository) Create(ctx context.Context, u *entities.University) error {
	return fmt.Errorf("not implemented")
}

func (r *fixedRepository) GetByName(ctx context.Context, name string) (*entities.University, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *fixedRepository) ListActive(ctx context.Context) ([]*entities.University, error) {
	return r.universities, nil
}

func (r *fixedRepository) Update(ctx context.Context, u *entities.University) error {
	return fmt.Errorf("not implemented")
}

type fixedGenerative struct {
	rec *providers.GenerativeRecommendation
	err error
}

func (g *fixedGenerative) Recommend(ctx context.Context, profile entities.StudentProfile, constraints providers.GenerativeConstraints) (*providers.GenerativeRecommendation, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.rec, nil
}

func testHandler(t *testing.T, generative providers.GenerativeRecommender) *RecommendationHandler {
	t.Helper()

	model := &entities.ModelArtifact{
		Version: "test",
		Labels:  []string{"Extended Test Time", "Note-Taking Services"},
		MentalHealth: entities.CategoryEncoder{
			Values:  map[string]int{"adhd": 0, "none": 1},
			Unknown: 2,
		},
		PhysicalHealth: entities.CategoryEncoder{
			Values:  map[string]int{"none": 0},
			Unknown: 1,
		},
		Courses: entities.CategoryEncoder{
			Values:  map[string]int{"computer science": 0},
			Unknown: 1,
		},
		Weights: [][]float64{
			{0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0},
		},
		Bias: []float64{2.0, 2.0},
	}
	vocabulary := entities.NewVocabulary(model.Version, model.Labels)

	universities := []*entities.University{
		{Name: "University of Toronto", AccessibilityRating: 4.5, DisabilitySupportRating: 4.8, AvailableAccommodations: []string{"Extended Test Time"}, IsActive: true},
		{Name: "University of British Columbia", AccessibilityRating: 4.3, DisabilitySupportRating: 4.6, IsActive: true},
	}
	catalog := services.NewCatalogService(&fixedRepository{universities: universities})
	require.NoError(t, catalog.Reload(context.Background()))

	cfg := config.EngineConfig{
		MinResults:          2,
		PredictionThreshold: 0.5,
		PredictionTopK:      2,
		RatingWeight:        0.7,
		OverlapWeight:       0.3,
		MaxRecommendations:  5,
		CacheTTLSeconds:     60,
	}
	scorer := services.NewUniversityScorer(cfg.RatingWeight, cfg.OverlapWeight)

	engine := services.NewRecommendationService(
		services.NewProfileEncoder(model),
		services.NewAccommodationPredictor(model, vocabulary, cfg.PredictionThreshold, cfg.PredictionTopK),
		scorer,
		catalog,
		vocabulary,
		generative,
		services.NewDefaultRecommendationService(scorer, vocabulary),
		nil,
		nil,
		cfg,
		time.Second,
	)

	return NewRecommendationHandler(engine, services.NewVerificationService(engine), catalog)
}

func postProfile(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

const validProfileBody = `{
	"mental_health": "ADHD",
	"physical_health": "None",
	"courses": "Computer Science",
	"gpa": 3.8,
	"severity": "moderate"
}`

func TestRecommend_ReturnsRankedRecommendations(t *testing.T) {
	handler := testHandler(t, nil)

	rec := postProfile(t, handler.Recommend, validProfileBody)

	require.Equal(t, http.StatusOK, rec.Code)

	var result entities.RecommendationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, entities.SourceMLPipeline, result.Source)
	assert.Len(t, result.Recommendations, 2)
}

func TestRecommend_RejectsMalformedBody(t *testing.T) {
	handler := testHandler(t, nil)

	rec := postProfile(t, handler.Recommend, "{not json")

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var result entities.RecommendationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Success)
	require.NotNil(t, result.Error)
	assert.Equal(t, "invalid_request", result.Error.Code)
}

func TestRecommend_RejectsInvalidProfile(t *testing.T) {
	handler := testHandler(t, nil)

	cases := map[string]string{
		"gpa out of range": `{"mental_health":"ADHD","gpa":5.1,"severity":"mild"}`,
		"bad severity":     `{"mental_health":"ADHD","gpa":3.0,"severity":"catastrophic"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := postProfile(t, handler.Recommend, body)

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var result entities.RecommendationResult
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
			require.NotNil(t, result.Error)
			assert.Equal(t, "invalid_profile", result.Error.Code)
		})
	}
}

func TestRecommendVerified_ReturnsVerifiedResult(t *testing.T) {
	generative := &fixedGenerative{rec: &providers.GenerativeRecommendation{
		NeededAccommodations: []string{"Extended Test Time"},
		Universities: []entities.UniversityCandidate{
			{Name: "University of Toronto", Reason: "Strong support office"},
		},
	}}
	handler := testHandler(t, generative)

	rec := postProfile(t, handler.RecommendVerified, validProfileBody)

	require.Equal(t, http.StatusOK, rec.Code)

	var result entities.RecommendationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, entities.SourceVerified, result.Source)
	require.NotNil(t, result.VerificationSummary)
	assert.Equal(t, 1, result.VerificationSummary.OverlapCount)
}

func TestRecommendAI_SurfacesFailures(t *testing.T) {
	handler := testHandler(t, &fixedGenerative{err: fmt.Errorf("quota exceeded")})

	rec := postProfile(t, handler.RecommendAI, validProfileBody)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var result entities.RecommendationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Success)
	require.NotNil(t, result.Error)
	assert.Equal(t, "ai_unavailable", result.Error.Code)
}

func TestTestRecommendation_UsesDiagnosticProfile(t *testing.T) {
	handler := testHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	rec := httptest.NewRecorder()
	handler.TestRecommendation(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Profile entities.StudentProfile        `json:"profile"`
		Result  entities.RecommendationResult  `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "ADHD", payload.Profile.MentalHealth)
	assert.True(t, payload.Result.Success)
}

func TestListUniversities(t *testing.T) {
	handler := testHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/universities", nil)
	rec := httptest.NewRecorder()
	handler.ListUniversities(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Universities []entities.University `json:"universities"`
		Count        int                   `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 2, payload.Count)
	assert.Len(t, payload.Universities, 2)
}
