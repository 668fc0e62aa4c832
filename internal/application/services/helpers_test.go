package services

import (
	"context"
	"fmt"
	"time"

	"github.com/unify-edu/unify-backend/internal/domain/entities"
	"github.com/unify-edu/unify-backend/internal/domain/providers"
	"github.com/unify-edu/unify-backend/pkg/config"
)

func testModelArtifact() *entities.ModelArtifact {
	return &entities.ModelArtifact{
		Version: "test",
		Labels:  []string{"Extended Test Time", "Note-Taking Services", "Quiet Exam Rooms"},
		MentalHealth: entities.CategoryEncoder{
			Values:  map[string]int{"adhd": 0, "anxiety": 1, "none": 2},
			Unknown: 3,
		},
		PhysicalHealth: entities.CategoryEncoder{
			Values:  map[string]int{"none": 0, "mobility impairment": 1},
			Unknown: 2,
		},
		Courses: entities.CategoryEncoder{
			Values:  map[string]int{"computer science": 0, "biology": 1},
			Unknown: 2,
		},
		Weights: [][]float64{
			{0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0},
		},
		Bias: []float64{2.0, 2.0, -3.0},
	}
}

func testVocabulary() *entities.Vocabulary {
	return entities.NewVocabulary("test", testModelArtifact().Labels)
}

func testUniversities() []*entities.University {
	return []*entities.University{
		{
			Name:                    "University of Toronto",
			Location:                "Toronto, ON",
			AccessibilityRating:     4.5,
			DisabilitySupportRating: 4.8,
			AvailableAccommodations: []string{"Extended Test Time", "Note-Taking Services"},
			IsActive:                true,
		},
		{
			Name:                    "University of British Columbia",
			Location:                "Vancouver, BC",
			AccessibilityRating:     4.3,
			DisabilitySupportRating: 4.6,
			AvailableAccommodations: []string{"Extended Test Time"},
			IsActive:                true,
		},
		{
			Name:                    "McGill University",
			Location:                "Montreal, QC",
			AccessibilityRating:     4.2,
			DisabilitySupportRating: 4.4,
			AvailableAccommodations: []string{"Note-Taking Services"},
			IsActive:                true,
		},
	}
}

func testProfile() entities.StudentProfile {
	return entities.StudentProfile{
		MentalHealth:   "ADHD",
		PhysicalHealth: entities.NoCondition,
		Courses:        "Computer Science",
		GPA:            3.8,
		Severity:       entities.SeverityModerate,
	}
}

func testEngineConfig() config.EngineConfig {
	return config.EngineConfig{
		MinResults:          2,
		PredictionThreshold: 0.5,
		PredictionTopK:      3,
		RatingWeight:        0.7,
		OverlapWeight:       0.3,
		MaxRecommendations:  5,
		CacheTTLSeconds:     60,
	}
}

type stubRepository struct {
	universities []*entities.University
	err          error
}

func (r *stubRepository) Create(ctx context.Context, university *entities.University) error {
	return fmt.Errorf("not implemented")
}

func (r *stubRepository) GetByName(ctx context.Context, name string) (*entities.University, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *stubRepository) ListActive(ctx context.Context) ([]*entities.University, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.universities, nil
}

func (r *stubRepository) Update(ctx context.Context, university *entities.University) error {
	return fmt.Errorf("not implemented")
}

type stubGenerative struct {
	rec   *providers.GenerativeRecommendation
	err   error
	calls int
}

func (g *stubGenerative) Recommend(ctx context.Context, profile entities.StudentProfile, constraints providers.GenerativeConstraints) (*providers.GenerativeRecommendation, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.rec, nil
}

type mapCache struct {
	data map[string][]byte
	gets int
	hits int
	sets int
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.gets++
	value, ok := c.data[key]
	if !ok {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	c.hits++
	return value, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.sets++
	c.data[key] = value
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *mapCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.data[key]
	return ok, nil
}

type engineOptions struct {
	universities []*entities.University
	generative   providers.GenerativeRecommender
	cache        providers.CacheProvider
	cfg          config.EngineConfig
	aiBudget     time.Duration
}

func newTestEngine(opts engineOptions) *RecommendationService {
	model := testModelArtifact()
	vocabulary := testVocabulary()
	scorer := NewUniversityScorer(opts.cfg.RatingWeight, opts.cfg.OverlapWeight)

	catalog := NewCatalogService(&stubRepository{universities: opts.universities})
	if len(opts.universities) > 0 {
		if err := catalog.Reload(context.Background()); err != nil {
			panic(err)
		}
	}

	if opts.aiBudget == 0 {
		opts.aiBudget = time.Second
	}

	return NewRecommendationService(
		NewProfileEncoder(model),
		NewAccommodationPredictor(model, vocabulary, opts.cfg.PredictionThreshold, opts.cfg.PredictionTopK),
		scorer,
		catalog,
		vocabulary,
		opts.generative,
		NewDefaultRecommendationService(scorer, vocabulary),
		opts.cache,
		nil,
		opts.cfg,
		opts.aiBudget,
	)
}
