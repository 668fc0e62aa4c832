package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unify-edu/unify-backend/internal/domain/entities"
)

func TestUniversityScorer_Score(t *testing.T) {
	scorer := NewUniversityScorer(0.7, 0.3)

	// avg rating 4.5, one of two needs covered
	score := scorer.Score(4.0, 5.0,
		[]string{"Extended Test Time"},
		[]string{"Extended Test Time", "Quiet Exam Rooms"},
	)

	assert.InDelta(t, 0.7*4.5+0.3*0.5*5.0, score, 1e-9)
}

func TestUniversityScorer_Score_EmptyNeedsContributeNoCoverage(t *testing.T) {
	scorer := NewUniversityScorer(0.7, 0.3)

	score := scorer.Score(4.0, 4.0, nil, nil)

	assert.InDelta(t, 0.7*4.0, score, 1e-9)
}

func TestUniversityScorer_Score_CoverageIsCaseInsensitive(t *testing.T) {
	scorer := NewUniversityScorer(0.0, 1.0)

	score := scorer.Score(0, 0,
		[]string{"extended test time"},
		[]string{"Extended Test Time"},
	)

	assert.InDelta(t, 5.0, score, 1e-9)
}

func TestUniversityScorer_Rank_OrdersByScore(t *testing.T) {
	scorer := NewUniversityScorer(0.7, 0.3)

	ranked := scorer.Rank(testUniversities(), []string{"Extended Test Time"}, 0)

	require.Len(t, ranked, 3)
	assert.Equal(t, "University of Toronto", ranked[0].Name)
	assert.Equal(t, "University of British Columbia", ranked[1].Name)
	assert.Equal(t, "McGill University", ranked[2].Name)
	assert.GreaterOrEqual(t, ranked[0].Score, ranked[1].Score)
	assert.GreaterOrEqual(t, ranked[1].Score, ranked[2].Score)
}

func TestUniversityScorer_Rank_BreaksTiesBySupportRating(t *testing.T) {
	scorer := NewUniversityScorer(0.7, 0.3)
	universities := []*entities.University{
		{Name: "Alpha University", AccessibilityRating: 4.0, DisabilitySupportRating: 4.0},
		{Name: "Zeta University", AccessibilityRating: 3.0, DisabilitySupportRating: 5.0},
	}

	ranked := scorer.Rank(universities, nil, 0)

	// Equal weighted scores, higher support rating wins.
	require.Len(t, ranked, 2)
	assert.InDelta(t, ranked[0].Score, ranked[1].Score, 1e-9)
	assert.Equal(t, "Zeta University", ranked[0].Name)
}

func TestUniversityScorer_Rank_BreaksTiesByName(t *testing.T) {
	scorer := NewUniversityScorer(0.7, 0.3)
	universities := []*entities.University{
		{Name: "Zeta University", AccessibilityRating: 4.0, DisabilitySupportRating: 4.0},
		{Name: "Alpha University", AccessibilityRating: 4.0, DisabilitySupportRating: 4.0},
	}

	ranked := scorer.Rank(universities, nil, 0)

	require.Len(t, ranked, 2)
	assert.Equal(t, "Alpha University", ranked[0].Name)
	assert.Equal(t, "Zeta University", ranked[1].Name)
}

func TestUniversityScorer_Rank_AppliesLimit(t *testing.T) {
	scorer := NewUniversityScorer(0.7, 0.3)

	ranked := scorer.Rank(testUniversities(), nil, 2)

	assert.Len(t, ranked, 2)
}

func TestUniversityScorer_Rank_IsDeterministic(t *testing.T) {
	scorer := NewUniversityScorer(0.7, 0.3)
	needed := []string{"Extended Test Time", "Note-Taking Services"}

	first := scorer.Rank(testUniversities(), needed, 0)
	second := scorer.Rank(testUniversities(), needed, 0)

	assert.Equal(t, first, second)
}
