package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"github.com/unify-edu/unify-backend/internal/domain/entities"
	"github.com/unify-edu/unify-backend/internal/domain/providers"
	"github.com/unify-edu/unify-backend/internal/infrastructure/observability"
	"github.com/unify-edu/unify-backend/pkg/config"
)

const maxAttempts = 3

// Client wraps the Gemini API for generating university recommendations.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	metrics *observability.Metrics
}

// NewClient creates a new Gemini client. Returns an error when no API key is
// configured so callers can decide whether to run without the AI tier.
func NewClient(ctx context.Context, cfg *config.GeminiConfig, metrics *observability.Metrics) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}

	return &Client{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		metrics: metrics,
	}, nil
}

// Close releases the underlying API connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// Recommend asks Gemini for accommodation needs and ranked universities for a
// student profile. The response is requested as JSON and parsed strictly; any
// malformed payload is reported as ErrGenerativeUnavailable so the caller can
// fall back.
func (c *Client) Recommend(ctx context.Context, profile entities.StudentProfile, constraints providers.GenerativeConstraints) (*providers.GenerativeRecommendation, error) {
	ctx, span := observability.StartSpan(ctx, "gemini.Recommend")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	model := c.client.GenerativeModel(c.model)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0.2),
		ResponseMIMEType: "application/json",
	}
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	prompt := buildRecommendationPrompt(profile, constraints)

	start := time.Now()
	var resp *genai.GenerateContentResponse
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err = model.GenerateContent(ctx, genai.Text(prompt))
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			break
		}
		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Str("model", c.model).
			Msg("Gemini request failed, retrying")
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			continue
		}
		break
	}

	if c.metrics != nil {
		observability.RecordAILatency(ctx, c.metrics, c.model, err == nil, time.Since(start))
	}

	if err != nil {
		observability.RecordError(span, err)
		return nil, fmt.Errorf("%w: %v", providers.ErrGenerativeUnavailable, err)
	}

	text := firstText(resp)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", providers.ErrGenerativeUnavailable)
	}

	rec, err := parseRecommendation(text)
	if err != nil {
		log.Warn().Err(err).Str("model", c.model).Msg("Failed to parse Gemini response")
		observability.RecordError(span, err)
		return nil, fmt.Errorf("%w: %v", providers.ErrGenerativeUnavailable, err)
	}
	rec.Model = c.model

	return rec, nil
}

type recommendationPayload struct {
	NeededAccommodations []string            `json:"needed_accommodations"`
	Universities         []universityPayload `json:"universities"`
}

type universityPayload struct {
	Name                    string   `json:"name"`
	AccessibilityRating     float64  `json:"accessibility_rating"`
	DisabilitySupportRating float64  `json:"disability_support_rating"`
	AvailableAccommodations []string `json:"available_accommodations"`
	Location                string   `json:"location"`
	Reason                  string   `json:"reason"`
}

func parseRecommendation(text string) (*providers.GenerativeRecommendation, error) {
	cleaned := stripCodeFences(text)

	var payload recommendationPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("invalid JSON payload: %w", err)
	}

	if len(payload.Universities) == 0 {
		return nil, fmt.Errorf("payload contains no universities")
	}

	universities := make([]entities.UniversityCandidate, 0, len(payload.Universities))
	for _, u := range payload.Universities {
		if strings.TrimSpace(u.Name) == "" {
			continue
		}
		universities = append(universities, entities.UniversityCandidate{
			Name:                    strings.TrimSpace(u.Name),
			AccessibilityRating:     clampRating(u.AccessibilityRating),
			DisabilitySupportRating: clampRating(u.DisabilitySupportRating),
			AvailableAccommodations: u.AvailableAccommodations,
			Location:                u.Location,
			Reason:                  u.Reason,
		})
	}

	if len(universities) == 0 {
		return nil, fmt.Errorf("payload contains no usable universities")
	}

	return &providers.GenerativeRecommendation{
		NeededAccommodations: payload.NeededAccommodations,
		Universities:         universities,
	}, nil
}

func clampRating(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return v
}

// stripCodeFences removes markdown code fences some models wrap around JSON.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}

func ptrFloat32(v float32) *float32 {
	return &v
}
