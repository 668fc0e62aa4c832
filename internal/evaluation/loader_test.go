package evaluation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/unify-edu/unify-backend/internal/domain/entities"
)

func profileWithGPA(gpa float64) entities.StudentProfile {
	return entities.StudentProfile{
		MentalHealth: "ADHD",
		GPA:          gpa,
		Severity:     entities.SeverityMild,
	}
}

const goldenFixture = `[
	{"id": "p1", "profile": {"mental_health": "ADHD", "physical_health": "None", "courses": "Computer Science", "gpa": 3.8, "severity": "moderate"}, "expected_accommodations": ["Extended Test Time"], "expected_universities": ["University of Toronto"], "difficulty": "easy"},
	{"id": "p2", "profile": {"mental_health": "None", "physical_health": "Mobility Impairment", "courses": "Biology", "gpa": 3.2, "severity": "severe"}, "expected_accommodations": ["Accessible Transportation"], "expected_universities": [], "difficulty": "medium"}
]`

func TestLoadGoldenProfiles_ValidFile(t *testing.T) {
	path := writeTempFile(t, goldenFixture)

	profiles, err := LoadGoldenProfiles(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	if profiles[0].ID != "p1" {
		t.Errorf("expected id p1, got %s", profiles[0].ID)
	}
	if profiles[0].Profile.MentalHealth != "ADHD" {
		t.Errorf("expected mental health ADHD, got %s", profiles[0].Profile.MentalHealth)
	}
	if len(profiles[0].ExpectedAccommodations) != 1 {
		t.Errorf("expected 1 accommodation, got %d", len(profiles[0].ExpectedAccommodations))
	}
	if profiles[1].Profile.Severity != "severe" {
		t.Errorf("expected severity severe, got %s", profiles[1].Profile.Severity)
	}
}

func TestLoadGoldenProfiles_InvalidFile(t *testing.T) {
	_, err := LoadGoldenProfiles("/nonexistent/path.json")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadGoldenProfiles_InvalidJSON(t *testing.T) {
	path := writeTempFile(t, `not valid json`)
	_, err := LoadGoldenProfiles(path)
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestValidateGoldenProfiles_Valid(t *testing.T) {
	path := writeTempFile(t, goldenFixture)
	profiles, err := LoadGoldenProfiles(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateGoldenProfiles(profiles); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestValidateGoldenProfiles_Errors(t *testing.T) {
	cases := []struct {
		name     string
		profiles []GoldenProfile
	}{
		{"missing id", []GoldenProfile{{Difficulty: "easy", ExpectedAccommodations: []string{"x"}}}},
		{"duplicate id", []GoldenProfile{
			{ID: "p1", Difficulty: "easy", ExpectedAccommodations: []string{"x"}},
			{ID: "p1", Difficulty: "easy", ExpectedAccommodations: []string{"x"}},
		}},
		{"invalid gpa", []GoldenProfile{{ID: "p1", Difficulty: "easy", ExpectedAccommodations: []string{"x"}, Profile: profileWithGPA(7.0)}}},
		{"no expected outcomes", []GoldenProfile{{ID: "p1", Difficulty: "easy"}}},
		{"invalid difficulty", []GoldenProfile{{ID: "p1", Difficulty: "impossible", ExpectedAccommodations: []string{"x"}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateGoldenProfiles(tc.profiles); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "golden.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}
