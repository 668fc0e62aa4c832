package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadGoldenProfiles reads and parses a golden profile set from a JSON file.
func LoadGoldenProfiles(path string) ([]GoldenProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read golden profiles file: %w", err)
	}

	var profiles []GoldenProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse golden profiles: %w", err)
	}

	return profiles, nil
}

var validDifficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

// ValidateGoldenProfiles checks that all golden profiles have required fields and valid values.
func ValidateGoldenProfiles(profiles []GoldenProfile) error {
	seen := make(map[string]struct{}, len(profiles))

	for i, p := range profiles {
		if p.ID == "" {
			return fmt.Errorf("profile at index %d: missing id", i)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("profile at index %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = struct{}{}

		if err := p.Profile.Normalized().Validate(); err != nil {
			return fmt.Errorf("profile %q: %w", p.ID, err)
		}
		if len(p.ExpectedAccommodations) == 0 && len(p.ExpectedUniversities) == 0 {
			return fmt.Errorf("profile %q: no expected outcomes", p.ID)
		}
		if !validDifficulties[p.Difficulty] {
			return fmt.Errorf("profile %q: invalid difficulty %q (must be easy/medium/hard)", p.ID, p.Difficulty)
		}
	}

	return nil
}
