package entities

import (
	"fmt"
	"strings"
)

// Severity is the coarse ordinal rating of how much a condition impacts a student.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// ValidSeverities returns all valid severity values.
func ValidSeverities() []Severity {
	return []Severity{SeverityMild, SeverityModerate, SeveritySevere}
}

// IsValid checks if the severity value is one of the defined constants.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

// Ordinal maps severity to its position on the ordinal scale (mild=0, moderate=1, severe=2).
func (s Severity) Ordinal() int {
	switch s {
	case SeverityModerate:
		return 1
	case SeveritySevere:
		return 2
	}
	return 0
}

// StudentProfile is the caller-supplied accessibility profile. The engine
// never mutates it; missing condition fields are normalized to "None" at the
// boundary before the profile reaches the engine.
type StudentProfile struct {
	MentalHealth   string   `json:"mental_health"`
	PhysicalHealth string   `json:"physical_health"`
	Courses        string   `json:"courses"`
	GPA            float64  `json:"gpa"`
	Severity       Severity `json:"severity"`
}

// NoCondition is the sentinel used when a health field reports no condition.
const NoCondition = "None"

// Normalized returns a copy with empty condition fields replaced by the
// "None" sentinel and severity lowercased.
func (p StudentProfile) Normalized() StudentProfile {
	out := p
	if strings.TrimSpace(out.MentalHealth) == "" {
		out.MentalHealth = NoCondition
	}
	if strings.TrimSpace(out.PhysicalHealth) == "" {
		out.PhysicalHealth = NoCondition
	}
	if strings.TrimSpace(out.Courses) == "" {
		out.Courses = NoCondition
	}
	out.Severity = Severity(strings.ToLower(strings.TrimSpace(string(out.Severity))))
	return out
}

// HasMentalHealthCondition reports whether the profile declares a mental
// health condition.
func (p StudentProfile) HasMentalHealthCondition() bool {
	return !strings.EqualFold(strings.TrimSpace(p.MentalHealth), NoCondition) && strings.TrimSpace(p.MentalHealth) != ""
}

// HasPhysicalHealthCondition reports whether the profile declares a physical
// health condition.
func (p StudentProfile) HasPhysicalHealthCondition() bool {
	return !strings.EqualFold(strings.TrimSpace(p.PhysicalHealth), NoCondition) && strings.TrimSpace(p.PhysicalHealth) != ""
}

// Validate enforces the boundary contract: GPA in [0,4] and a known severity.
// The engine assumes profiles that reach it have already passed this check.
func (p StudentProfile) Validate() error {
	if p.GPA < 0.0 || p.GPA > 4.0 {
		return fmt.Errorf("gpa must be between 0.0 and 4.0, got %.2f", p.GPA)
	}
	if !p.Severity.IsValid() {
		return fmt.Errorf("severity must be one of: mild, moderate, severe")
	}
	return nil
}
