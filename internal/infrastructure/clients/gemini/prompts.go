package gemini

import (
	"fmt"
	"strings"

	"github.com/unify-edu/unify-backend/internal/domain/entities"
	"github.com/unify-edu/unify-backend/internal/domain/providers"
)

const systemInstruction = `You are an assistant that recommends universities for students with disabilities.
You always respond with a single JSON object and nothing else. The object has
exactly two keys:
  "needed_accommodations": an array of accommodation names the student needs,
  "universities": an array of objects, each with the keys "name",
  "accessibility_rating" (number 0-5), "disability_support_rating"
  (number 0-5), "available_accommodations" (array of accommodation names),
  "location" (string) and "reason" (one sentence explaining the fit).
Order universities from best fit to worst fit.`

func buildRecommendationPrompt(profile entities.StudentProfile, constraints providers.GenerativeConstraints) string {
	var sb strings.Builder

	sb.WriteString("Recommend universities for the following student.\n\n")
	fmt.Fprintf(&sb, "Mental health condition: %s\n", profile.MentalHealth)
	fmt.Fprintf(&sb, "Physical health condition: %s\n", profile.PhysicalHealth)
	fmt.Fprintf(&sb, "Intended course of study: %s\n", profile.Courses)
	fmt.Fprintf(&sb, "GPA: %.2f out of 4.0\n", profile.GPA)
	fmt.Fprintf(&sb, "Condition severity: %s\n", profile.Severity)

	if len(constraints.AccommodationVocabulary) > 0 {
		sb.WriteString("\nOnly use accommodation names from this list:\n")
		for _, label := range constraints.AccommodationVocabulary {
			fmt.Fprintf(&sb, "- %s\n", label)
		}
	}

	if len(constraints.UniversityNames) > 0 {
		sb.WriteString("\nKnown universities, in no particular order:\n")
		for _, name := range constraints.UniversityNames {
			fmt.Fprintf(&sb, "- %s\n", name)
		}
		sb.WriteString("You may also suggest other real universities when they are a clearly better fit.\n")
	}

	sb.WriteString("\nRecommend between 3 and 5 universities.")

	return sb.String()
}
