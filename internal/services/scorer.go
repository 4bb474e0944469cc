package services

import (
	"resumelens/resume-extractor/internal/models"
)

// ScoreRecord computes the completeness confidence for a sanitized record.
// Pure and deterministic; identity fields carry the heaviest weights. The
// sum of all weights is exactly 100 and the result is capped there.
func ScoreRecord(record *models.ResumeRecord) int {
	score := 0

	if record.FirstName != "" && record.LastName != "" {
		score += 20
	}
	if record.Email != "" {
		score += 15
	}
	if record.Phone != "" {
		score += 10
	}
	if record.Headline != "" {
		score += 10
	}
	if record.LinkedIn != "" {
		score += 5
	}
	if record.GitHub != "" {
		score += 5
	}
	if record.Portfolio != "" {
		score += 5
	}
	if len(record.WorkExperience) > 0 {
		score += 15
	}
	if len(record.Education) > 0 {
		score += 10
	}
	if record.Skills.HasAny() {
		score += 5
	}

	if score > 100 {
		score = 100
	}
	return score
}
