package services

import (
	"resumelens/resume-extractor/internal/models"
)

type SanitizerService interface {
	// Sanitize maps untrusted decoded JSON onto the fixed record schema.
	// It never fails: absent keys, nulls, and wrong types all degrade to
	// the field's default, and one malformed field never invalidates its
	// siblings.
	Sanitize(data map[string]any) *models.ResumeRecord
}

type sanitizerService struct {
	variant models.SkillsVariant
}

func NewSanitizerService(variant models.SkillsVariant) SanitizerService {
	return &sanitizerService{variant: variant}
}

func (s *sanitizerService) Sanitize(data map[string]any) *models.ResumeRecord {
	record := &models.ResumeRecord{
		Skills:         s.defaultSkills(),
		WorkExperience: []any{},
		Education:      []any{},
		Projects:       []any{},
		Certifications: []any{},
	}

	if data == nil {
		return record
	}

	record.FirstName = stringField(data, "firstname")
	record.LastName = stringField(data, "lastname")
	record.Email = stringField(data, "email")
	record.Phone = stringField(data, "phone")
	record.Location = stringField(data, "location")
	record.Headline = stringField(data, "headline")
	record.Summary = stringField(data, "summary")
	record.LinkedIn = stringField(data, "linkedin")
	record.GitHub = stringField(data, "github")
	record.Portfolio = stringField(data, "portfolio")
	record.LeetCode = stringField(data, "leetcode")
	record.YouTube = stringField(data, "youtube")

	// Array fields are taken verbatim when the value truly is an array,
	// otherwise the full default applies. Never a filtered hybrid.
	record.WorkExperience = arrayField(data, "workExperience")
	record.Education = arrayField(data, "education")
	record.Projects = arrayField(data, "projects")
	record.Certifications = arrayField(data, "certifications")

	if s.variant == models.SkillsCategorized {
		record.Skills = models.Skills{Categories: categorizedSkills(data["skills"])}
	} else {
		record.Skills = models.Skills{Flat: arrayField(data, "skills")}
	}

	return record
}

func (s *sanitizerService) defaultSkills() models.Skills {
	if s.variant == models.SkillsCategorized {
		return models.Skills{Categories: emptyCategories()}
	}
	return models.Skills{Flat: []any{}}
}

func stringField(data map[string]any, key string) string {
	if value, ok := data[key].(string); ok {
		return value
	}
	return ""
}

func arrayField(data map[string]any, key string) []any {
	if value, ok := data[key].([]any); ok && value != nil {
		return value
	}
	return []any{}
}

// categorizedSkills recurses into the category map, validating and
// defaulting each category independently.
func categorizedSkills(value any) *models.SkillCategories {
	categories := emptyCategories()

	m, ok := value.(map[string]any)
	if !ok {
		return categories
	}

	categories.Languages = arrayField(m, "languages")
	categories.FrameworksLibraries = arrayField(m, "frameworksLibraries")
	categories.Databases = arrayField(m, "databases")
	categories.CloudDevops = arrayField(m, "cloudDevops")
	categories.Tools = arrayField(m, "tools")
	return categories
}

func emptyCategories() *models.SkillCategories {
	return &models.SkillCategories{
		Languages:           []any{},
		FrameworksLibraries: []any{},
		Databases:           []any{},
		CloudDevops:         []any{},
		Tools:               []any{},
	}
}
