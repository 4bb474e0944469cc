package models

import "encoding/json"

// SkillsVariant selects the output shape of the skills field. The variant
// is a deployment-time choice, never a per-request one.
type SkillsVariant string

const (
	SkillsFlat        SkillsVariant = "flat"
	SkillsCategorized SkillsVariant = "categorized"
)

// SkillCategories is the categorized skills variant. Category contents are
// taken verbatim from the model output; each category is validated and
// defaulted independently.
type SkillCategories struct {
	Languages           []any `json:"languages"`
	FrameworksLibraries []any `json:"frameworksLibraries"`
	Databases           []any `json:"databases"`
	CloudDevops         []any `json:"cloudDevops"`
	Tools               []any `json:"tools"`
}

// Skills holds exactly one of the two schema variants. The zero value
// marshals as an empty flat list.
type Skills struct {
	Flat       []any
	Categories *SkillCategories
}

func (s Skills) MarshalJSON() ([]byte, error) {
	if s.Categories != nil {
		return json.Marshal(s.Categories)
	}
	if s.Flat == nil {
		return json.Marshal([]any{})
	}
	return json.Marshal(s.Flat)
}

// HasAny reports whether at least one skill is present in either variant.
func (s Skills) HasAny() bool {
	if s.Categories != nil {
		return len(s.Categories.Languages) > 0 ||
			len(s.Categories.FrameworksLibraries) > 0 ||
			len(s.Categories.Databases) > 0 ||
			len(s.Categories.CloudDevops) > 0 ||
			len(s.Categories.Tools) > 0
	}
	return len(s.Flat) > 0
}

// ResumeRecord is the sanitized extraction result. Every field is always
// present and type-correct regardless of what the model returned; the
// sanitizer degrades anything malformed to the field's default. Array
// elements are trusted verbatim once the value itself is an array.
// Confidence is always computed, never taken from the model.
type ResumeRecord struct {
	FirstName      string `json:"firstname"`
	LastName       string `json:"lastname"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Location       string `json:"location"`
	Headline       string `json:"headline"`
	Summary        string `json:"summary"`
	LinkedIn       string `json:"linkedin"`
	GitHub         string `json:"github"`
	Portfolio      string `json:"portfolio"`
	LeetCode       string `json:"leetcode"`
	YouTube        string `json:"youtube"`
	Skills         Skills `json:"skills"`
	WorkExperience []any  `json:"workExperience"`
	Education      []any  `json:"education"`
	Projects       []any  `json:"projects"`
	Certifications []any  `json:"certifications"`
	Confidence     int    `json:"confidence"`
}
