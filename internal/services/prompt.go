package services

import (
	"fmt"

	"google.golang.org/genai"

	"resumelens/resume-extractor/internal/models"
)

type PromptBuilder struct {
	variant models.SkillsVariant
}

func NewPromptBuilder(variant models.SkillsVariant) *PromptBuilder {
	return &PromptBuilder{variant: variant}
}

// BuildExtractionPrompt creates the single structured-extraction prompt.
// The resume text goes between sentinel markers so the model cannot
// confuse instructions with document content.
func (pb *PromptBuilder) BuildExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an elite resume data extraction engine. Convert the following resume text into a perfect JSON object matching this schema:

%s

Rules:
- Your response MUST be only the clean JSON object, starting with { and ending with }.
- No extra text, comments, or markdown.
- Use empty strings and empty arrays for anything the resume does not mention.
- Never invent data that is not in the resume.

---BEGIN RESUME---
%s
---END RESUME---`, pb.schemaDescription(), resumeText)
}

func (pb *PromptBuilder) schemaDescription() string {
	skills := `"skills": [string]`
	if pb.variant == models.SkillsCategorized {
		skills = `"skills": {"languages": [string], "frameworksLibraries": [string], "databases": [string], "cloudDevops": [string], "tools": [string]}`
	}

	return fmt.Sprintf(`{
  "firstname": string,
  "lastname": string,
  "email": string,
  "phone": string,
  "location": string,
  "headline": string,
  "summary": string,
  "linkedin": string,
  "github": string,
  "portfolio": string,
  "leetcode": string,
  "youtube": string,
  %s,
  "workExperience": [{"company": string, "title": string, "dateRange": string, "description": string}],
  "education": [{"institution": string, "degree": string, "dateRange": string}],
  "projects": [{"name": string, "description": string}],
  "certifications": [{"name": string, "issuingOrganization": string, "date": string}]
}`, skills)
}

// ResponseSchema is the machine-checkable counterpart of the prompt schema,
// enforced by the model API where supported. Confidence is deliberately
// absent: it is computed, never generated.
func (pb *PromptBuilder) ResponseSchema() *genai.Schema {
	properties := map[string]*genai.Schema{
		"firstname": stringSchema(),
		"lastname":  stringSchema(),
		"email":     stringSchema(),
		"phone":     stringSchema(),
		"location":  stringSchema(),
		"headline":  stringSchema(),
		"summary":   stringSchema(),
		"linkedin":  stringSchema(),
		"github":    stringSchema(),
		"portfolio": stringSchema(),
		"leetcode":  stringSchema(),
		"youtube":   stringSchema(),
		"skills":    pb.skillsSchema(),
		"workExperience": arraySchema(objectSchema(map[string]*genai.Schema{
			"company":     stringSchema(),
			"title":       stringSchema(),
			"dateRange":   stringSchema(),
			"description": stringSchema(),
		})),
		"education": arraySchema(objectSchema(map[string]*genai.Schema{
			"institution": stringSchema(),
			"degree":      stringSchema(),
			"dateRange":   stringSchema(),
		})),
		"projects": arraySchema(objectSchema(map[string]*genai.Schema{
			"name":        stringSchema(),
			"description": stringSchema(),
		})),
		"certifications": arraySchema(objectSchema(map[string]*genai.Schema{
			"name":                stringSchema(),
			"issuingOrganization": stringSchema(),
			"date":                stringSchema(),
		})),
	}

	return objectSchema(properties)
}

func (pb *PromptBuilder) skillsSchema() *genai.Schema {
	if pb.variant == models.SkillsCategorized {
		return objectSchema(map[string]*genai.Schema{
			"languages":           arraySchema(stringSchema()),
			"frameworksLibraries": arraySchema(stringSchema()),
			"databases":           arraySchema(stringSchema()),
			"cloudDevops":         arraySchema(stringSchema()),
			"tools":               arraySchema(stringSchema()),
		})
	}
	return arraySchema(stringSchema())
}

func stringSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeString}
}

func arraySchema(items *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: items}
}

func objectSchema(properties map[string]*genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: properties}
}
