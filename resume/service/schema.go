package service

import "resumegenius-backend/internal/llm"

func stringSchema(description string) *llm.Schema {
	return &llm.Schema{Type: llm.TypeString, Description: description}
}

func stringList(description string) *llm.Schema {
	return &llm.Schema{Type: llm.TypeArray, Description: description, Items: &llm.Schema{Type: llm.TypeString}}
}

// optional marks a property the model may send as null.
func optional(s *llm.Schema) *llm.Schema {
	s.Nullable = true
	return s
}

func object(required []string, ordering []string, props map[string]*llm.Schema) *llm.Schema {
	return &llm.Schema{Type: llm.TypeObject, Properties: props, Required: required, Ordering: ordering}
}

// ResumeSchema describes the ResumeDocument JSON shape the model must emit.
func ResumeSchema() *llm.Schema {
	personal := object(
		[]string{"full_name"},
		[]string{"full_name", "email", "phone", "linkedin", "github", "portfolio"},
		map[string]*llm.Schema{
			"full_name": stringSchema("Candidate name as shown on the profile."),
			"email":     optional(stringSchema("")),
			"phone":     optional(stringSchema("")),
			"linkedin":  optional(stringSchema("")),
			"github":    optional(stringSchema("")),
			"portfolio": optional(stringSchema("")),
		},
	)
	experience := object(
		[]string{"company", "role", "duration", "bullets"},
		[]string{"company", "role", "duration", "location", "bullets"},
		map[string]*llm.Schema{
			"company":  stringSchema(""),
			"role":     stringSchema(""),
			"duration": stringSchema(""),
			"location": optional(stringSchema("")),
			"bullets":  stringList("At most 3 bullets."),
		},
	)
	project := object(
		[]string{"name", "technologies", "description"},
		[]string{"name", "technologies", "description", "link"},
		map[string]*llm.Schema{
			"name":         stringSchema(""),
			"technologies": stringList(""),
			"description":  stringSchema("At most 2 short sentences."),
			"link":         optional(stringSchema("")),
		},
	)
	education := object(
		[]string{"institution", "degree", "duration"},
		[]string{"institution", "degree", "duration", "details", "gpa", "coursework", "honors"},
		map[string]*llm.Schema{
			"institution": stringSchema(""),
			"degree":      stringSchema(""),
			"duration":    stringSchema(""),
			"details":     optional(stringList("")),
			"gpa":         optional(stringSchema("")),
			"coursework":  optional(stringList("")),
			"honors":      optional(stringList("")),
		},
	)

	return object(
		[]string{"personal_info", "summary", "experience", "projects", "education", "skills", "is_student"},
		[]string{"personal_info", "summary", "highlights", "experience", "projects", "education", "skills", "is_student"},
		map[string]*llm.Schema{
			"personal_info": personal,
			"summary":       stringSchema("At most 50 words."),
			"highlights":    optional(stringList("At most 2 entries.")),
			"experience":    {Type: llm.TypeArray, Items: experience},
			"projects":      {Type: llm.TypeArray, Items: project},
			"education":     {Type: llm.TypeArray, Items: education},
			"skills":        stringList("At most 4 lines, one category per line."),
			"is_student":    {Type: llm.TypeBoolean},
		},
	)
}
