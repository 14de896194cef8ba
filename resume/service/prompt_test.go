package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumegenius-backend/internal/llm"
	"resumegenius-backend/resume/model"
)

func TestBuildPromptIncludesManualSections(t *testing.T) {
	set, _ := llm.PromptTemplate("v1")
	prompt := BuildPrompt(set, model.SynthesisInput{
		RepoSummary: "User: octocat",
		ManualExperience: []model.ManualExperienceItem{
			{Company: "Acme", Role: "SRE", Duration: "2021-2023", Description: "Kept things up"},
		},
		ManualEducation: []model.EducationItem{
			{Institution: "MIT", Degree: "BSc", Duration: "2017-2021", GPA: "3.9", Coursework: []string{"OS", "Compilers"}},
		},
		ManualHighlights: []string{"Speaker at GopherCon"},
	})

	assert.Contains(t, prompt, "User: octocat")
	assert.Contains(t, prompt, "- Company: Acme, Role: SRE, Duration: 2021-2023, Details: Kept things up")
	assert.Contains(t, prompt, "keep every fact")
	assert.Contains(t, prompt, "- School: MIT, Degree: BSc, Time: 2017-2021, GPA: 3.9, Courses: OS; Compilers")
	assert.Contains(t, prompt, "- Speaker at GopherCon")
	assert.Contains(t, prompt, "PROFESSIONAL MODE")
	assert.NotContains(t, prompt, "{{")
}

func TestBuildPromptOmitsEmptySections(t *testing.T) {
	set, _ := llm.PromptTemplate("v1")
	prompt := BuildPrompt(set, model.SynthesisInput{RepoSummary: "x", IsStudent: true})

	assert.NotContains(t, prompt, "MANUAL EXPERIENCE")
	assert.NotContains(t, prompt, "MANUAL EDUCATION")
	assert.NotContains(t, prompt, "MANUAL HIGHLIGHTS")
	assert.Contains(t, prompt, "STUDENT MODE")
	assert.False(t, strings.Contains(prompt, "PROFESSIONAL MODE"))
}

func TestResumeSchemaAcceptsModelDocument(t *testing.T) {
	doc := map[string]any{
		"personal_info": map[string]any{"full_name": "Ada"},
		"summary":       "s",
		"experience":    []any{},
		"projects":      []any{},
		"education":     []any{map[string]any{"institution": "X", "degree": "Y", "duration": "Z"}},
		"skills":        []any{"Go"},
		"is_student":    false,
	}
	assert.NoError(t, ResumeSchema().Validate(doc))

	delete(doc, "skills")
	assert.Error(t, ResumeSchema().Validate(doc))
}

func TestResumeSchemaNullability(t *testing.T) {
	education := map[string]any{
		"institution": "X", "degree": "Y", "duration": "Z",
		"details": nil, "gpa": nil, "coursework": nil, "honors": nil,
	}
	doc := map[string]any{
		"personal_info": map[string]any{"full_name": "Ada", "email": nil, "phone": nil, "linkedin": nil, "github": nil, "portfolio": nil},
		"summary":       "s",
		"highlights":    nil,
		"experience":    []any{map[string]any{"company": "A", "role": "R", "duration": "D", "location": nil, "bullets": []any{}}},
		"projects":      []any{map[string]any{"name": "p", "technologies": []any{}, "description": "d", "link": nil}},
		"education":     []any{education},
		"skills":        []any{"Go"},
		"is_student":    false,
	}
	require.NoError(t, ResumeSchema().Validate(doc))

	doc["personal_info"] = map[string]any{"full_name": nil}
	var schemaErr *llm.SchemaError
	require.True(t, errors.As(ResumeSchema().Validate(doc), &schemaErr))
	assert.Equal(t, "$.personal_info.full_name", schemaErr.Path)

	doc["personal_info"] = map[string]any{"full_name": "Ada"}
	doc["summary"] = nil
	assert.Error(t, ResumeSchema().Validate(doc))
}
