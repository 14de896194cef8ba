package service

import (
	"fmt"
	"strings"

	"resumegenius-backend/internal/llm"
	"resumegenius-backend/resume/model"
)

const noRepositoryData = "No repository data available."

// BuildPrompt renders the user prompt for one synthesis request.
func BuildPrompt(set llm.PromptSet, in model.SynthesisInput) string {
	summary := strings.TrimSpace(in.RepoSummary)
	if summary == "" {
		summary = noRepositoryData
	}
	mode := set.ProfessionalMode
	if in.IsStudent {
		mode = set.StudentMode
	}
	return llm.Fill(set.User, map[string]string{
		"REPO_SUMMARY":      summary,
		"MANUAL_EXPERIENCE": manualExperienceBlock(in.ManualExperience),
		"MANUAL_EDUCATION":  manualEducationBlock(in.ManualEducation),
		"MANUAL_HIGHLIGHTS": manualHighlightsBlock(in.ManualHighlights),
		"MODE":              mode,
	})
}

func manualExperienceBlock(items []model.ManualExperienceItem) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("MANUAL EXPERIENCE INPUT:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- Company: %s, Role: %s, Duration: %s, Details: %s\n",
			item.Company, item.Role, item.Duration, item.Description)
	}
	return b.String()
}

func manualEducationBlock(items []model.EducationItem) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("MANUAL EDUCATION INPUT (use heavily, refine wording but keep every fact):\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- School: %s, Degree: %s, Time: %s", item.Institution, item.Degree, item.Duration)
		if item.GPA != "" {
			fmt.Fprintf(&b, ", GPA: %s", item.GPA)
		}
		if len(item.Coursework) > 0 {
			fmt.Fprintf(&b, ", Courses: %s", strings.Join(item.Coursework, "; "))
		}
		if len(item.Honors) > 0 {
			fmt.Fprintf(&b, ", Honors: %s", strings.Join(item.Honors, "; "))
		}
		if len(item.Details) > 0 {
			fmt.Fprintf(&b, ", Details: %s", strings.Join(item.Details, "; "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func manualHighlightsBlock(items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("MANUAL HIGHLIGHTS INPUT (refine for clarity):\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %s\n", item)
	}
	return b.String()
}
