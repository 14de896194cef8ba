package llm

import (
	_ "embed"
	"strings"
)

// DefaultPromptVersion is used when no version is configured.
const DefaultPromptVersion = "v1"

var (
	//go:embed prompts/resume_system_v1.txt
	resumeSystemV1 string
	//go:embed prompts/resume_user_v1.txt
	resumeUserV1 string
	//go:embed prompts/mode_student_v1.txt
	modeStudentV1 string
	//go:embed prompts/mode_professional_v1.txt
	modeProfessionalV1 string
)

// PromptSet groups the texts that make up one resume generation request.
type PromptSet struct {
	Version          string
	System           string
	User             string
	StudentMode      string
	ProfessionalMode string
}

// PromptTemplate returns the prompt set for version and whether the version was recognized.
// Unknown versions fall back to v1.
func PromptTemplate(version string) (PromptSet, bool) {
	switch strings.TrimSpace(version) {
	case "v1", "":
		return promptSetV1(), true
	default:
		return promptSetV1(), false
	}
}

func promptSetV1() PromptSet {
	return PromptSet{
		Version:          "v1",
		System:           strings.TrimSpace(resumeSystemV1),
		User:             resumeUserV1,
		StudentMode:      strings.TrimSpace(modeStudentV1),
		ProfessionalMode: strings.TrimSpace(modeProfessionalV1),
	}
}

// Fill replaces {{KEY}} placeholders in template with values.
func Fill(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for key, value := range values {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
