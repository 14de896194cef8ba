package model

import (
	"errors"
	"fmt"
	"strings"
)

// ResumeDocument represents the canonical single-page resume payload.
type ResumeDocument struct {
	PersonalInfo PersonalInfo     `json:"personal_info"`
	Summary      string           `json:"summary"`
	Highlights   []string         `json:"highlights"`
	Experience   []ExperienceItem `json:"experience"`
	Projects     []ProjectItem    `json:"projects"`
	Education    []EducationItem  `json:"education"`
	Skills       []string         `json:"skills"`
	IsStudent    bool             `json:"is_student"`
}

// PersonalInfo captures top-of-resume contact and identity details.
type PersonalInfo struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// ExperienceItem represents a work history entry.
type ExperienceItem struct {
	Company  string   `json:"company"`
	Role     string   `json:"role"`
	Duration string   `json:"duration"`
	Location string   `json:"location,omitempty"`
	Bullets  []string `json:"bullets"`
}

// ProjectItem represents a notable project.
type ProjectItem struct {
	Name         string   `json:"name"`
	Technologies []string `json:"technologies"`
	Description  string   `json:"description"`
	Link         string   `json:"link,omitempty"`
}

// EducationItem represents an education entry. It is used both for
// caller-supplied entries and for model output.
type EducationItem struct {
	Institution string   `json:"institution"`
	Degree      string   `json:"degree"`
	Duration    string   `json:"duration"`
	Details     []string `json:"details,omitempty"`
	GPA         string   `json:"gpa,omitempty"`
	Coursework  []string `json:"coursework,omitempty"`
	Honors      []string `json:"honors,omitempty"`
}

// ManualExperienceItem is a caller-supplied work history fact. The
// description is raw text the model may reword into bullets.
type ManualExperienceItem struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// ContactOverrides are caller-supplied contact fields. Non-empty values
// always replace whatever the model produced.
type ContactOverrides struct {
	LinkedIn string
	Email    string
	Phone    string
}

// SynthesisInput bundles everything the synthesizer needs for one request.
type SynthesisInput struct {
	RepoSummary      string
	ManualExperience []ManualExperienceItem
	ManualEducation  []EducationItem
	ManualHighlights []string
	IsStudent        bool
	Contact          ContactOverrides
}

// Validate enforces required fields on a ResumeDocument.
func (d ResumeDocument) Validate() error {
	if strings.TrimSpace(d.PersonalInfo.FullName) == "" {
		return errors.New("personal_info.full_name is required")
	}
	for i, exp := range d.Experience {
		if strings.TrimSpace(exp.Company) == "" {
			return fmt.Errorf("experience[%d].company is required", i)
		}
		if strings.TrimSpace(exp.Role) == "" {
			return fmt.Errorf("experience[%d].role is required", i)
		}
	}
	for i, project := range d.Projects {
		if strings.TrimSpace(project.Name) == "" {
			return fmt.Errorf("projects[%d].name is required", i)
		}
	}
	for i, edu := range d.Education {
		if strings.TrimSpace(edu.Institution) == "" {
			return fmt.Errorf("education[%d].institution is required", i)
		}
	}
	return nil
}

// HasManualData reports whether the input carries any caller-supplied facts.
func (in SynthesisInput) HasManualData() bool {
	return len(in.ManualExperience) > 0 || len(in.ManualEducation) > 0 || len(in.ManualHighlights) > 0
}
