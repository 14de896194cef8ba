package resumes

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin/binding"

	"resumegenius-backend/resume/model"
)

type manualExperienceDTO struct {
	Company     string `json:"company" binding:"required,max=200"`
	Role        string `json:"role" binding:"required,max=200"`
	Duration    string `json:"duration" binding:"max=100"`
	Description string `json:"description" binding:"max=4000"`
}

type manualEducationDTO struct {
	Institution string   `json:"institution" binding:"required,max=200"`
	Degree      string   `json:"degree" binding:"max=200"`
	Duration    string   `json:"duration" binding:"max=100"`
	Details     []string `json:"details" binding:"max=10"`
	GPA         string   `json:"gpa" binding:"max=20"`
	Coursework  []string `json:"coursework" binding:"max=20"`
	Honors      []string `json:"honors" binding:"max=10"`
}

// analyzeRequest is the inbound payload for POST /analyze.
type analyzeRequest struct {
	GitHubURL        string                `json:"github_url" binding:"omitempty,http_url"`
	LinkedInURL      string                `json:"linkedin_url" binding:"omitempty,url"`
	Email            string                `json:"email" binding:"omitempty,email"`
	Phone            string                `json:"phone" binding:"omitempty,max=40"`
	ManualExperience []manualExperienceDTO `json:"manual_experience" binding:"max=10,dive"`
	ManualEducation  []manualEducationDTO  `json:"manual_education" binding:"max=5,dive"`
	ManualHighlights []string              `json:"manual_highlights" binding:"max=10,dive,max=500"`
	IsStudent        bool                  `json:"is_student"`
}

func (r analyzeRequest) toInput() AnalyzeInput {
	in := AnalyzeInput{
		GitHubURL: strings.TrimSpace(r.GitHubURL),
		Synthesis: model.SynthesisInput{
			ManualHighlights: trimAll(r.ManualHighlights),
			IsStudent:        r.IsStudent,
			Contact: model.ContactOverrides{
				LinkedIn: strings.TrimSpace(r.LinkedInURL),
				Email:    strings.TrimSpace(r.Email),
				Phone:    strings.TrimSpace(r.Phone),
			},
		},
	}
	for _, exp := range r.ManualExperience {
		in.Synthesis.ManualExperience = append(in.Synthesis.ManualExperience, model.ManualExperienceItem{
			Company:     strings.TrimSpace(exp.Company),
			Role:        strings.TrimSpace(exp.Role),
			Duration:    strings.TrimSpace(exp.Duration),
			Description: strings.TrimSpace(exp.Description),
		})
	}
	for _, edu := range r.ManualEducation {
		in.Synthesis.ManualEducation = append(in.Synthesis.ManualEducation, model.EducationItem{
			Institution: strings.TrimSpace(edu.Institution),
			Degree:      strings.TrimSpace(edu.Degree),
			Duration:    strings.TrimSpace(edu.Duration),
			Details:     trimAll(edu.Details),
			GPA:         strings.TrimSpace(edu.GPA),
			Coursework:  trimAll(edu.Coursework),
			Honors:      trimAll(edu.Honors),
		})
	}
	return in
}

// DecodeAnalyzeRequest reads an analyze payload outside of an HTTP request,
// applying the same validation rules as POST /analyze.
func DecodeAnalyzeRequest(r io.Reader) (AnalyzeInput, error) {
	useJSONFieldNames()
	var req analyzeRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return AnalyzeInput{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		return AnalyzeInput{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return req.toInput(), nil
}

func trimAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
