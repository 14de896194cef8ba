package render

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"github.com/pkg/errors"

	"resumegenius-backend/resume/model"
)

//go:embed templates/resume.html
var templateFS embed.FS

var resumeTemplate = template.Must(
	template.New("resume.html").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/resume.html"),
)

type view struct {
	Doc     model.ResumeDocument
	Contact []string
	Theme   Theme
}

// RenderHTML renders a ResumeDocument into a standalone HTML page.
func RenderHTML(doc model.ResumeDocument) ([]byte, error) {
	return RenderHTMLWithTheme(doc, DefaultTheme)
}

// RenderHTMLWithTheme renders doc using the supplied theme.
func RenderHTMLWithTheme(doc model.ResumeDocument, theme Theme) ([]byte, error) {
	if strings.TrimSpace(doc.PersonalInfo.FullName) == "" {
		return nil, errors.Wrap(ErrRender, "full name is required")
	}
	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, view{Doc: doc, Contact: contactLine(doc.PersonalInfo), Theme: theme}); err != nil {
		return nil, errors.Wrapf(ErrRender, "execute template: %v", err)
	}
	return buf.Bytes(), nil
}

func contactLine(info model.PersonalInfo) []string {
	parts := make([]string, 0, 5)
	for _, value := range []string{info.Email, info.Phone, info.LinkedIn, info.GitHub, info.Portfolio} {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
