package render

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"resumegenius-backend/internal/extract"
	"resumegenius-backend/resume/model"
)

func sampleDocument() model.ResumeDocument {
	return model.ResumeDocument{
		PersonalInfo: model.PersonalInfo{
			FullName: "Ada Lovelace",
			Email:    "ada@example.com",
			LinkedIn: "https://linkedin.com/in/ada",
		},
		Summary:    "Engineer building analytical engines.",
		Highlights: []string{"Wrote the first published algorithm"},
		Experience: []model.ExperienceItem{{
			Company:  "Analytical Engines Ltd",
			Role:     "Engineer",
			Duration: "1842-1843",
			Bullets:  []string{"Designed Bernoulli number routine"},
		}},
		Projects: []model.ProjectItem{{
			Name:         "note-g",
			Technologies: []string{"Punch cards", "Math"},
			Description:  "Annotated translation.",
			Link:         "https://github.com/ada/note-g",
		}},
		Education: []model.EducationItem{{
			Institution: "Home Tutoring",
			Degree:      "Mathematics",
			Duration:    "1830-1835",
			Coursework:  []string{"Calculus"},
		}},
		Skills: []string{"Languages: Analytical Engine"},
	}
}

func TestRenderHTMLContainsSections(t *testing.T) {
	out, err := RenderHTML(sampleDocument())
	require.NoError(t, err)
	html := string(out)

	for _, want := range []string{
		"<h1>Ada Lovelace</h1>",
		"<span>ada@example.com</span><span>https://linkedin.com/in/ada</span>",
		"Summary", "Highlights", "Experience", "Projects", "Education", "Skills",
		"Engineer, Analytical Engines Ltd",
		"Punch cards, Math",
		"Coursework: Calculus",
		"#" + HeadingColor,
	} {
		assert.Contains(t, html, want)
	}
}

// headings returns the text of every <h2> in document order.
func headings(t *testing.T, page []byte) []string {
	t.Helper()
	root, err := html.Parse(strings.NewReader(string(page)))
	require.NoError(t, err)

	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "h2" && n.FirstChild != nil {
			out = append(out, strings.TrimSpace(n.FirstChild.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func TestRenderHTMLSectionOrder(t *testing.T) {
	doc := sampleDocument()
	out, err := RenderHTML(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Summary", "Highlights", "Experience", "Projects", "Education", "Skills"}, headings(t, out))

	doc.IsStudent = true
	out, err = RenderHTML(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Summary", "Highlights", "Education", "Experience", "Projects", "Skills"}, headings(t, out))
}

func TestRenderHTMLOmitsEmptySections(t *testing.T) {
	out, err := RenderHTML(model.ResumeDocument{PersonalInfo: model.PersonalInfo{FullName: "Solo"}})
	require.NoError(t, err)
	html := string(out)
	for _, heading := range []string{"Summary", "Highlights", "Experience", "Projects", "Education", "Skills"} {
		assert.NotContains(t, html, "<h2>"+heading+"</h2>")
	}
	assert.NotContains(t, html, `class="contact"`)
}

func TestRenderHTMLEscapesContent(t *testing.T) {
	doc := sampleDocument()
	doc.Summary = `<script>alert("x")</script>`
	out, err := RenderHTML(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
	assert.Contains(t, string(out), "&lt;script&gt;")
}

func TestRenderHTMLRequiresName(t *testing.T) {
	_, err := RenderHTML(model.ResumeDocument{})
	assert.True(t, errors.Is(err, ErrRender))
}

func TestPDFRendererWithChrome(t *testing.T) {
	bin := os.Getenv("CHROME_BIN")
	if bin == "" {
		t.Skip("CHROME_BIN not set")
	}
	r := NewPDFRenderer(bin, 30*time.Second)
	defer func() { _ = r.Close() }()

	data, err := r.Render(context.Background(), sampleDocument())
	require.NoError(t, err)
	report, err := extract.Inspect(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Pages)
}

func TestVerifyRejectsNonPDF(t *testing.T) {
	err := verify(context.Background(), []byte("nope"), "Ada")
	assert.True(t, errors.Is(err, ErrRender))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, containsFold("ADA  LOVE\nLACE resume", "Ada Lovelace"))
	assert.False(t, containsFold("Grace Hopper", "Ada Lovelace"))
}
