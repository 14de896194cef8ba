package contract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"resumegenius-backend/resume/model"
)

// Page budget for a single-page resume.
const (
	MaxExperience = 3
	MaxBullets    = 3
	MaxProjects   = 3
	MaxHighlights = 2
	MaxSkills     = 4
)

// minAbbrev is the shortest token accepted as an abbreviation ("Univ", "Corp").
const minAbbrev = 3

// Apply enforces caller-owned fields and the page budget on a model-produced
// document. It runs after the document passed validation and never fails.
//
// Entries backed by manual input are placed ahead of model-only entries, so
// truncation cuts inferred content first.
func Apply(doc *model.ResumeDocument, in model.SynthesisInput) {
	doc.IsStudent = in.IsStudent
	applyContact(&doc.PersonalInfo, in.Contact)

	doc.Education = reconcileEducation(doc.Education, in.ManualEducation)
	doc.Experience = reconcileExperience(doc.Experience, in.ManualExperience)

	truncate(doc)
	fillEmptyLists(doc)
}

func applyContact(info *model.PersonalInfo, contact model.ContactOverrides) {
	if hasValue(contact.LinkedIn) {
		info.LinkedIn = strings.TrimSpace(contact.LinkedIn)
	}
	if hasValue(contact.Email) {
		info.Email = strings.TrimSpace(contact.Email)
	}
	if hasValue(contact.Phone) {
		info.Phone = strings.TrimSpace(contact.Phone)
	}
}

// reconcileEducation restores caller-supplied education facts verbatim.
// Manual entries come first in input order, each merged with the model entry
// it matches or added as-is; unmatched model entries follow.
func reconcileEducation(generated []model.EducationItem, manual []model.EducationItem) []model.EducationItem {
	manual = withValue(manual, func(e model.EducationItem) string { return e.Institution })
	if len(manual) == 0 {
		return generated
	}
	match, taken := pairUp(len(manual), len(generated),
		func(m, g int) bool { return sameName(manual[m].Institution, generated[g].Institution) },
		func(m, g int) bool { return similarName(manual[m].Institution, generated[g].Institution) },
		func(m, g int) bool {
			return sameFacts(manual[m].Degree, generated[g].Degree, manual[m].Duration, generated[g].Duration)
		},
		func(m, g int) bool {
			return len(manual) == len(generated) && m == g &&
				related(manual[m].Institution, generated[g].Institution, manual[m].Degree, generated[g].Degree, manual[m].Duration, generated[g].Duration)
		},
	)

	out := make([]model.EducationItem, 0, len(generated)+len(manual))
	for m, want := range manual {
		if match[m] < 0 {
			out = append(out, want)
			continue
		}
		got := generated[match[m]]
		got.Institution = want.Institution
		if hasValue(want.Degree) {
			got.Degree = want.Degree
		}
		if hasValue(want.Duration) {
			got.Duration = want.Duration
		}
		if hasValue(want.GPA) {
			got.GPA = want.GPA
		}
		if len(got.Coursework) == 0 {
			got.Coursework = want.Coursework
		}
		if len(got.Honors) == 0 {
			got.Honors = want.Honors
		}
		out = append(out, got)
	}
	for g, item := range generated {
		if !taken[g] {
			out = append(out, item)
		}
	}
	return out
}

// reconcileExperience restores company, role and duration for caller-supplied
// roles. Bullets stay as the model wrote them. Unmatched manual roles get
// their description as the only bullet. Ordering follows reconcileEducation.
func reconcileExperience(generated []model.ExperienceItem, manual []model.ManualExperienceItem) []model.ExperienceItem {
	manual = withValue(manual, func(e model.ManualExperienceItem) string { return e.Company })
	if len(manual) == 0 {
		return generated
	}
	match, taken := pairUp(len(manual), len(generated),
		func(m, g int) bool { return sameName(manual[m].Company, generated[g].Company) },
		func(m, g int) bool { return similarName(manual[m].Company, generated[g].Company) },
		func(m, g int) bool {
			return sameFacts(manual[m].Role, generated[g].Role, manual[m].Duration, generated[g].Duration)
		},
		func(m, g int) bool {
			return len(manual) == len(generated) && m == g &&
				related(manual[m].Company, generated[g].Company, manual[m].Role, generated[g].Role, manual[m].Duration, generated[g].Duration)
		},
	)

	out := make([]model.ExperienceItem, 0, len(generated)+len(manual))
	for m, want := range manual {
		if match[m] < 0 {
			item := model.ExperienceItem{
				Company:  want.Company,
				Role:     want.Role,
				Duration: want.Duration,
				Bullets:  []string{},
			}
			if hasValue(want.Description) {
				item.Bullets = []string{strings.TrimSpace(want.Description)}
			}
			out = append(out, item)
			continue
		}
		got := generated[match[m]]
		got.Company = want.Company
		if hasValue(want.Role) {
			got.Role = want.Role
		}
		if hasValue(want.Duration) {
			got.Duration = want.Duration
		}
		out = append(out, got)
	}
	for g, item := range generated {
		if !taken[g] {
			out = append(out, item)
		}
	}
	return out
}

// pairUp assigns each manual entry at most one generated entry. Every rule
// is tried across all unmatched entries before the next, looser rule.
func pairUp(nManual, nGenerated int, rules ...func(m, g int) bool) ([]int, []bool) {
	match := make([]int, nManual)
	for i := range match {
		match[i] = -1
	}
	taken := make([]bool, nGenerated)

	for _, rule := range rules {
		for m := range match {
			if match[m] >= 0 {
				continue
			}
			for g := 0; g < nGenerated; g++ {
				if !taken[g] && rule(m, g) {
					match[m] = g
					taken[g] = true
					break
				}
			}
		}
	}
	return match, taken
}

func withValue[T any](items []T, key func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if hasValue(key(item)) {
			out = append(out, item)
		}
	}
	return out
}

func sameName(a, b string) bool {
	return normalizeKey(a) == normalizeKey(b)
}

// similarName accepts abbreviated or extended names: "State Univ." matches
// "State University" and "Acme Corp" matches "Acme Corporation Inc".
func similarName(a, b string) bool {
	ta, tb := nameTokens(a), nameTokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return false
	}
	if len(ta) > len(tb) {
		ta, tb = tb, ta
	}
	for i, tok := range ta {
		if !tokenMatches(tok, tb[i]) {
			return false
		}
	}
	return true
}

func tokenMatches(a, b string) bool {
	if a == b {
		return true
	}
	short, long := a, b
	if len(short) > len(long) {
		short, long = long, short
	}
	return utf8.RuneCountInString(short) >= minAbbrev && strings.HasPrefix(long, short)
}

func nameTokens(value string) []string {
	return strings.FieldsFunc(strings.ToLower(value), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// sameFacts pairs entries whose title and duration both agree.
func sameFacts(wantTitle, gotTitle, wantDuration, gotDuration string) bool {
	if !hasValue(wantTitle) || !hasValue(wantDuration) {
		return false
	}
	return sameName(wantTitle, gotTitle) && sameName(wantDuration, gotDuration)
}

// related is the evidence required to pair same-position entries when the
// model returned one entry per manual entry: a shared name token, or an
// agreeing title or duration.
func related(wantName, gotName, wantTitle, gotTitle, wantDuration, gotDuration string) bool {
	if hasValue(wantTitle) && sameName(wantTitle, gotTitle) {
		return true
	}
	if hasValue(wantDuration) && sameName(wantDuration, gotDuration) {
		return true
	}
	seen := make(map[string]bool)
	for _, tok := range nameTokens(wantName) {
		seen[tok] = true
	}
	for _, tok := range nameTokens(gotName) {
		if seen[tok] {
			return true
		}
	}
	return false
}

func truncate(doc *model.ResumeDocument) {
	if len(doc.Experience) > MaxExperience {
		doc.Experience = doc.Experience[:MaxExperience]
	}
	for i := range doc.Experience {
		if len(doc.Experience[i].Bullets) > MaxBullets {
			doc.Experience[i].Bullets = doc.Experience[i].Bullets[:MaxBullets]
		}
	}
	if len(doc.Projects) > MaxProjects {
		doc.Projects = doc.Projects[:MaxProjects]
	}
	if len(doc.Highlights) > MaxHighlights {
		doc.Highlights = doc.Highlights[:MaxHighlights]
	}
	if len(doc.Skills) > MaxSkills {
		doc.Skills = doc.Skills[:MaxSkills]
	}
}

// fillEmptyLists replaces nil lists so the JSON response carries [] rather
// than null for every list the model may omit or send as null.
func fillEmptyLists(doc *model.ResumeDocument) {
	doc.Highlights = orEmpty(doc.Highlights)
	doc.Skills = orEmpty(doc.Skills)
	if doc.Experience == nil {
		doc.Experience = []model.ExperienceItem{}
	}
	if doc.Projects == nil {
		doc.Projects = []model.ProjectItem{}
	}
	if doc.Education == nil {
		doc.Education = []model.EducationItem{}
	}
	for i := range doc.Experience {
		doc.Experience[i].Bullets = orEmpty(doc.Experience[i].Bullets)
	}
	for i := range doc.Projects {
		doc.Projects[i].Technologies = orEmpty(doc.Projects[i].Technologies)
	}
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func normalizeKey(value string) string {
	return strings.ToLower(strings.Join(strings.Fields(value), " "))
}

func hasValue(value string) bool {
	return strings.TrimSpace(value) != ""
}
