package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"resumegenius-backend/internal/shared/metrics"
	"resumegenius-backend/internal/shared/telemetry"
)

const maxDescriptionRunes = 300

// Outcome classifies how a summary was produced.
type Outcome string

const (
	OutcomeOK             Outcome = "ok"
	OutcomePartial        Outcome = "partial"
	OutcomeNotFound       Outcome = "not_found"
	OutcomeRateLimited    Outcome = "rate_limited"
	OutcomeTransportError Outcome = "transport_error"
	OutcomeInvalidURL     Outcome = "invalid_url"
)

// Summary is the prompt-ready text for one profile. Text is never empty for
// a failure outcome; it explains what went wrong instead.
type Summary struct {
	Username  string
	Text      string
	Outcome   Outcome
	HasData   bool
	RepoCount int
}

// Summarizer turns a profile URL into a bounded plain-text summary.
type Summarizer struct {
	Client *Client
}

// NewSummarizer wraps a Client.
func NewSummarizer(client *Client) *Summarizer {
	return &Summarizer{Client: client}
}

// Summarize never fails: every upstream problem degrades to an explanatory
// Summary so the caller can proceed on manual input alone.
func (s *Summarizer) Summarize(ctx context.Context, profileURL string) Summary {
	summary := s.summarize(ctx, profileURL)
	metrics.IncGitHubFetch(string(summary.Outcome))
	telemetry.Info("github.summary", map[string]any{
		"username":   summary.Username,
		"outcome":    string(summary.Outcome),
		"repo_count": summary.RepoCount,
	})
	return summary
}

func (s *Summarizer) summarize(ctx context.Context, profileURL string) Summary {
	username := UsernameFromURL(profileURL)
	if username == "" {
		return Summary{Outcome: OutcomeInvalidURL, Text: fmt.Sprintf("Could not determine a GitHub username from %q.", profileURL)}
	}

	user, status, err := s.Client.FetchUser(ctx, username)
	if err != nil && status == 0 {
		return transportFailure(username, err)
	}
	switch status {
	case http.StatusNotFound:
		return Summary{Username: username, Outcome: OutcomeNotFound, Text: fmt.Sprintf("GitHub User %s not found.", username)}
	case http.StatusForbidden, http.StatusTooManyRequests:
		return Summary{Username: username, Outcome: OutcomeRateLimited, Text: "GitHub API Rate Limit Exceeded. Using minimal data."}
	}

	var parts []string
	profileOK := status == http.StatusOK && err == nil
	if profileOK {
		parts = append(parts, profileLines(user)...)
	} else {
		telemetry.Warn("github.profile_unavailable", map[string]any{"username": username, "status": status, "error": err})
	}

	repos, status, err := s.Client.FetchRepos(ctx, username)
	if err != nil && status == 0 {
		return transportFailure(username, err)
	}
	var selected []Repo
	reposOK := status == http.StatusOK && err == nil
	if reposOK {
		selected = SelectRepos(repos)
	} else {
		telemetry.Warn("github.repos_unavailable", map[string]any{"username": username, "status": status, "error": err})
	}
	if len(selected) > 0 {
		parts = append(parts, "", "Top Repositories (Filtered for Quality):")
		for _, r := range selected {
			parts = append(parts, repoLine(r))
		}
	}

	outcome := OutcomeOK
	if !profileOK || !reposOK {
		outcome = OutcomePartial
	}
	return Summary{
		Username:  username,
		Text:      strings.TrimSpace(strings.Join(parts, "\n")),
		Outcome:   outcome,
		HasData:   profileOK || len(selected) > 0,
		RepoCount: len(selected),
	}
}

// UsernameFromURL returns the trailing path segment of a profile URL.
func UsernameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	path := trimmed
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Host != "" {
		path = parsed.Path
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return ""
	}
	segments := strings.Split(path, "/")
	return segments[len(segments)-1]
}

func profileLines(u User) []string {
	return []string{
		"User: " + u.Login,
		"Name: " + orDefault(u.Name, "N/A"),
		"Bio: " + orDefault(u.Bio, "N/A"),
		fmt.Sprintf("Public Repos: %d", u.PublicRepos),
		fmt.Sprintf("Followers: %d", u.Followers),
	}
}

func repoLine(r Repo) string {
	updated := "unknown"
	if !r.UpdatedAt.IsZero() {
		updated = r.UpdatedAt.UTC().Format("2006-01-02")
	}
	return fmt.Sprintf("- %s (%s): %d stars. Updated: %s. %s [Link: %s]",
		r.Name,
		orDefault(r.Language, "Unknown"),
		r.StargazersCount,
		updated,
		orDefault(truncateRunes(strings.TrimSpace(r.Description), maxDescriptionRunes), "No description"),
		r.HTMLURL,
	)
}

func transportFailure(username string, err error) Summary {
	telemetry.Error("github.transport_error", map[string]any{"username": username, "error": err})
	return Summary{
		Username: username,
		Outcome:  OutcomeTransportError,
		Text:     fmt.Sprintf("Error fetching GitHub data: %v", err),
	}
}

func orDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimSpace(string(runes[:limit])) + "..."
}
