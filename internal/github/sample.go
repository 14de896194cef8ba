package github

import "context"

const sampleSummary = `User: sample-dev
Name: Sample Developer
Bio: Backend engineer who likes small, well-tested services.
Public Repos: 4
Followers: 12

Top Repositories (Filtered for Quality):
- resume-gen-ai (Go): 14 stars. Updated: 2025-01-10. Generates single-page resumes from public profile data. [Link: https://github.com/sample-dev/resume-gen-ai]
- tiny-kv (Go): 6 stars. Updated: 2024-11-02. An embeddable key-value store with a write-ahead log. [Link: https://github.com/sample-dev/tiny-kv]
- dotfiles (Shell): 1 stars. Updated: 2024-08-19. No description [Link: https://github.com/sample-dev/dotfiles]`

// SampleSource returns a fixed summary without touching the network. It backs
// local demos when USE_REAL_GITHUB is off.
type SampleSource struct{}

// Summarize ignores the URL and returns the canned summary.
func (SampleSource) Summarize(ctx context.Context, profileURL string) Summary {
	_ = ctx
	return Summary{
		Username:  UsernameFromURL(profileURL),
		Text:      sampleSummary,
		Outcome:   OutcomeOK,
		HasData:   true,
		RepoCount: 3,
	}
}
