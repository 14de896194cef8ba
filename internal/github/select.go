package github

import (
	"sort"
	"strings"
)

const (
	// MaxCandidates caps the ranked high-quality/notable-fork selection.
	MaxCandidates = 8
	// MinSelected triggers the recency backfill when fewer repos were selected.
	MinSelected = 3
	// MaxBackfilled is the total cap once the backfill has run.
	MaxBackfilled = 5
	// NotableForkStars is the star count that makes a fork worth listing.
	NotableForkStars = 2
)

// SelectRepos picks the repositories worth describing in a summary.
//
// Non-fork repos with a description and forks with at least NotableForkStars
// stars are ranked by stars then last update, both descending, and the top
// MaxCandidates are kept. Ties keep input order. When fewer than MinSelected
// survive, the remaining repos are appended most-recently-updated first until
// MaxBackfilled are present. No repo appears twice.
func SelectRepos(repos []Repo) []Repo {
	seen := make(map[string]struct{}, len(repos))
	unique := make([]int, 0, len(repos))
	for i, r := range repos {
		if _, dup := seen[repoKey(r)]; dup {
			continue
		}
		seen[repoKey(r)] = struct{}{}
		unique = append(unique, i)
	}

	candidates := make([]int, 0, len(unique))
	for _, i := range unique {
		if isHighQuality(repos[i]) || isNotableFork(repos[i]) {
			candidates = append(candidates, i)
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		ra, rb := repos[candidates[a]], repos[candidates[b]]
		if ra.StargazersCount != rb.StargazersCount {
			return ra.StargazersCount > rb.StargazersCount
		}
		return ra.UpdatedAt.After(rb.UpdatedAt)
	})
	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}

	if len(candidates) < MinSelected {
		candidates = backfill(repos, unique, candidates)
	}

	out := make([]Repo, 0, len(candidates))
	for _, idx := range candidates {
		out = append(out, repos[idx])
	}
	return out
}

func backfill(repos []Repo, pool, selected []int) []int {
	taken := make(map[int]struct{}, len(selected))
	for _, idx := range selected {
		taken[idx] = struct{}{}
	}
	remaining := make([]int, 0, len(pool))
	for _, i := range pool {
		if _, ok := taken[i]; !ok {
			remaining = append(remaining, i)
		}
	}
	sort.SliceStable(remaining, func(a, b int) bool {
		return repos[remaining[a]].UpdatedAt.After(repos[remaining[b]].UpdatedAt)
	})
	for _, idx := range remaining {
		if len(selected) >= MaxBackfilled {
			break
		}
		selected = append(selected, idx)
	}
	return selected
}

func isHighQuality(r Repo) bool {
	return !r.Fork && strings.TrimSpace(r.Description) != ""
}

func isNotableFork(r Repo) bool {
	return r.Fork && r.StargazersCount >= NotableForkStars
}

func repoKey(r Repo) string {
	if r.FullName != "" {
		return strings.ToLower(r.FullName)
	}
	return strings.ToLower(r.Name)
}
