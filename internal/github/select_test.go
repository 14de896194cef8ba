package github

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func repo(name string, stars int, daysAgo int, fork bool, desc string) Repo {
	return Repo{
		Name:            name,
		FullName:        "octocat/" + name,
		Fork:            fork,
		Description:     desc,
		StargazersCount: stars,
		UpdatedAt:       baseTime.AddDate(0, 0, -daysAgo),
		HTMLURL:         "https://github.com/octocat/" + name,
	}
}

func names(repos []Repo) []string {
	out := make([]string, 0, len(repos))
	for _, r := range repos {
		out = append(out, r.Name)
	}
	return out
}

func TestSelectReposRanksByStarsThenRecency(t *testing.T) {
	repos := []Repo{
		repo("old-popular", 10, 300, false, "popular"),
		repo("new-popular", 10, 1, false, "popular too"),
		repo("small", 1, 0, false, "small thing"),
		repo("notable-fork", 5, 20, true, ""),
		repo("quiet-fork", 1, 0, true, "fork with a description"),
		repo("no-desc", 50, 0, false, ""),
	}

	got := SelectRepos(repos)
	assert.Equal(t, []string{"new-popular", "old-popular", "notable-fork", "small"}, names(got))
}

func TestSelectReposCapsCandidates(t *testing.T) {
	var repos []Repo
	for i := 0; i < 20; i++ {
		repos = append(repos, repo(fmt.Sprintf("r%02d", i), i, i, false, "described"))
	}

	got := SelectRepos(repos)
	require.Len(t, got, MaxCandidates)
	assert.Equal(t, "r19", got[0].Name)
	assert.Equal(t, "r12", got[MaxCandidates-1].Name)
}

func TestSelectReposTiesKeepInputOrder(t *testing.T) {
	repos := []Repo{
		repo("b", 3, 5, false, "x"),
		repo("a", 3, 5, false, "x"),
		repo("c", 3, 5, false, "x"),
	}
	assert.Equal(t, []string{"b", "a", "c"}, names(SelectRepos(repos)))
}

func TestSelectReposIsDeterministic(t *testing.T) {
	repos := []Repo{
		repo("a", 2, 3, false, "x"),
		repo("b", 2, 3, true, ""),
		repo("c", 7, 9, false, "x"),
		repo("d", 0, 1, false, ""),
		repo("e", 2, 3, false, "y"),
	}
	first := names(SelectRepos(repos))
	for i := 0; i < 25; i++ {
		assert.Equal(t, first, names(SelectRepos(repos)))
	}
}

func TestSelectReposBackfillsByRecency(t *testing.T) {
	repos := []Repo{
		repo("described-1", 0, 30, false, "first"),
		repo("described-2", 4, 60, false, "second"),
		repo("fork-1", 0, 2, true, ""),
		repo("undescribed-old", 0, 400, false, ""),
		repo("undescribed-new", 0, 1, false, ""),
		repo("undescribed-mid", 0, 10, false, ""),
		repo("undescribed-older", 0, 500, false, ""),
	}

	got := SelectRepos(repos)
	assert.Equal(t, []string{"described-2", "described-1", "undescribed-new", "fork-1", "undescribed-mid"}, names(got))
}

func TestSelectReposBackfillNeverDuplicates(t *testing.T) {
	repos := []Repo{
		repo("only", 0, 1, false, "described"),
		repo("only", 0, 1, false, "described"),
		repo("other", 0, 2, false, ""),
	}

	got := SelectRepos(repos)
	assert.Equal(t, []string{"only", "other"}, names(got))
}

func TestSelectReposReachesMinimumWhenPoolAllows(t *testing.T) {
	for total := 0; total <= 12; total++ {
		var repos []Repo
		for i := 0; i < total; i++ {
			repos = append(repos, repo(fmt.Sprintf("r%d", i), 0, i, i%2 == 0, ""))
		}
		got := SelectRepos(repos)
		if total >= MinSelected {
			assert.GreaterOrEqual(t, len(got), MinSelected, "total=%d", total)
		} else {
			assert.Len(t, got, total)
		}
		assert.LessOrEqual(t, len(got), MaxBackfilled)
	}
}

func TestSelectReposEmpty(t *testing.T) {
	assert.Empty(t, SelectRepos(nil))
}
