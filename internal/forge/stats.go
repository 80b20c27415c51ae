package forge

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"

	"git.home.luguber.info/inful/profilekit/internal/logfields"
)

// maxLanguages caps Stats.PrimaryLanguages.
const maxLanguages = 3

// Stats aggregates the account numbers shown in the metrics section.
//
// The zero value is the documented fallback when the API is unavailable:
// every count is 0 and no languages are listed.
type Stats struct {
	TotalRepos       int
	PublicRepos      int
	TotalStars       int
	TotalForks       int
	Followers        int
	Following        int
	PrimaryLanguages []string
	FetchedAt        time.Time
}

// StatsProvider fetches account statistics.
type StatsProvider interface {
	FetchStats(ctx context.Context, login string) (Stats, error)
}

// ComputeStats aggregates a profile and its repositories.
func ComputeStats(user User, repos []Repository, now time.Time) Stats {
	s := Stats{
		TotalRepos: len(repos),
		Followers:  user.Followers,
		Following:  user.Following,
		FetchedAt:  now,
	}

	counts := make(map[string]int)
	for _, r := range repos {
		if !r.Private {
			s.PublicRepos++
		}
		s.TotalStars += r.Stars
		s.TotalForks += r.Forks
		if r.Language != "" {
			counts[r.Language]++
		}
	}

	langs := make([]string, 0, len(counts))
	for l := range counts {
		langs = append(langs, l)
	}
	slices.SortFunc(langs, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	if len(langs) > maxLanguages {
		langs = langs[:maxLanguages]
	}
	s.PrimaryLanguages = langs
	return s
}

// FetchStats implements StatsProvider.
//
// When the profile cannot be fetched the zero Stats is returned together with
// the upstream error, so callers may render the fallback values. A failing
// repository listing only logs a warning and counts no repositories.
func (c *GitHubClient) FetchStats(ctx context.Context, login string) (Stats, error) {
	return c.fetchStats(ctx, login, time.Now)
}

func (c *GitHubClient) fetchStats(ctx context.Context, login string, now func() time.Time) (Stats, error) {
	user, err := c.GetUser(ctx, login)
	if err != nil {
		return Stats{}, err
	}

	repos, err := c.ListUserRepositories(ctx, login)
	if err != nil {
		slog.WarnContext(ctx, "Listing repositories failed; counting none",
			logfields.User(login),
			logfields.Error(err))
		repos = nil
	}

	return ComputeStats(*user, repos, now().UTC()), nil
}
