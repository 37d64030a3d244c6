package issues

import (
	"context"
	"fmt"

	"github.com/google/go-github/v72/github"
)

// Fetcher lists sale issues straight from the GitHub API, used to rebuild
// the ledger without replaying workflow events.
type Fetcher struct {
	client *github.Client
	owner  string
	repo   string
}

// NewFetcher builds a Fetcher for owner/repo. An empty token works for
// public repositories at the cost of a lower rate limit.
func NewFetcher(token, owner, repo string) *Fetcher {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &Fetcher{client: client, owner: owner, repo: repo}
}

// All returns every issue in the repository, open and closed, oldest
// first. Pull requests are dropped since the issues API interleaves them.
func (f *Fetcher) All(ctx context.Context) ([]Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:     "all",
		Sort:      "created",
		Direction: "asc",
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	var out []Issue
	for {
		page, resp, err := f.client.Issues.ListByRepo(ctx, f.owner, f.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing issues for %s/%s: %w", f.owner, f.repo, err)
		}
		for _, is := range page {
			if is.IsPullRequest() {
				continue
			}
			out = append(out, fromGitHub(is))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

func fromGitHub(is *github.Issue) Issue {
	conv := Issue{
		Number: is.GetNumber(),
		Title:  is.GetTitle(),
		Body:   is.GetBody(),
	}
	for _, l := range is.Labels {
		conv.Labels = append(conv.Labels, Label{Name: l.GetName()})
	}
	return conv
}
