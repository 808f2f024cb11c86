package actions

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	logging "actions-graph/internal/infra/log"

	"github.com/google/go-github/v50/github"
	"go.uber.org/zap"
)

// ListRepositories pages through every repository of an org or a user.
// Exactly one of org and user must be non-empty.
func (c *Client) ListRepositories(ctx context.Context, org, user string) ([]*github.Repository, error) {
	var allRepos []*github.Repository

	page := 0
	for {
		var (
			repos []*github.Repository
			res   *github.Response
		)

		err := c.call(ctx, "ListRepositories", func() (*github.Response, error) {
			var err error
			if org != "" {
				opts := &github.RepositoryListByOrgOptions{
					ListOptions: github.ListOptions{Page: page, PerPage: perPage},
					Type:        "all",
				}
				repos, res, err = c.gh.Repositories.ListByOrg(ctx, org, opts)
			} else {
				opts := &github.RepositoryListOptions{
					ListOptions: github.ListOptions{Page: page, PerPage: perPage},
					Type:        "all",
				}
				repos, res, err = c.gh.Repositories.List(ctx, user, opts)
			}
			return res, err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories: %w", err)
		}

		allRepos = append(allRepos, repos...)
		logging.LogInfo("fetched repository page",
			zap.Int("page", page),
			zap.Int("repos", len(allRepos)))

		if res.NextPage == 0 {
			break
		}
		page = res.NextPage
	}

	return allRepos, nil
}

// ParseInclude splits a comma-separated "owner/repo" list.
func ParseInclude(include string) []string {
	repos := strings.Split(include, ",")
	for i, repo := range repos {
		repos[i] = strings.TrimSpace(repo)
	}
	return repos
}

func parseIncludeFromReader(input io.Reader) ([]string, error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	repos := make([]string, 0, len(lines))
	for _, line := range lines {
		if repo := strings.TrimSpace(line); repo != "" {
			repos = append(repos, repo)
		}
	}
	return repos, nil
}

func buildFilterMap(repos []string) (map[string]bool, error) {
	filter := make(map[string]bool)
	for _, repo := range repos {
		if !strings.Contains(repo, "/") {
			return nil, fmt.Errorf("invalid repository name %q, must be in the format 'owner/repo'", repo)
		}
		filter[repo] = true
	}
	return filter, nil
}

// FilterRepositories narrows repos down to those named in the comma list
// and/or the include file ("-" reads the list from stdin). With neither
// set, repos is returned untouched.
func FilterRepositories(repos []*github.Repository, repoList, reposFile string) ([]*github.Repository, error) {
	if repoList == "" && reposFile == "" {
		return repos, nil
	}

	var selected []string
	if repoList != "" {
		selected = ParseInclude(repoList)
	}

	if reposFile != "" {
		var input io.Reader
		if reposFile == "-" {
			input = os.Stdin
		} else {
			file, err := os.Open(reposFile)
			if err != nil {
				return nil, fmt.Errorf("failed to open include file: %w", err)
			}
			defer file.Close()
			input = file
		}

		fromFile, err := parseIncludeFromReader(input)
		if err != nil {
			return nil, fmt.Errorf("failed to read include file: %w", err)
		}
		selected = append(selected, fromFile...)
	}

	filter, err := buildFilterMap(selected)
	if err != nil {
		return nil, err
	}

	var filtered []*github.Repository
	for _, repo := range repos {
		if filter[repo.GetFullName()] {
			filtered = append(filtered, repo)
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("no matching repositories found based on the provided filter")
	}
	return filtered, nil
}
