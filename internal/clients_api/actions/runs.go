package actions

import (
	"context"
	"fmt"

	logging "actions-graph/internal/infra/log"

	"github.com/google/go-github/v50/github"
	"go.uber.org/zap"
)

// ListWorkflowRuns pages through a repository's workflow runs matching the
// created query, e.g. ">=2024-01-01".
func (c *Client) ListWorkflowRuns(ctx context.Context, owner, repo, createdQuery string) ([]*github.WorkflowRun, error) {
	var allRuns []*github.WorkflowRun

	page := 0
	for {
		var (
			runs *github.WorkflowRuns
			res  *github.Response
		)

		err := c.call(ctx, "ListWorkflowRuns", func() (*github.Response, error) {
			var err error
			opts := &github.ListWorkflowRunsOptions{
				Created:     createdQuery,
				ListOptions: github.ListOptions{Page: page, PerPage: perPage},
			}
			runs, res, err = c.gh.Actions.ListRepositoryWorkflowRuns(ctx, owner, repo, opts)
			return res, err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list workflow runs for %s/%s: %w", owner, repo, err)
		}

		allRuns = append(allRuns, runs.WorkflowRuns...)

		if res.NextPage == 0 {
			break
		}
		page = res.NextPage
	}

	logging.LogInfo("fetched workflow runs",
		zap.String("repo", owner+"/"+repo),
		zap.Int("runs", len(allRuns)))

	return allRuns, nil
}

// ListWorkflowJobs pages through the jobs of one workflow run.
func (c *Client) ListWorkflowJobs(ctx context.Context, owner, repo string, runID int64) ([]*github.WorkflowJob, error) {
	var allJobs []*github.WorkflowJob

	page := 0
	for {
		var (
			jobs *github.Jobs
			res  *github.Response
		)

		err := c.call(ctx, "ListWorkflowJobs", func() (*github.Response, error) {
			var err error
			opts := &github.ListWorkflowJobsOptions{
				Filter:      "all",
				ListOptions: github.ListOptions{Page: page, PerPage: perPage},
			}
			jobs, res, err = c.gh.Actions.ListWorkflowJobs(ctx, owner, repo, runID, opts)
			return res, err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list jobs for run %d in %s/%s: %w", runID, owner, repo, err)
		}

		allJobs = append(allJobs, jobs.Jobs...)

		if res.NextPage == 0 {
			break
		}
		page = res.NextPage
	}

	return allJobs, nil
}
