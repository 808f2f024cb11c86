package commands

// Command collecting GitHub Actions usage for an org or user.
// Writes one concurrent_jobs_<repo>.csv per repository and prints a usage
// report; --render charts each written CSV on the spot.

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"actions-graph/internal/clients_api/actions"
	"actions-graph/internal/features/usage"
	"actions-graph/internal/infra/config"
	logging "actions-graph/internal/infra/log"
	"actions-graph/internal/timeseries"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	collectOrg         string
	collectUser        string
	collectToken       string
	collectTokenFile   string
	collectAPIURL      string
	collectDays        int
	collectInclude     string
	collectIncludeFile string
	collectByRepo      bool
	collectPunchCard   bool
	collectRender      bool
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect Actions usage and write per-repo concurrency CSVs",
	Long: `Collect walks the repositories of an organization or user, lists their
workflow runs and jobs for the requested window, prints a usage report and
writes a concurrent_jobs_<repo>.csv step series per repository.`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringVar(&collectOrg, "org", "", "organization name")
	collectCmd.Flags().StringVar(&collectUser, "user", "", "user name")
	collectCmd.Flags().StringVar(&collectToken, "token", "", "GitHub token (env: GITHUB_TOKEN)")
	collectCmd.Flags().StringVar(&collectTokenFile, "token-file", "", "path to a file containing the GitHub token")
	collectCmd.Flags().StringVar(&collectAPIURL, "api-url", "", "override the GitHub API URL (GitHub Enterprise)")
	collectCmd.Flags().IntVar(&collectDays, "days", 30, "how many days of data to query")
	collectCmd.Flags().StringVar(&collectInclude, "include", "", "repos to include, e.g. 'org/repo1,org/repo2'")
	collectCmd.Flags().StringVar(&collectIncludeFile, "include-file", "", "path to a repo list file, or '-' for stdin")
	collectCmd.Flags().BoolVar(&collectByRepo, "by-repo", false, "show a breakdown by repository")
	collectCmd.Flags().BoolVar(&collectPunchCard, "punch-card", false, "show builds per day of week")
	collectCmd.Flags().BoolVar(&collectRender, "render", false, "render each written CSV to a PNG")
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.LogError("failed to load config", zap.Error(err))
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch {
	case collectOrg == "" && collectUser == "":
		return fmt.Errorf("organization name or user name is required")
	case collectOrg != "" && collectUser != "":
		return fmt.Errorf("only one of --org and --user may be set")
	}

	token := collectToken
	if token == "" {
		token = cfg.GitHub.Token
	}
	tokenFile := collectTokenFile
	if tokenFile == "" {
		tokenFile = cfg.GitHub.TokenFile
	}
	if tokenFile != "" {
		tokenBytes, err := os.ReadFile(tokenFile)
		if err != nil {
			return fmt.Errorf("failed to read token file: %w", err)
		}
		token = strings.TrimSpace(string(tokenBytes))
	}

	apiURL := collectAPIURL
	if apiURL == "" {
		apiURL = cfg.GitHub.APIURL
	}

	days := collectDays
	if !cmd.Flags().Changed("days") && cfg.GitHub.Days > 0 {
		days = cfg.GitHub.Days
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client, err := actions.NewClient(ctx, token, apiURL, cfg.GitHub.MaxRetries)
	if err != nil {
		return err
	}

	created := time.Now().AddDate(0, 0, -days)
	createdQuery := ">=" + created.Format("2006-01-02")
	fmt.Printf("Fetching last %d days of data (created%s)\n", days, createdQuery)

	repos, err := client.ListRepositories(ctx, collectOrg, collectUser)
	if err != nil {
		return err
	}
	repos, err = actions.FilterRepositories(repos, collectInclude, collectIncludeFile)
	if err != nil {
		return err
	}

	stats := usage.NewStats()

	for _, repo := range repos {
		logging.LogInfo("processing repository", zap.String("repo", repo.GetFullName()))
		stats.AddRepo(repo)

		// Repos a user merely belongs to are owned by someone else.
		owner := collectOrg
		if collectUser != "" {
			owner = repo.GetOwner().GetLogin()
		}

		runs, err := client.ListWorkflowRuns(ctx, owner, repo.GetName(), createdQuery)
		if err != nil {
			return err
		}

		var events []usage.JobEvent
		for _, run := range runs {
			stats.AddRun(run)

			jobs, err := client.ListWorkflowJobs(ctx, owner, repo.GetName(), run.GetID())
			if err != nil {
				return err
			}
			for _, job := range jobs {
				stats.AddJob(repo.GetFullName(), job)
			}
			events = append(events, usage.EventsFromJobs(jobs)...)
		}

		points := usage.ConcurrencySeries(events)
		csvName := usage.ConcurrencyCSVName(repo.GetName())
		if err := timeseries.WriteCSV(csvName, usage.ConcurrencyCSVHeader, points); err != nil {
			return err
		}
		fmt.Printf("Concurrent jobs data written to %s\n", csvName)

		if collectRender {
			if len(points) == 0 {
				logging.LogWarn("no job events to chart", zap.String("repo", repo.GetFullName()))
				continue
			}
			outPath, err := renderCSVFile(cfg, csvName, cfg.Chart.Aspect)
			if err != nil {
				return err
			}
			fmt.Printf("Chart written to %s\n", outPath)
		}
	}

	entity := collectOrg
	if entity == "" {
		entity = collectUser
	}
	stats.WriteReport(os.Stdout, usage.ReportOptions{
		Entity:    entity,
		Days:      days,
		RepoCount: len(repos),
		PunchCard: collectPunchCard,
		ByRepo:    collectByRepo,
	})

	return nil
}
