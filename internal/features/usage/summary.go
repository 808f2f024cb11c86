package usage

import (
	"fmt"
	"sort"
	"strings"
	"time"

	units "github.com/docker/go-units"
	"github.com/google/go-github/v50/github"
)

// RepoSummary accumulates per-repository job statistics.
type RepoSummary struct {
	Name         string
	Jobs         int
	Counts       map[string]int
	TotalTime    time.Duration
	LongestBuild time.Duration
}

// Stats accumulates the whole report across repositories.
type Stats struct {
	TotalRuns    int
	TotalJobs    int
	TotalPrivate int
	TotalPublic  int
	LongestBuild time.Duration
	TotalUsage   time.Duration
	Actors       map[string]bool
	Conclusions  map[string]int
	BuildsPerDay map[string]int
	Repos        map[string]*RepoSummary
}

func NewStats() *Stats {
	return &Stats{
		Actors: make(map[string]bool),
		Conclusions: map[string]int{
			"success":   0,
			"failure":   0,
			"cancelled": 0,
			"skipped":   0,
		},
		BuildsPerDay: map[string]int{
			"Monday":    0,
			"Tuesday":   0,
			"Wednesday": 0,
			"Thursday":  0,
			"Friday":    0,
			"Saturday":  0,
			"Sunday":    0,
		},
		Repos: make(map[string]*RepoSummary),
	}
}

func (s *Stats) AddRepo(repo *github.Repository) {
	if repo.GetPrivate() {
		s.TotalPrivate++
	} else {
		s.TotalPublic++
	}
	if _, ok := s.Repos[repo.GetFullName()]; !ok {
		s.Repos[repo.GetFullName()] = &RepoSummary{
			Name:   repo.GetFullName(),
			Counts: make(map[string]int),
		}
	}
}

func (s *Stats) AddRun(run *github.WorkflowRun) {
	s.TotalRuns++
	if a := run.GetActor(); a != nil {
		s.Actors[a.GetLogin()] = true
	}
}

// AddJob folds one job into the totals and the owning repo's summary.
func (s *Stats) AddJob(repoFullName string, job *github.WorkflowJob) {
	summary, ok := s.Repos[repoFullName]
	if !ok {
		summary = &RepoSummary{Name: repoFullName, Counts: make(map[string]int)}
		s.Repos[repoFullName] = summary
	}

	s.TotalJobs++
	s.Conclusions[job.GetConclusion()]++
	summary.Counts[job.GetConclusion()]++
	summary.Jobs++

	if job.GetCompletedAt().IsZero() {
		return
	}

	dur := job.GetCompletedAt().Time.Sub(job.GetStartedAt().Time)
	s.TotalUsage += dur
	summary.TotalTime += dur
	if dur > s.LongestBuild {
		s.LongestBuild = dur
	}
	if dur > summary.LongestBuild {
		summary.LongestBuild = dur
	}

	s.BuildsPerDay[job.GetStartedAt().Time.Weekday().String()]++
}

// SortedRepoSummaries orders repositories by job count, then total time.
func (s *Stats) SortedRepoSummaries() []*RepoSummary {
	summaries := make([]*RepoSummary, 0, len(s.Repos))
	for _, summary := range s.Repos {
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Jobs == summaries[j].Jobs {
			return summaries[i].TotalTime > summaries[j].TotalTime
		}
		return summaries[i].Jobs > summaries[j].Jobs
	})
	return summaries
}

// AverageBuild is TotalUsage spread over completed jobs.
func (s *Stats) AverageBuild() time.Duration {
	if s.TotalJobs == 0 {
		return 0
	}
	return s.TotalUsage / time.Duration(s.TotalJobs)
}

// HumanDuration renders a duration the way go-units does, with sub-second
// and sub-minute values spelled out in ms/seconds instead of prose.
func HumanDuration(duration time.Duration) string {
	v := strings.ToLower(units.HumanDuration(duration))

	if v == "less than a second" {
		return fmt.Sprintf("%d ms", duration.Milliseconds())
	} else if v == "about a minute" {
		return fmt.Sprintf("%d seconds", int(duration.Seconds()))
	}

	return v
}
