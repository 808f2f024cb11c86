package usage

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-github/v50/github"
)

func TestStatsAggregation(t *testing.T) {
	s := NewStats()

	s.AddRepo(&github.Repository{
		FullName: github.String("org/api"),
		Private:  github.Bool(true),
	})
	s.AddRepo(&github.Repository{
		FullName: github.String("org/web"),
		Private:  github.Bool(false),
	})
	if s.TotalPrivate != 1 || s.TotalPublic != 1 {
		t.Fatalf("repo visibility counts wrong: %d private, %d public", s.TotalPrivate, s.TotalPublic)
	}

	s.AddRun(&github.WorkflowRun{Actor: &github.User{Login: github.String("alex")}})
	s.AddRun(&github.WorkflowRun{Actor: &github.User{Login: github.String("alex")}})
	if s.TotalRuns != 2 || len(s.Actors) != 1 {
		t.Fatalf("expected 2 runs and 1 actor, got %d runs, %d actors", s.TotalRuns, len(s.Actors))
	}

	base := time.Date(2023, 11, 13, 10, 0, 0, 0, time.UTC) // a Monday
	s.AddJob("org/api", completedJob(base, base.Add(20*time.Minute), "success"))
	s.AddJob("org/api", completedJob(base, base.Add(5*time.Minute), "failure"))
	s.AddJob("org/web", completedJob(base.Add(24*time.Hour), base.Add(25*time.Hour), "success"))

	if s.TotalJobs != 3 {
		t.Fatalf("expected 3 jobs, got %d", s.TotalJobs)
	}
	if s.Conclusions["success"] != 2 || s.Conclusions["failure"] != 1 {
		t.Fatalf("conclusion counts wrong: %v", s.Conclusions)
	}
	if s.LongestBuild != time.Hour {
		t.Fatalf("expected longest build 1h, got %v", s.LongestBuild)
	}
	if s.TotalUsage != time.Hour+25*time.Minute {
		t.Fatalf("expected total usage 1h25m, got %v", s.TotalUsage)
	}
	if s.BuildsPerDay["Monday"] != 2 || s.BuildsPerDay["Tuesday"] != 1 {
		t.Fatalf("punch card counts wrong: %v", s.BuildsPerDay)
	}

	summaries := s.SortedRepoSummaries()
	if summaries[0].Name != "org/api" {
		t.Fatalf("expected org/api first (most jobs), got %s", summaries[0].Name)
	}
	if summaries[0].LongestBuild != 20*time.Minute {
		t.Fatalf("expected repo longest build 20m, got %v", summaries[0].LongestBuild)
	}
}

func TestAverageBuild(t *testing.T) {
	s := NewStats()
	if s.AverageBuild() != 0 {
		t.Fatalf("average of zero jobs must be 0")
	}

	base := time.Unix(1700000000, 0).UTC()
	s.AddJob("org/api", completedJob(base, base.Add(10*time.Minute), "success"))
	s.AddJob("org/api", completedJob(base, base.Add(20*time.Minute), "success"))
	if got := s.AverageBuild(); got != 15*time.Minute {
		t.Fatalf("expected 15m average, got %v", got)
	}
}

func TestHumanDuration(t *testing.T) {
	if got := HumanDuration(500 * time.Millisecond); got != "500 ms" {
		t.Fatalf("expected '500 ms', got %q", got)
	}
	if got := HumanDuration(65 * time.Second); got != "65 seconds" {
		t.Fatalf("expected '65 seconds', got %q", got)
	}
	if got := HumanDuration(2 * time.Hour); !strings.Contains(got, "hour") {
		t.Fatalf("expected hours wording, got %q", got)
	}
}

func TestWriteReport(t *testing.T) {
	s := NewStats()
	s.AddRepo(&github.Repository{FullName: github.String("org/api"), Private: github.Bool(false)})
	base := time.Unix(1700000000, 0).UTC()
	s.AddJob("org/api", completedJob(base, base.Add(time.Minute), "success"))
	s.TotalRuns = 1

	var sb strings.Builder
	s.WriteReport(&sb, ReportOptions{Entity: "org", Days: 30, RepoCount: 1, PunchCard: true, ByRepo: true})
	out := sb.String()

	for _, want := range []string{
		"Report for org - last: 30 days.",
		"Total repos: 1",
		"Total workflow jobs: 1",
		"Success: 1/1",
		"Day",
		"org/api",
		"Total usage:",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}

	if strings.Contains(out, "Skipped:") {
		t.Fatalf("skipped line must be omitted when no jobs were skipped:\n%s", out)
	}
}
