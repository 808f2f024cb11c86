package usage

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

var daysOfWeek = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ReportOptions selects the optional report sections.
type ReportOptions struct {
	Entity    string // org or user the report covers
	Days      int
	RepoCount int
	PunchCard bool
	ByRepo    bool
}

// WriteReport prints the usage summary in the collector's text format.
func (s *Stats) WriteReport(w io.Writer, opts ReportOptions) {
	fmt.Fprintf(w, "\nReport for %s - last: %d days.\n\n", opts.Entity, opts.Days)
	fmt.Fprintf(w, "Total repos: %d\n", opts.RepoCount)
	fmt.Fprintf(w, "Total private repos: %d\n", s.TotalPrivate)
	fmt.Fprintf(w, "Total public repos: %d\n", s.TotalPublic)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total workflow runs: %d\n", s.TotalRuns)
	fmt.Fprintf(w, "Total workflow jobs: %d\n", s.TotalJobs)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total users: %d\n", len(s.Actors))

	if s.TotalJobs > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Success: %d/%d\n", s.Conclusions["success"], s.TotalJobs)
		fmt.Fprintf(w, "Failure: %d/%d\n", s.Conclusions["failure"], s.TotalJobs)
		fmt.Fprintf(w, "Cancelled: %d/%d\n", s.Conclusions["cancelled"], s.TotalJobs)
		if s.Conclusions["skipped"] > 0 {
			fmt.Fprintf(w, "Skipped: %d/%d\n", s.Conclusions["skipped"], s.TotalJobs)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Longest build: %s\n", s.LongestBuild.Round(time.Second))
		fmt.Fprintf(w, "Average build time: %s\n", s.AverageBuild().Round(time.Second))
		fmt.Fprintln(w)

		if opts.PunchCard {
			s.writePunchCard(w)
		}
	}

	if opts.ByRepo {
		fmt.Fprintln(w)
		s.writeByRepo(w)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total usage: %s (%.0f mins)\n", s.TotalUsage.String(), s.TotalUsage.Minutes())
	fmt.Fprintln(w)
}

func (s *Stats) writePunchCard(w io.Writer) {
	tw := tabwriter.NewWriter(w, 15, 4, 1, ' ', tabwriter.TabIndent)
	fmt.Fprintln(tw, "Day\tBuilds")
	for _, day := range daysOfWeek {
		fmt.Fprintf(tw, "%s\t%d\n", day, s.BuildsPerDay[day])
	}
	fmt.Fprintf(tw, "%s\t%d\n", "Total", s.TotalJobs)
	tw.Flush()
}

func (s *Stats) writeByRepo(w io.Writer) {
	tw := tabwriter.NewWriter(w, 15, 4, 1, ' ', tabwriter.TabIndent)
	fmt.Fprintln(tw, "Repo\tBuilds\tSuccess\tFailure\tCancelled\tSkipped\tTotal\tAverage\tLongest")

	for _, summary := range s.SortedRepoSummaries() {
		if summary.Jobs == 0 {
			continue
		}
		avg := summary.TotalTime / time.Duration(summary.Jobs)
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%s\t%s\t%s\n",
			summary.Name,
			summary.Jobs,
			summary.Counts["success"],
			summary.Counts["failure"],
			summary.Counts["cancelled"],
			summary.Counts["skipped"],
			summary.TotalTime.Round(time.Second),
			avg.Round(time.Second),
			summary.LongestBuild.Round(time.Second))
	}
	tw.Flush()
}
