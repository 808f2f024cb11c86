package usage

// Concurrency reconstruction: every completed job contributes a start and a
// finish event; walking the sorted stream with a counter yields the number
// of jobs running at any instant.

import (
	"fmt"
	"sort"
	"time"

	"actions-graph/internal/timeseries"

	"github.com/google/go-github/v50/github"
)

type EventType string

const (
	JobStarted  EventType = "started"
	JobFinished EventType = "finished"
)

// JobEvent marks one boundary of a job's execution.
type JobEvent struct {
	At   time.Time
	Type EventType
}

// EventsFromJobs emits start/finish events for completed jobs. Skipped jobs
// never ran, so they contribute nothing.
func EventsFromJobs(jobs []*github.WorkflowJob) []JobEvent {
	var events []JobEvent
	for _, job := range jobs {
		if job.GetCompletedAt().IsZero() || job.GetConclusion() == "skipped" {
			continue
		}
		events = append(events,
			JobEvent{At: job.GetStartedAt().Time, Type: JobStarted},
			JobEvent{At: job.GetCompletedAt().Time, Type: JobFinished},
		)
	}
	return events
}

// ConcurrencySeries sorts the events chronologically and walks a live-job
// counter across them. Each event produces a point before and after the
// counter changes so the series plots as a step chart.
func ConcurrencySeries(events []JobEvent) []timeseries.Point {
	sorted := make([]JobEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].At.Before(sorted[j].At)
	})

	var points []timeseries.Point
	live := 0
	for _, event := range sorted {
		points = append(points, timeseries.Point{T: event.At, V: float64(live)})
		switch event.Type {
		case JobStarted:
			live++
		case JobFinished:
			live--
		}
		points = append(points, timeseries.Point{T: event.At, V: float64(live)})
	}
	return points
}

// ConcurrencyCSVName names the per-repository step-series file.
func ConcurrencyCSVName(repo string) string {
	return fmt.Sprintf("concurrent_jobs_%s.csv", repo)
}

// ConcurrencyCSVHeader is the header row the renderer round-trips.
var ConcurrencyCSVHeader = []string{"Unix time", "Concurrent job count"}
