package backfill

import (
	"time"
)

// JobType enumerates the supported backfill job variants.
type JobType string

const (
	JobTypeSeason    JobType = "season"
	JobTypeDateRange JobType = "date_range"
	JobTypeGame      JobType = "game"
)

// JobStatus represents the lifecycle state for a job.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Game outcomes passed to Reporter.OnGameProcessed.
const (
	OutcomeTimeline = "timeline"
	OutcomeFallback = "fallback"
	OutcomeSkipped  = "skipped"
)

// Job is a queued or finished crawl as tracked by the Service.
type Job struct {
	JobID           string     `json:"job_id"`
	JobType         JobType    `json:"job_type"`
	Sport           string     `json:"sport"`
	Divisions       []int      `json:"divisions,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	GameIDs         []string   `json:"game_ids,omitempty"`
	Status          JobStatus  `json:"status"`
	StatusMessage   string     `json:"status_message,omitempty"`
	ProgressCurrent int        `json:"progress_current"`
	ProgressTotal   int        `json:"progress_total"`
	LastError       string     `json:"last_error,omitempty"`
	Summary         Summary    `json:"summary"`
	CreatedAt       time.Time  `json:"created_at"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// Copy returns a deep enough copy to hand to API callers.
func (j *Job) Copy() *Job {
	if j == nil {
		return nil
	}
	cpy := *j
	cpy.Divisions = append([]int(nil), j.Divisions...)
	cpy.GameIDs = append([]string(nil), j.GameIDs...)
	return &cpy
}

// JobSpec describes the work to be performed by the runner.
type JobSpec struct {
	ID        string
	Type      JobType
	Sport     string
	Divisions []int
	Start     time.Time
	End       time.Time
	GameIDs   []string
	DryRun    bool
}

// Summary counts what a run did.
type Summary struct {
	Dates        int `json:"dates"`
	DatesSkipped int `json:"dates_skipped"`
	Games        int `json:"games"`
	Timelines    int `json:"timelines"`
	Fallbacks    int `json:"fallbacks"`
	Skipped      int `json:"skipped"`
}

func (s *Summary) count(outcome string) {
	s.Games++
	switch outcome {
	case OutcomeTimeline:
		s.Timelines++
	case OutcomeFallback:
		s.Fallbacks++
	default:
		s.Skipped++
	}
}

// Reporter receives lifecycle callbacks from the runner.
type Reporter interface {
	OnJobStart(spec JobSpec)
	OnDateStart(date time.Time, index int, total int)
	OnGameProcessed(gameID string, outcome string)
	OnProgress(message string, current int, total int)
	OnJobComplete(summary Summary)
	OnJobError(err error)
}

// StatusSummary is returned to API callers.
type StatusSummary struct {
	ActiveJob *Job   `json:"active_job,omitempty"`
	History   []*Job `json:"recent_jobs,omitempty"`
}
