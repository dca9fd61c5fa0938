package backfill

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrQueueFull is returned by Enqueue when the pending queue is at capacity.
var ErrQueueFull = errors.New("backfill queue full")

// Request represents a backfill invocation request.
type Request struct {
	Sport     string     `json:"sport"`
	Season    string     `json:"season"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	GameIDs   []string   `json:"game_ids,omitempty"`
	Divisions []int      `json:"divisions,omitempty"`
	DryRun    bool       `json:"dry_run"`
}

// DeriveType infers the job type based on populated fields.
func (r Request) DeriveType() (JobType, error) {
	if len(r.GameIDs) > 0 {
		return JobTypeGame, nil
	}
	if r.StartDate != nil && r.EndDate != nil {
		return JobTypeDateRange, nil
	}
	if r.Season != "" {
		return JobTypeSeason, nil
	}
	return "", fmt.Errorf("unable to determine job type from request")
}

// JobRunner executes one job spec.
type JobRunner interface {
	Run(ctx context.Context, spec JobSpec, reporter Reporter) (Summary, error)
}

// Service queues jobs and executes them one at a time on a background worker.
type Service struct {
	runner JobRunner
	sport  string

	historyLimit int

	mu      sync.Mutex
	queue   chan *Job
	jobs    map[string]*Job
	active  *Job
	history []*Job

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	log logrus.FieldLogger
}

// NewService constructs a Service. Call Start to launch the worker.
func NewService(runner JobRunner, sport string, log logrus.FieldLogger) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		runner:       runner,
		sport:        sport,
		historyLimit: 10,
		queue:        make(chan *Job, 32),
		jobs:         make(map[string]*Job),
		ctx:          ctx,
		cancel:       cancel,
		log:          log.WithField("component", "backfill"),
	}
}

// Start launches the background worker loop.
func (s *Service) Start() {
	s.wg.Add(1)
	go s.worker()
}

// Shutdown stops the worker and waits for the running job to return.
func (s *Service) Shutdown(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.wg.Wait()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Enqueue creates a new job from the provided request.
func (s *Service) Enqueue(req Request) (*Job, error) {
	if req.Sport == "" {
		req.Sport = s.sport
	}

	jobType, err := req.DeriveType()
	if err != nil {
		return nil, err
	}

	job := &Job{
		JobID:         uuid.NewString(),
		JobType:       jobType,
		Sport:         req.Sport,
		Divisions:     req.Divisions,
		Status:        JobStatusQueued,
		StatusMessage: "Queued",
		CreatedAt:     time.Now().UTC(),
	}

	switch jobType {
	case JobTypeGame:
		job.GameIDs = req.GameIDs
		job.ProgressTotal = len(req.GameIDs)
	case JobTypeSeason:
		start, end, err := SeasonWindow(req.Season)
		if err != nil {
			return nil, err
		}
		job.StartDate, job.EndDate = &start, &end
		job.ProgressTotal = len(enumerateDates(start, end))
	case JobTypeDateRange:
		start, end := truncateDate(*req.StartDate), truncateDate(*req.EndDate)
		job.StartDate, job.EndDate = &start, &end
		job.ProgressTotal = len(enumerateDates(start, end))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case s.queue <- job:
	default:
		return nil, ErrQueueFull
	}
	s.jobs[job.JobID] = job
	s.log.WithFields(logrus.Fields{"job_id": job.JobID, "job_type": job.JobType}).Info("Job queued")
	return job.Copy(), nil
}

// Job returns a snapshot of one job.
func (s *Service) Job(id string) (*Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	return job.Copy(), ok
}

// GetStatus returns the currently running job plus recent history.
func (s *Service) GetStatus() *StatusSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary := &StatusSummary{ActiveJob: s.active.Copy()}
	for i := len(s.history) - 1; i >= 0; i-- {
		summary.History = append(summary.History, s.history[i].Copy())
	}
	return summary
}

func (s *Service) worker() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			s.drain()
			return
		case job := <-s.queue:
			s.executeJob(job)
		}
	}
}

// drain marks every still-queued job cancelled.
func (s *Service) drain() {
	for {
		select {
		case job := <-s.queue:
			s.finish(job, JobStatusCancelled, "Service stopped", nil)
		default:
			return
		}
	}
}

func (s *Service) executeJob(job *Job) {
	s.mu.Lock()
	now := time.Now().UTC()
	job.Status = JobStatusRunning
	job.StatusMessage = "Starting job..."
	job.StartedAt = &now
	s.active = job
	spec := buildSpec(job)
	s.mu.Unlock()

	reporter := &jobReporter{svc: s, job: job, total: specProgressUnits(spec)}
	summary, err := s.runner.Run(s.ctx, spec, reporter)

	s.mu.Lock()
	job.Summary = summary
	s.mu.Unlock()

	switch {
	case errors.Is(err, context.Canceled):
		s.finish(job, JobStatusCancelled, "Job cancelled", err)
	case err != nil:
		s.log.WithError(err).WithField("job_id", job.JobID).Error("Job failed")
		s.finish(job, JobStatusFailed, "Job failed", err)
	default:
		s.finish(job, JobStatusCompleted, "Job completed", nil)
	}
}

func (s *Service) finish(job *Job, status JobStatus, msg string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	job.Status = status
	job.StatusMessage = msg
	job.CompletedAt = &now
	if err != nil {
		job.LastError = err.Error()
	}
	if s.active == job {
		s.active = nil
	}
	s.history = append(s.history, job)
	if len(s.history) > s.historyLimit {
		evicted := s.history[0]
		s.history = s.history[1:]
		delete(s.jobs, evicted.JobID)
	}
}

func buildSpec(job *Job) JobSpec {
	spec := JobSpec{
		ID:        job.JobID,
		Type:      job.JobType,
		Sport:     job.Sport,
		Divisions: job.Divisions,
		GameIDs:   job.GameIDs,
	}
	if job.StartDate != nil && job.EndDate != nil {
		spec.Start, spec.End = *job.StartDate, *job.EndDate
	}
	return spec
}

type jobReporter struct {
	svc   *Service
	job   *Job
	total int
}

func (r *jobReporter) update(fn func(j *Job)) {
	r.svc.mu.Lock()
	defer r.svc.mu.Unlock()
	fn(r.job)
}

func (r *jobReporter) OnJobStart(spec JobSpec) {
	if r.total == 0 {
		r.total = specProgressUnits(spec)
	}
	r.update(func(j *Job) {
		j.ProgressCurrent, j.ProgressTotal, j.StatusMessage = 0, r.total, "Job starting"
	})
}

func (r *jobReporter) OnDateStart(date time.Time, index int, total int) {
	msg := fmt.Sprintf("Processing %s (%d/%d)", date.Format("Jan 2, 2006"), index+1, total)
	r.update(func(j *Job) {
		j.ProgressCurrent, j.ProgressTotal, j.StatusMessage = index, valueOr(total, r.total), msg
	})
}

func (r *jobReporter) OnGameProcessed(gameID string, outcome string) {
	r.update(func(j *Job) { j.Summary.count(outcome) })
}

func (r *jobReporter) OnProgress(message string, current int, total int) {
	r.update(func(j *Job) {
		j.ProgressCurrent, j.ProgressTotal, j.StatusMessage = current, valueOr(total, r.total), message
	})
}

func (r *jobReporter) OnJobComplete(Summary) {
	r.update(func(j *Job) {
		j.ProgressCurrent, j.ProgressTotal, j.StatusMessage = r.total, r.total, "Job complete"
	})
}

func (r *jobReporter) OnJobError(err error) {
	r.update(func(j *Job) { j.LastError = err.Error() })
}

func specProgressUnits(spec JobSpec) int {
	switch spec.Type {
	case JobTypeGame:
		return len(spec.GameIDs)
	case JobTypeSeason, JobTypeDateRange:
		return len(enumerateDates(spec.Start, spec.End))
	default:
		return 0
	}
}

func valueOr(val, fallback int) int {
	if val > 0 {
		return val
	}
	return fallback
}

// SeasonWindow maps "2024-25" or "2024" to the regular season and
// tournament window, November 1 through April 30.
func SeasonWindow(season string) (time.Time, time.Time, error) {
	first, _, _ := strings.Cut(season, "-")
	year, err := strconv.Atoi(first)
	if err != nil || year < 1900 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid season %q", season)
	}
	start := time.Date(year, time.November, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year+1, time.April, 30, 0, 0, 0, 0, time.UTC)
	return start, end, nil
}
