package backfill

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fortuna/ceres/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	release chan struct{}
	specs   chan JobSpec
	err     error
}

func newStubRunner() *stubRunner {
	return &stubRunner{release: make(chan struct{}), specs: make(chan JobSpec, 8)}
}

func (s *stubRunner) Run(ctx context.Context, spec JobSpec, reporter Reporter) (Summary, error) {
	s.specs <- spec
	reporter.OnJobStart(spec)
	select {
	case <-ctx.Done():
		return Summary{}, ctx.Err()
	case <-s.release:
	}
	reporter.OnGameProcessed("100", OutcomeTimeline)
	if s.err != nil {
		reporter.OnJobError(s.err)
		return Summary{Games: 1, Timelines: 1}, s.err
	}
	reporter.OnJobComplete(Summary{Games: 1, Timelines: 1})
	return Summary{Games: 1, Timelines: 1}, nil
}

func TestRequest_DeriveType(t *testing.T) {
	start, end := day1, day2
	tests := []struct {
		name    string
		req     Request
		want    JobType
		wantErr bool
	}{
		{"game wins", Request{GameIDs: []string{"1"}, Season: "2024-25"}, JobTypeGame, false},
		{"range", Request{StartDate: &start, EndDate: &end}, JobTypeDateRange, false},
		{"season", Request{Season: "2024-25"}, JobTypeSeason, false},
		{"half range", Request{StartDate: &start}, "", true},
		{"empty", Request{}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.DeriveType()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_RunsQueuedJobs(t *testing.T) {
	runner := newStubRunner()
	svc := NewService(runner, "MBB", logger.Discard())
	svc.Start()
	defer svc.Shutdown(context.Background())

	job, err := svc.Enqueue(Request{Season: "2024-25", Divisions: []int{2}})
	require.NoError(t, err)
	assert.Equal(t, JobTypeSeason, job.JobType)
	assert.Equal(t, "MBB", job.Sport)
	assert.Equal(t, JobStatusQueued, job.Status)
	assert.Equal(t, 181, job.ProgressTotal)

	spec := <-runner.specs
	assert.Equal(t, job.JobID, spec.ID)
	assert.Equal(t, []int{2}, spec.Divisions)
	assert.Equal(t, time.November, spec.Start.Month())

	require.Eventually(t, func() bool {
		active := svc.GetStatus().ActiveJob
		return active != nil && active.Status == JobStatusRunning
	}, time.Second, 5*time.Millisecond)

	close(runner.release)
	require.Eventually(t, func() bool {
		got, ok := svc.Job(job.JobID)
		return ok && got.Status == JobStatusCompleted
	}, time.Second, 5*time.Millisecond)

	status := svc.GetStatus()
	assert.Nil(t, status.ActiveJob)
	require.Len(t, status.History, 1)
	assert.Equal(t, 1, status.History[0].Summary.Timelines)
	assert.Equal(t, status.History[0].ProgressTotal, status.History[0].ProgressCurrent)
}

func TestService_FailedJob(t *testing.T) {
	runner := newStubRunner()
	runner.err = errors.New("scoreboard exploded")
	close(runner.release)
	svc := NewService(runner, "WBB", logger.Discard())
	svc.Start()
	defer svc.Shutdown(context.Background())

	job, err := svc.Enqueue(Request{GameIDs: []string{"100"}})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		got, _ := svc.Job(job.JobID)
		return got.Status == JobStatusFailed
	}, time.Second, 5*time.Millisecond)
	got, _ := svc.Job(job.JobID)
	assert.Equal(t, "scoreboard exploded", got.LastError)
	assert.NotNil(t, got.CompletedAt)
}

func TestService_ShutdownCancelsRunningJob(t *testing.T) {
	runner := newStubRunner()
	svc := NewService(runner, "MBB", logger.Discard())
	svc.Start()

	job, err := svc.Enqueue(Request{GameIDs: []string{"100"}})
	require.NoError(t, err)
	<-runner.specs

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, svc.Shutdown(ctx))

	got, ok := svc.Job(job.JobID)
	require.True(t, ok)
	assert.Equal(t, JobStatusCancelled, got.Status)
}

func TestService_EnqueueValidation(t *testing.T) {
	svc := NewService(newStubRunner(), "MBB", logger.Discard())

	_, err := svc.Enqueue(Request{})
	assert.Error(t, err)

	_, err = svc.Enqueue(Request{Season: "soon"})
	assert.Error(t, err)

	for i := 0; i < cap(svc.queue); i++ {
		_, err := svc.Enqueue(Request{GameIDs: []string{"1"}})
		require.NoError(t, err)
	}
	_, err = svc.Enqueue(Request{GameIDs: []string{"1"}})
	assert.ErrorIs(t, err, ErrQueueFull)
}
